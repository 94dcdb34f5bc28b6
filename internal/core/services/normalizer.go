package services

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
	apperrors "github.com/lorrc/ticket-analytics-backend/internal/core/errors"
)

// excelEpochOffsetDays is the number of days between the spreadsheet serial
// epoch (1899-12-30) and the Unix epoch.
const excelEpochOffsetDays = 25569

// textualDateLayouts are tried in order for cells that are not date serials.
var textualDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// Normalize converts raw export rows into the canonical ticket set.
// It fails the whole batch when the export is empty or the header row lacks
// a required column; per-cell problems (unparseable dates, unmapped
// assignees) are tolerated and surface as absent fields, never as errors.
func Normalize(rows []domain.RawRow, roster *domain.Roster) ([]domain.Ticket, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewIngestionError(apperrors.ErrEmptyDataset)
	}

	// Column presence is checked on the first row's key set: a column that
	// exists but holds an empty cell still counts as present.
	var missing []string
	for _, col := range domain.RequiredColumns {
		if _, ok := rows[0][col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewMissingColumnsError(missing)
	}

	tickets := make([]domain.Ticket, 0, len(rows))
	for _, row := range rows {
		created := parseCellTimestamp(row[domain.ColumnCreated])
		resolved := parseCellTimestamp(row[domain.ColumnResolved])

		var resolutionHours *float64
		if created != nil && resolved != nil {
			hours := resolved.Sub(*created).Hours()
			resolutionHours = &hours
		}

		assignee := cellString(row[domain.ColumnAssignee])

		month := ""
		if created != nil {
			month = domain.MonthBucketFor(*created)
		}

		tickets = append(tickets, domain.Ticket{
			Assignee:        assignee,
			CreatedAt:       created,
			ResolvedAt:      resolved,
			ResolutionHours: resolutionHours,
			SupportLevel:    roster.LevelFor(assignee),
			MonthBucket:     month,
			Fields:          row,
		})
	}

	return tickets, nil
}

// parseCellTimestamp accepts spreadsheet date serials (numeric cells or
// numeric strings) and textual dates. Anything else yields nil.
func parseCellTimestamp(v any) *time.Time {
	switch value := v.(type) {
	case nil:
		return nil
	case time.Time:
		ts := value.UTC()
		return &ts
	case float64:
		return serialToTime(value)
	case int:
		return serialToTime(float64(value))
	case int64:
		return serialToTime(float64(value))
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return nil
		}
		// Raw-value decoding leaves date cells as serial strings.
		if serial, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return serialToTime(serial)
		}
		for _, layout := range textualDateLayouts {
			if ts, err := time.Parse(layout, trimmed); err == nil {
				ts = ts.UTC()
				return &ts
			}
		}
		return nil
	default:
		return nil
	}
}

// serialToTime converts a spreadsheet date serial (days since 1899-12-30,
// fractional part is time of day) to a UTC timestamp, rounded to the
// nearest millisecond the way the export tooling rounds it.
func serialToTime(serial float64) *time.Time {
	millis := math.Round((serial - excelEpochOffsetDays) * 86400 * 1000)
	ts := time.UnixMilli(int64(millis)).UTC()
	return &ts
}

// cellString reads an assignee-style text cell. Non-text cells are treated
// as empty rather than stringified: roster names are always text.
func cellString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

package services

import (
	"math"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
)

// DefaultAnalystCapacityPerDay is the sustainable daily load per analyst
// assumed by the staffing projection.
const DefaultAnalystCapacityPerDay = 10

// ProjectStaffing reduces the filtered dataset, grouped by support level,
// into a forward-looking headcount recommendation under the given growth
// assumption. One row is produced per explicit level; LevelOther is never
// projected. An empty filtered dataset yields no rows.
func ProjectStaffing(
	filtered []domain.Ticket,
	r domain.DateRange,
	growthPct float64,
	roster *domain.Roster,
	capacityPerDay int,
) []domain.ProjectionRow {
	if len(filtered) == 0 {
		return nil
	}

	countByLevel := make(map[domain.SupportLevel]int)
	for _, t := range filtered {
		countByLevel[t.SupportLevel]++
	}

	days := r.Days()
	capacityPerPeriod := capacityPerDay * days

	rows := make([]domain.ProjectionRow, 0, len(domain.ProjectableLevels))
	for _, level := range domain.ProjectableLevels {
		current := countByLevel[level]

		// The rounding point matters: project the per-day rate back over
		// the full period and round the total, not the rate.
		ticketsPerDay := float64(current) / float64(days)
		projected := int(math.Round(ticketsPerDay * (1 + growthPct/100) * float64(days)))

		needed := int(math.Ceil(float64(projected) / float64(capacityPerPeriod)))
		analysts := roster.Headcount(level)

		rows = append(rows, domain.ProjectionRow{
			Level:              level,
			CurrentTickets:     current,
			ProjectedTickets:   projected,
			CapacityPerPeriod:  capacityPerPeriod,
			CurrentAnalysts:    analysts,
			NeededAnalysts:     needed,
			AdditionalAnalysts: max(0, needed-analysts),
		})
	}

	return rows
}

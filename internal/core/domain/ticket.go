package domain

import "time"

// Required spreadsheet column headers. Ingestion fails when any of these
// is missing from the header row; all other columns pass through opaquely.
const (
	ColumnAssignee = "Assignee"
	ColumnCreated  = "Created"
	ColumnResolved = "Resolved"
)

// RequiredColumns lists the headers every export must carry.
var RequiredColumns = []string{ColumnAssignee, ColumnCreated, ColumnResolved}

// RawRow is one decoded spreadsheet row: column header to raw cell value.
// Values are strings, numbers (spreadsheet date serials) or nil.
type RawRow map[string]any

// SupportLevel is the coarse team-assignment bucket derived from the roster.
type SupportLevel string

const (
	LevelOne   SupportLevel = "Level 1"
	LevelTwo   SupportLevel = "Level 2"
	LevelThree SupportLevel = "Level 3"
	LevelOther SupportLevel = "Other"
)

// ProjectableLevels are the levels staffing projections are produced for.
// LevelOther is always excluded: it has no roster headcount to project against.
var ProjectableLevels = []SupportLevel{LevelOne, LevelTwo, LevelThree}

// IsValid reports whether the level is one of the four defined buckets.
func (l SupportLevel) IsValid() bool {
	switch l {
	case LevelOne, LevelTwo, LevelThree, LevelOther:
		return true
	}
	return false
}

// Ticket is one normalized support-request record. Derived fields are
// computed exactly once at ingestion; nothing downstream mutates a Ticket.
type Ticket struct {
	Assignee string
	// CreatedAt and ResolvedAt are nil when the source cell was empty or
	// unparseable. That is tolerated, not rejected.
	CreatedAt  *time.Time
	ResolvedAt *time.Time
	// ResolutionHours is present iff both timestamps are. It can be
	// negative when the source data has Resolved before Created; such
	// values propagate through aggregation unchanged.
	ResolutionHours *float64
	SupportLevel    SupportLevel
	// MonthBucket is the YYYY-MM calendar bucket of CreatedAt, empty when
	// CreatedAt is absent.
	MonthBucket string
	// Fields carries every original column of the source row.
	Fields RawRow
}

// IsResolved reports whether the ticket has a resolution timestamp.
func (t *Ticket) IsResolved() bool {
	return t.ResolvedAt != nil
}

// MonthBucketFor formats a creation timestamp as its YYYY-MM bucket.
func MonthBucketFor(ts time.Time) string {
	return ts.UTC().Format("2006-01")
}

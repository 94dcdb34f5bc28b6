package domain

import (
	"math"
	"time"
)

// DateRange is the active creation-date filter window, inclusive on both
// ends. Start <= End is not enforced; a reversed range simply matches no
// dated ticket.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days returns the length of the range in whole days, never less than one.
func (r DateRange) Days() int {
	days := int(math.Ceil(r.End.Sub(r.Start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// Contains reports whether ts falls inside the range, inclusive.
func (r DateRange) Contains(ts time.Time) bool {
	return !ts.Before(r.Start) && !ts.After(r.End)
}

// SalaryTable holds the monthly salary per explicit support level. The
// Other bucket is never set directly: for cost attribution it is the
// arithmetic mean of the three explicit levels.
type SalaryTable struct {
	Level1 float64
	Level2 float64
	Level3 float64
}

// ForLevel returns the salary used for cost attribution at the given level.
func (s SalaryTable) ForLevel(level SupportLevel) float64 {
	switch level {
	case LevelOne:
		return s.Level1
	case LevelTwo:
		return s.Level2
	case LevelThree:
		return s.Level3
	default:
		return (s.Level1 + s.Level2 + s.Level3) / 3
	}
}

// KPIReport is the point-in-time metric summary over the filtered dataset.
// All fields are zero when the filtered dataset is empty.
type KPIReport struct {
	TotalTickets       int
	ResolvedTickets    int
	ResolutionRate     float64
	AvgResolutionHours float64
	// AvgCostPerResolvedTicket is a blended per-ticket rate weighted by
	// level mix: sum over levels of salary[level] * (count[level] / resolved).
	AvgCostPerResolvedTicket float64
	// CostPerMonth applies the same weighting per MonthBucket of the
	// resolved tickets.
	CostPerMonth map[string]float64
}

// ProjectionRow is the staffing-needs estimate for one support level.
type ProjectionRow struct {
	Level              SupportLevel
	CurrentTickets     int
	ProjectedTickets   int
	CapacityPerPeriod  int
	CurrentAnalysts    int
	NeededAnalysts     int
	AdditionalAnalysts int
}

// InsightKind classifies a generated insight.
type InsightKind string

const (
	InsightEfficiency      InsightKind = "efficiency"
	InsightOverload        InsightKind = "overload"
	InsightCost            InsightKind = "cost"
	InsightRecommendations InsightKind = "recommendations"
)

// Insight is one heuristically generated finding. Recommendations carry
// their individual entries in Items; the other kinds use Content.
type Insight struct {
	Kind    InsightKind
	Title   string
	Content string
	Items   []string
}

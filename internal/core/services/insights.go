package services

import (
	"fmt"
	"sort"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
)

const (
	// minResolvedForRanking is the resolved-ticket floor below which an
	// analyst is not ranked or flagged; small samples say nothing.
	minResolvedForRanking = 10
	// overloadTicketsPerAnalyst triggers a headcount recommendation.
	overloadTicketsPerAnalyst = 300
	// slowResolutionHours triggers a resolution-time investigation.
	slowResolutionHours = 200
)

type analystStats struct {
	resolved   int
	totalHours float64
}

func (s analystStats) avgHours() float64 {
	return s.totalHours / float64(s.resolved)
}

type levelStats struct {
	total      int
	resolved   int
	totalHours float64
}

func (s levelStats) avgHours() float64 {
	if s.resolved == 0 {
		return 0
	}
	return s.totalHours / float64(s.resolved)
}

func (s levelStats) resolutionRate() float64 {
	if s.total == 0 {
		return 0
	}
	return float64(s.resolved) / float64(s.total) * 100
}

// GenerateInsights applies the fixed battery of heuristics over the
// filtered dataset. Each heuristic is independently optional; the result
// keeps the fixed kind order and is deterministic for identical inputs.
func GenerateInsights(
	filtered []domain.Ticket,
	salaries domain.SalaryTable,
	roster *domain.Roster,
) []domain.Insight {
	if len(filtered) == 0 {
		return nil
	}

	byAnalyst := make(map[string]analystStats)
	byLevel := make(map[domain.SupportLevel]levelStats)
	for _, t := range filtered {
		ls := byLevel[t.SupportLevel]
		ls.total++
		if t.IsResolved() {
			ls.resolved++
			if t.ResolutionHours != nil {
				ls.totalHours += *t.ResolutionHours
			}
		}
		byLevel[t.SupportLevel] = ls

		if t.Assignee == "" || !t.IsResolved() {
			continue
		}
		as := byAnalyst[t.Assignee]
		as.resolved++
		if t.ResolutionHours != nil {
			as.totalHours += *t.ResolutionHours
		}
		byAnalyst[t.Assignee] = as
	}

	var insights []domain.Insight
	if insight, ok := mostEfficientAnalyst(byAnalyst); ok {
		insights = append(insights, insight)
	}
	if insight, ok := mostOverloadedLevel(byLevel); ok {
		insights = append(insights, insight)
	}
	if insight, ok := bestCostBenefitLevel(byLevel, salaries); ok {
		insights = append(insights, insight)
	}
	if insight, ok := recommendations(filtered, byAnalyst, byLevel, roster); ok {
		insights = append(insights, insight)
	}
	return insights
}

// mostEfficientAnalyst ranks analysts above the resolved floor by
// resolved count over average resolution time.
func mostEfficientAnalyst(byAnalyst map[string]analystStats) (domain.Insight, bool) {
	var bestName string
	var bestStats analystStats
	bestEfficiency := 0.0
	for _, name := range sortedAnalysts(byAnalyst) {
		stats := byAnalyst[name]
		if stats.resolved <= minResolvedForRanking {
			continue
		}
		efficiency := float64(stats.resolved) / stats.avgHours()
		if efficiency > bestEfficiency {
			bestEfficiency = efficiency
			bestName = name
			bestStats = stats
		}
	}
	if bestName == "" {
		return domain.Insight{}, false
	}
	return domain.Insight{
		Kind:  domain.InsightEfficiency,
		Title: "Most efficient analyst",
		Content: fmt.Sprintf("%s resolved %d tickets with an average resolution time of %.1f hours.",
			bestName, bestStats.resolved, bestStats.avgHours()),
	}, true
}

// mostOverloadedLevel picks the explicit level with the highest average
// resolution time among its resolved tickets.
func mostOverloadedLevel(byLevel map[domain.SupportLevel]levelStats) (domain.Insight, bool) {
	var bestLevel domain.SupportLevel
	var bestStats levelStats
	found := false
	for _, level := range domain.ProjectableLevels {
		stats := byLevel[level]
		if stats.resolved == 0 {
			continue
		}
		if !found || stats.avgHours() > bestStats.avgHours() {
			found = true
			bestLevel = level
			bestStats = stats
		}
	}
	if !found {
		return domain.Insight{}, false
	}
	return domain.Insight{
		Kind:  domain.InsightOverload,
		Title: "Most overloaded level",
		Content: fmt.Sprintf("%s has an average resolution time of %.1f hours and a resolution rate of %.1f%%.",
			bestLevel, bestStats.avgHours(), bestStats.resolutionRate()),
	}, true
}

// bestCostBenefitLevel picks the explicit level with the lowest salary per
// resolved ticket.
func bestCostBenefitLevel(byLevel map[domain.SupportLevel]levelStats, salaries domain.SalaryTable) (domain.Insight, bool) {
	var bestLevel domain.SupportLevel
	bestCost := 0.0
	found := false
	for _, level := range domain.ProjectableLevels {
		stats := byLevel[level]
		if stats.resolved == 0 {
			continue
		}
		cost := salaries.ForLevel(level) / float64(stats.resolved)
		if !found || cost < bestCost {
			found = true
			bestLevel = level
			bestCost = cost
		}
	}
	if !found {
		return domain.Insight{}, false
	}
	return domain.Insight{
		Kind:  domain.InsightCost,
		Title: "Best cost-benefit level",
		Content: fmt.Sprintf("%s has an average cost of %.2f per resolved ticket.",
			bestLevel, bestCost),
	}, true
}

func recommendations(
	filtered []domain.Ticket,
	byAnalyst map[string]analystStats,
	byLevel map[domain.SupportLevel]levelStats,
	roster *domain.Roster,
) (domain.Insight, bool) {
	var items []string

	for _, level := range domain.ProjectableLevels {
		stats := byLevel[level]
		ticketsPerAnalyst := float64(stats.total) / float64(max(roster.Headcount(level), 1))
		if ticketsPerAnalyst > overloadTicketsPerAnalyst {
			items = append(items, fmt.Sprintf(
				"Consider growing the %s team: ticket volume per analyst is high.", level))
		}
		if stats.avgHours() > slowResolutionHours {
			items = append(items, fmt.Sprintf(
				"Investigate the high resolution time at %s (average of %.1f hours).",
				level, stats.avgHours()))
		}
	}

	// Overall average over tickets that actually carry a resolution time;
	// unresolved tickets are excluded from the denominator.
	var totalHours float64
	withHours := 0
	for _, t := range filtered {
		if t.ResolutionHours != nil {
			totalHours += *t.ResolutionHours
			withHours++
		}
	}
	if withHours > 0 {
		overallAvg := totalHours / float64(withHours)
		for _, name := range sortedAnalysts(byAnalyst) {
			stats := byAnalyst[name]
			if stats.resolved > minResolvedForRanking && stats.avgHours() > overallAvg*2 {
				items = append(items, fmt.Sprintf(
					"Review training needs for %s (average of %.1fh vs. overall %.1fh).",
					name, stats.avgHours(), overallAvg))
			}
		}
	}

	if len(items) == 0 {
		return domain.Insight{}, false
	}
	return domain.Insight{
		Kind:  domain.InsightRecommendations,
		Title: "Recommendations",
		Items: items,
	}, true
}

func sortedAnalysts(byAnalyst map[string]analystStats) []string {
	names := make([]string, 0, len(byAnalyst))
	for name := range byAnalyst {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package services

import "github.com/lorrc/ticket-analytics-backend/internal/core/domain"

// ComputeKPIs reduces the filtered dataset into the scalar metric summary.
// An empty input yields an all-zero report; no field ever divides by zero.
func ComputeKPIs(filtered []domain.Ticket, salaries domain.SalaryTable) domain.KPIReport {
	report := domain.KPIReport{
		CostPerMonth: make(map[string]float64),
	}
	if len(filtered) == 0 {
		return report
	}

	report.TotalTickets = len(filtered)

	var resolved []domain.Ticket
	var totalHours float64
	for _, t := range filtered {
		if !t.IsResolved() {
			continue
		}
		resolved = append(resolved, t)
		if t.ResolutionHours != nil {
			totalHours += *t.ResolutionHours
		}
	}

	report.ResolvedTickets = len(resolved)
	report.ResolutionRate = float64(len(resolved)) / float64(len(filtered)) * 100
	report.AvgResolutionHours = totalHours / float64(max(len(resolved), 1))

	// Blended per-ticket cost weighted by level mix. The weighted sum is
	// already a per-ticket figure; it is not divided by the resolved count
	// a second time.
	countByLevel := make(map[domain.SupportLevel]int)
	countByMonth := make(map[string]map[domain.SupportLevel]int)
	monthTotals := make(map[string]int)
	for _, t := range resolved {
		countByLevel[t.SupportLevel]++
		if t.MonthBucket == "" {
			continue
		}
		if countByMonth[t.MonthBucket] == nil {
			countByMonth[t.MonthBucket] = make(map[domain.SupportLevel]int)
		}
		countByMonth[t.MonthBucket][t.SupportLevel]++
		monthTotals[t.MonthBucket]++
	}

	report.AvgCostPerResolvedTicket = blendedCost(countByLevel, len(resolved), salaries)
	for month, byLevel := range countByMonth {
		report.CostPerMonth[month] = blendedCost(byLevel, monthTotals[month], salaries)
	}

	return report
}

func blendedCost(countByLevel map[domain.SupportLevel]int, total int, salaries domain.SalaryTable) float64 {
	if total == 0 {
		return 0
	}
	var cost float64
	for level, count := range countByLevel {
		cost += salaries.ForLevel(level) * (float64(count) / float64(total))
	}
	return cost
}

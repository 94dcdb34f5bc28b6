package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
	"github.com/lorrc/ticket-analytics-backend/internal/core/services"
)

var testSalaries = domain.SalaryTable{Level1: 3000, Level2: 4500, Level3: 6000}

// makeTickets builds count tickets at the given level, resolving the first
// resolvedCount of them with the given resolution hours each.
func makeTickets(level domain.SupportLevel, month string, count, resolvedCount int, hours float64) []domain.Ticket {
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	tickets := make([]domain.Ticket, 0, count)
	for i := 0; i < count; i++ {
		ticket := domain.Ticket{
			Assignee:     "Someone",
			CreatedAt:    &created,
			SupportLevel: level,
			MonthBucket:  month,
		}
		if i < resolvedCount {
			resolved := created.Add(time.Duration(hours * float64(time.Hour)))
			h := hours
			ticket.ResolvedAt = &resolved
			ticket.ResolutionHours = &h
		}
		tickets = append(tickets, ticket)
	}
	return tickets
}

func TestComputeKPIs_Empty(t *testing.T) {
	report := services.ComputeKPIs(nil, testSalaries)

	assert.Zero(t, report.TotalTickets)
	assert.Zero(t, report.ResolvedTickets)
	assert.Zero(t, report.ResolutionRate)
	assert.Zero(t, report.AvgResolutionHours)
	assert.Zero(t, report.AvgCostPerResolvedTicket)
	assert.Empty(t, report.CostPerMonth)
}

func TestComputeKPIs_Rates(t *testing.T) {
	// 100 tickets, 80 resolved at 5 hours each.
	tickets := makeTickets(domain.LevelOne, "2025-02", 100, 80, 5)

	report := services.ComputeKPIs(tickets, testSalaries)

	assert.Equal(t, 100, report.TotalTickets)
	assert.Equal(t, 80, report.ResolvedTickets)
	assert.InDelta(t, 80.0, report.ResolutionRate, 1e-9)
	assert.InDelta(t, 5.0, report.AvgResolutionHours, 1e-9)
}

func TestComputeKPIs_BlendedCost(t *testing.T) {
	// Resolved mix: 40 Level 1, 30 Level 2, 10 Level 3.
	var tickets []domain.Ticket
	tickets = append(tickets, makeTickets(domain.LevelOne, "2025-02", 40, 40, 4)...)
	tickets = append(tickets, makeTickets(domain.LevelTwo, "2025-02", 30, 30, 4)...)
	tickets = append(tickets, makeTickets(domain.LevelThree, "2025-02", 10, 10, 4)...)

	report := services.ComputeKPIs(tickets, testSalaries)

	// 3000*0.5 + 4500*0.375 + 6000*0.125
	assert.InDelta(t, 3937.5, report.AvgCostPerResolvedTicket, 1e-9)
}

func TestComputeKPIs_CostPerMonth(t *testing.T) {
	var tickets []domain.Ticket
	tickets = append(tickets, makeTickets(domain.LevelOne, "2025-01", 10, 10, 4)...)
	tickets = append(tickets, makeTickets(domain.LevelThree, "2025-02", 5, 5, 4)...)
	// Resolved tickets without a month bucket are excluded from the map.
	undated := domain.Ticket{SupportLevel: domain.LevelOne}
	resolved := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	undated.ResolvedAt = &resolved
	tickets = append(tickets, undated)

	report := services.ComputeKPIs(tickets, testSalaries)

	require.Len(t, report.CostPerMonth, 2)
	assert.InDelta(t, 3000.0, report.CostPerMonth["2025-01"], 1e-9)
	assert.InDelta(t, 6000.0, report.CostPerMonth["2025-02"], 1e-9)
}

func TestComputeKPIs_NoResolvedTickets(t *testing.T) {
	tickets := makeTickets(domain.LevelOne, "2025-02", 10, 0, 0)

	report := services.ComputeKPIs(tickets, testSalaries)

	assert.Equal(t, 10, report.TotalTickets)
	assert.Zero(t, report.ResolvedTickets)
	assert.Zero(t, report.ResolutionRate)
	assert.Zero(t, report.AvgResolutionHours, "no division by zero on an unresolved batch")
	assert.Zero(t, report.AvgCostPerResolvedTicket)
}

func TestComputeKPIs_OtherLevelUsesMeanSalary(t *testing.T) {
	tickets := makeTickets(domain.LevelOther, "2025-02", 10, 10, 2)

	report := services.ComputeKPIs(tickets, testSalaries)

	assert.InDelta(t, 4500.0, report.AvgCostPerResolvedTicket, 1e-9)
}

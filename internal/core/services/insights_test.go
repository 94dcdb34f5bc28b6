package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
	"github.com/lorrc/ticket-analytics-backend/internal/core/services"
)

// resolvedBy builds count resolved tickets for one assignee at the given
// level, each taking hours to resolve.
func resolvedBy(assignee string, level domain.SupportLevel, count int, hours float64) []domain.Ticket {
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	resolved := created.Add(time.Duration(hours * float64(time.Hour)))
	tickets := make([]domain.Ticket, 0, count)
	for i := 0; i < count; i++ {
		h := hours
		tickets = append(tickets, domain.Ticket{
			Assignee:        assignee,
			CreatedAt:       &created,
			ResolvedAt:      &resolved,
			ResolutionHours: &h,
			SupportLevel:    level,
			MonthBucket:     "2025-02",
		})
	}
	return tickets
}

func insightOfKind(insights []domain.Insight, kind domain.InsightKind) (domain.Insight, bool) {
	for _, insight := range insights {
		if insight.Kind == kind {
			return insight, true
		}
	}
	return domain.Insight{}, false
}

func TestGenerateInsights_Empty(t *testing.T) {
	insights := services.GenerateInsights(nil, testSalaries, domain.DefaultRoster())

	assert.Nil(t, insights)
}

func TestGenerateInsights_MostEfficientAnalyst(t *testing.T) {
	roster := domain.DefaultRoster()

	t.Run("picks highest resolved over average hours", func(t *testing.T) {
		var tickets []domain.Ticket
		tickets = append(tickets, resolvedBy("Alice", domain.LevelOne, 12, 2)...)
		tickets = append(tickets, resolvedBy("Bob", domain.LevelOne, 11, 10)...)

		insights := services.GenerateInsights(tickets, testSalaries, roster)

		insight, ok := insightOfKind(insights, domain.InsightEfficiency)
		require.True(t, ok)
		assert.Contains(t, insight.Content, "Alice")
		assert.Contains(t, insight.Content, "12 tickets")
	})

	t.Run("analysts at or under the resolved floor are not ranked", func(t *testing.T) {
		// Carol would win on efficiency but her sample is too small.
		var tickets []domain.Ticket
		tickets = append(tickets, resolvedBy("Alice", domain.LevelOne, 12, 4)...)
		tickets = append(tickets, resolvedBy("Carol", domain.LevelOne, 5, 0.5)...)

		insights := services.GenerateInsights(tickets, testSalaries, roster)

		insight, ok := insightOfKind(insights, domain.InsightEfficiency)
		require.True(t, ok)
		assert.Contains(t, insight.Content, "Alice")
	})

	t.Run("absent when nobody clears the floor", func(t *testing.T) {
		tickets := resolvedBy("Alice", domain.LevelOne, 10, 2)

		insights := services.GenerateInsights(tickets, testSalaries, roster)

		_, ok := insightOfKind(insights, domain.InsightEfficiency)
		assert.False(t, ok, "exactly 10 resolved does not clear the strict floor")
	})

	t.Run("unassigned tickets are ignored", func(t *testing.T) {
		tickets := resolvedBy("", domain.LevelOther, 20, 1)

		insights := services.GenerateInsights(tickets, testSalaries, roster)

		_, ok := insightOfKind(insights, domain.InsightEfficiency)
		assert.False(t, ok)
	})
}

func TestGenerateInsights_MostOverloadedLevel(t *testing.T) {
	roster := domain.DefaultRoster()

	var tickets []domain.Ticket
	tickets = append(tickets, resolvedBy("Alice", domain.LevelOne, 5, 5)...)
	tickets = append(tickets, resolvedBy("Bob", domain.LevelTwo, 5, 20)...)

	insights := services.GenerateInsights(tickets, testSalaries, roster)

	insight, ok := insightOfKind(insights, domain.InsightOverload)
	require.True(t, ok)
	assert.Contains(t, insight.Content, string(domain.LevelTwo))
	assert.Contains(t, insight.Content, "20.0 hours")
}

func TestGenerateInsights_BestCostBenefitLevel(t *testing.T) {
	roster := domain.DefaultRoster()

	// Salary per resolved ticket: L1 3000/10=300, L2 4500/2=2250, L3 6000/1=6000.
	var tickets []domain.Ticket
	tickets = append(tickets, resolvedBy("Alice", domain.LevelOne, 10, 2)...)
	tickets = append(tickets, resolvedBy("Bob", domain.LevelTwo, 2, 2)...)
	tickets = append(tickets, resolvedBy("Eve", domain.LevelThree, 1, 2)...)

	insights := services.GenerateInsights(tickets, testSalaries, roster)

	insight, ok := insightOfKind(insights, domain.InsightCost)
	require.True(t, ok)
	assert.Contains(t, insight.Content, string(domain.LevelOne))
	assert.Contains(t, insight.Content, "300.00")
}

func TestGenerateInsights_Recommendations(t *testing.T) {
	t.Run("high volume per analyst", func(t *testing.T) {
		roster := domain.NewRoster([]string{"Solo Analyst"}, nil, nil)
		tickets := makeTickets(domain.LevelOne, "2025-02", 301, 0, 0)

		insights := services.GenerateInsights(tickets, testSalaries, roster)

		insight, ok := insightOfKind(insights, domain.InsightRecommendations)
		require.True(t, ok)
		require.Len(t, insight.Items, 1)
		assert.Contains(t, insight.Items[0], "growing the Level 1 team")
	})

	t.Run("slow resolution at a level", func(t *testing.T) {
		roster := domain.DefaultRoster()
		tickets := resolvedBy("Alice", domain.LevelOne, 3, 250)

		insights := services.GenerateInsights(tickets, testSalaries, roster)

		insight, ok := insightOfKind(insights, domain.InsightRecommendations)
		require.True(t, ok)
		require.Len(t, insight.Items, 1)
		assert.Contains(t, insight.Items[0], "high resolution time")
		assert.Contains(t, insight.Items[0], string(domain.LevelOne))
	})

	t.Run("analyst far above the overall average", func(t *testing.T) {
		roster := domain.DefaultRoster()
		var tickets []domain.Ticket
		tickets = append(tickets, resolvedBy("Quick Analyst", domain.LevelOne, 30, 1)...)
		tickets = append(tickets, resolvedBy("Slow Analyst", domain.LevelOne, 11, 20)...)

		insights := services.GenerateInsights(tickets, testSalaries, roster)

		insight, ok := insightOfKind(insights, domain.InsightRecommendations)
		require.True(t, ok)
		found := false
		for _, item := range insight.Items {
			if strings.Contains(item, "Slow Analyst") && strings.Contains(item, "training") {
				found = true
			}
		}
		assert.True(t, found, "expected a training recommendation for the slow analyst")
	})

	t.Run("no recommendations on a healthy dataset", func(t *testing.T) {
		roster := domain.DefaultRoster()
		tickets := resolvedBy("Alice", domain.LevelOne, 20, 3)

		insights := services.GenerateInsights(tickets, testSalaries, roster)

		_, ok := insightOfKind(insights, domain.InsightRecommendations)
		assert.False(t, ok)
	})
}

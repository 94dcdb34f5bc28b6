package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRange_Days(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"ten day span", date(2025, 1, 1), date(2025, 1, 11), 10},
		{"partial day rounds up", date(2025, 1, 1), date(2025, 1, 1).Add(6 * time.Hour), 1},
		{"same instant floors at one", date(2025, 1, 1), date(2025, 1, 1), 1},
		{"reversed range floors at one", date(2025, 1, 11), date(2025, 1, 1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.DateRange{Start: tt.start, End: tt.end}
			assert.Equal(t, tt.want, r.Days())
		})
	}
}

func TestDateRange_Contains(t *testing.T) {
	r := domain.DateRange{Start: date(2025, 1, 1), End: date(2025, 1, 31)}

	assert.True(t, r.Contains(date(2025, 1, 1)), "start boundary is inclusive")
	assert.True(t, r.Contains(date(2025, 1, 31)), "end boundary is inclusive")
	assert.True(t, r.Contains(date(2025, 1, 15)))
	assert.False(t, r.Contains(date(2024, 12, 31)))
	assert.False(t, r.Contains(date(2025, 1, 31).Add(time.Second)))
}

func TestSalaryTable_ForLevel(t *testing.T) {
	salaries := domain.SalaryTable{Level1: 3000, Level2: 4500, Level3: 6000}

	assert.Equal(t, 3000.0, salaries.ForLevel(domain.LevelOne))
	assert.Equal(t, 4500.0, salaries.ForLevel(domain.LevelTwo))
	assert.Equal(t, 6000.0, salaries.ForLevel(domain.LevelThree))
	assert.Equal(t, 4500.0, salaries.ForLevel(domain.LevelOther), "Other uses the mean of the three levels")
}

func TestMonthBucketFor(t *testing.T) {
	assert.Equal(t, "2025-02", domain.MonthBucketFor(date(2025, 2, 10)))

	// Buckets are computed in UTC regardless of the source location.
	loc := time.FixedZone("UTC-3", -3*60*60)
	late := time.Date(2025, 1, 31, 23, 0, 0, 0, loc)
	assert.Equal(t, "2025-02", domain.MonthBucketFor(late))
}

func TestTicket_IsResolved(t *testing.T) {
	ts := date(2025, 3, 1)

	resolved := domain.Ticket{ResolvedAt: &ts}
	assert.True(t, resolved.IsResolved())

	open := domain.Ticket{CreatedAt: &ts}
	assert.False(t, open.IsResolved())
}

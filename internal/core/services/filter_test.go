package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
	"github.com/lorrc/ticket-analytics-backend/internal/core/services"
)

func ticketCreatedAt(ts time.Time) domain.Ticket {
	return domain.Ticket{Assignee: "Someone", CreatedAt: &ts}
}

func TestFilterByDateRange(t *testing.T) {
	r := domain.DateRange{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	t.Run("boundaries are inclusive", func(t *testing.T) {
		tickets := []domain.Ticket{
			ticketCreatedAt(r.Start),
			ticketCreatedAt(r.End),
			ticketCreatedAt(r.Start.Add(-time.Second)),
			ticketCreatedAt(r.End.Add(time.Second)),
		}

		filtered := services.FilterByDateRange(tickets, r)

		require.Len(t, filtered, 2)
		assert.Equal(t, r.Start, *filtered[0].CreatedAt)
		assert.Equal(t, r.End, *filtered[1].CreatedAt)
	})

	t.Run("undated tickets always pass", func(t *testing.T) {
		tickets := []domain.Ticket{
			{Assignee: "Someone"},
			ticketCreatedAt(r.End.AddDate(1, 0, 0)),
		}

		filtered := services.FilterByDateRange(tickets, r)

		require.Len(t, filtered, 1)
		assert.Nil(t, filtered[0].CreatedAt)
	})

	t.Run("input order is preserved", func(t *testing.T) {
		tickets := []domain.Ticket{
			ticketCreatedAt(r.Start.AddDate(0, 0, 20)),
			ticketCreatedAt(r.Start.AddDate(0, 0, 5)),
			ticketCreatedAt(r.Start.AddDate(0, 0, 10)),
		}

		filtered := services.FilterByDateRange(tickets, r)

		require.Len(t, filtered, 3)
		assert.Equal(t, *tickets[0].CreatedAt, *filtered[0].CreatedAt)
		assert.Equal(t, *tickets[1].CreatedAt, *filtered[1].CreatedAt)
		assert.Equal(t, *tickets[2].CreatedAt, *filtered[2].CreatedAt)
	})

	t.Run("filtering is idempotent", func(t *testing.T) {
		tickets := []domain.Ticket{
			ticketCreatedAt(r.Start),
			{Assignee: "Someone"},
			ticketCreatedAt(r.End.AddDate(0, 1, 0)),
		}

		once := services.FilterByDateRange(tickets, r)
		twice := services.FilterByDateRange(once, r)

		assert.Equal(t, once, twice)
	})

	t.Run("reversed range keeps only undated tickets", func(t *testing.T) {
		reversed := domain.DateRange{Start: r.End, End: r.Start}
		tickets := []domain.Ticket{
			ticketCreatedAt(r.Start.AddDate(0, 0, 10)),
			{Assignee: "Someone"},
		}

		filtered := services.FilterByDateRange(tickets, reversed)

		require.Len(t, filtered, 1)
		assert.Nil(t, filtered[0].CreatedAt)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, services.FilterByDateRange(nil, r))
	})
}

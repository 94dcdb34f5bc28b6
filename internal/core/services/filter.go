package services

import "github.com/lorrc/ticket-analytics-backend/internal/core/domain"

// FilterByDateRange returns the tickets whose creation timestamp falls
// inside the range, inclusive on both ends, preserving input order.
//
// A ticket with no creation timestamp always passes: it cannot be excluded
// by a date criterion it has no data for. That permissive rule is easy to
// get backwards and is deliberate; changing it would silently shift every
// KPI total, so it stays pending product sign-off.
func FilterByDateRange(tickets []domain.Ticket, r domain.DateRange) []domain.Ticket {
	filtered := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.CreatedAt == nil || r.Contains(*t.CreatedAt) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

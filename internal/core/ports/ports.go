package ports

import (
	"context"
	"io"
	"time"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
)

// SpreadsheetDecoder turns uploaded file bytes into ordered raw rows keyed
// by column header. The core never parses binary spreadsheet formats itself.
type SpreadsheetDecoder interface {
	Decode(ctx context.Context, r io.Reader, filename string) ([]domain.RawRow, error)
}

// EventBroadcaster pushes refresh notifications to connected dashboard
// clients after a dataset swap or settings change.
type EventBroadcaster interface {
	Broadcast(event domain.Event) error
}

// IngestResult summarizes a completed ingestion.
type IngestResult struct {
	FileName string
	Tickets  int
}

// Settings is a read snapshot of the mutable dashboard configuration.
type Settings struct {
	DateRange    domain.DateRange
	Salaries     domain.SalaryTable
	GrowthPct    float64
	UploadedFile string
	// FieldErrors maps input field names (upload, growth, nivel_1..3) to
	// the last validation message; a field clears when a valid value lands.
	FieldErrors map[string]string
}

// DashboardService owns the canonical dataset and the mutable configuration,
// and serves every derived view as a pure recomputation over them.
type DashboardService interface {
	// IngestFile decodes, normalizes and atomically swaps in a new canonical
	// dataset. On failure the previous dataset remains visible.
	IngestFile(ctx context.Context, r io.Reader, filename string) (*IngestResult, error)

	// Dataset returns the current canonical dataset snapshot.
	Dataset(ctx context.Context) []domain.Ticket
	// FilteredDataset returns the canonical dataset restricted to the
	// active date range.
	FilteredDataset(ctx context.Context) []domain.Ticket

	KPIs(ctx context.Context) domain.KPIReport
	StaffingProjection(ctx context.Context) []domain.ProjectionRow
	Insights(ctx context.Context) []domain.Insight

	Settings(ctx context.Context) Settings
	SetDateRange(ctx context.Context, start, end time.Time)
	// UpdateSalary and UpdateGrowth take the raw input string; the core owns
	// validation. Invalid input stores zero and records a field error.
	UpdateSalary(ctx context.Context, level string, raw string) error
	UpdateGrowth(ctx context.Context, raw string) error
}

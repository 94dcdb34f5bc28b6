package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
	apperrors "github.com/lorrc/ticket-analytics-backend/internal/core/errors"
	"github.com/lorrc/ticket-analytics-backend/internal/core/ports"
)

// Salary field keys as exposed on the configuration surface.
const (
	SalaryFieldLevel1 = "nivel_1"
	SalaryFieldLevel2 = "nivel_2"
	SalaryFieldLevel3 = "nivel_3"
	GrowthField       = "growth"
	UploadField       = "upload"
)

// DashboardConfig seeds the mutable dashboard state.
type DashboardConfig struct {
	DateRange      domain.DateRange
	Salaries       domain.SalaryTable
	GrowthPct      float64
	CapacityPerDay int
}

// viewKey identifies the inputs the derived views are keyed on. Views are
// recomputed only when the key changes.
type viewKey struct {
	version   uint64
	dateRange domain.DateRange
	salaries  domain.SalaryTable
	growthPct float64
}

type viewCache struct {
	key        viewKey
	valid      bool
	filtered   []domain.Ticket
	kpis       domain.KPIReport
	projection []domain.ProjectionRow
	insights   []domain.Insight
}

// DashboardService owns the canonical dataset and the mutable configuration.
// Every derived view is a memoized pure function of the current snapshot;
// a new upload replaces the dataset in one atomic swap, so readers never
// observe a half-updated mix of old and new tickets.
type DashboardService struct {
	decoder     ports.SpreadsheetDecoder
	roster      *domain.Roster
	broadcaster ports.EventBroadcaster
	logger      *slog.Logger

	mu             sync.Mutex
	dataset        []domain.Ticket
	datasetVersion uint64
	uploadedFile   string
	dateRange      domain.DateRange
	salaries       domain.SalaryTable
	growthPct      float64
	capacityPerDay int
	fieldErrors    map[string]string
	cache          viewCache
}

var _ ports.DashboardService = (*DashboardService)(nil)

// NewDashboardService creates the coordinating dashboard service.
func NewDashboardService(
	decoder ports.SpreadsheetDecoder,
	roster *domain.Roster,
	broadcaster ports.EventBroadcaster,
	cfg DashboardConfig,
	logger *slog.Logger,
) *DashboardService {
	capacity := cfg.CapacityPerDay
	if capacity <= 0 {
		capacity = DefaultAnalystCapacityPerDay
	}
	return &DashboardService{
		decoder:        decoder,
		roster:         roster,
		broadcaster:    broadcaster,
		logger:         logger.With("service", "dashboard"),
		dateRange:      cfg.DateRange,
		salaries:       cfg.Salaries,
		growthPct:      cfg.GrowthPct,
		capacityPerDay: capacity,
		fieldErrors:    make(map[string]string),
	}
}

// IngestFile decodes and normalizes one uploaded export and swaps it in as
// the new canonical dataset. Any failure records a field error under
// "upload" and leaves the previous dataset fully in place.
func (s *DashboardService) IngestFile(ctx context.Context, r io.Reader, filename string) (*ports.IngestResult, error) {
	rows, err := s.decoder.Decode(ctx, r, filename)
	if err != nil {
		ingErr := asIngestionError(err)
		s.recordUploadError(ingErr)
		return nil, ingErr
	}

	tickets, err := Normalize(rows, s.roster)
	if err != nil {
		s.recordUploadError(err)
		return nil, err
	}

	s.mu.Lock()
	s.dataset = tickets
	s.datasetVersion++
	s.uploadedFile = filename
	delete(s.fieldErrors, UploadField)
	s.mu.Unlock()

	s.logger.Info("dataset replaced",
		"file", filename,
		"tickets", len(tickets),
	)
	s.notify(domain.EventDatasetRefreshed)

	return &ports.IngestResult{FileName: filename, Tickets: len(tickets)}, nil
}

// Dataset returns the current canonical dataset snapshot.
func (s *DashboardService) Dataset(ctx context.Context) []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset
}

// FilteredDataset returns the canonical dataset restricted to the active
// date range.
func (s *DashboardService) FilteredDataset(ctx context.Context) []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views().filtered
}

// KPIs returns the metric summary over the filtered dataset.
func (s *DashboardService) KPIs(ctx context.Context) domain.KPIReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views().kpis
}

// StaffingProjection returns the per-level headcount projection.
func (s *DashboardService) StaffingProjection(ctx context.Context) []domain.ProjectionRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views().projection
}

// Insights returns the heuristic findings over the filtered dataset.
func (s *DashboardService) Insights(ctx context.Context) []domain.Insight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views().insights
}

// Settings returns a read snapshot of the mutable configuration.
func (s *DashboardService) Settings(ctx context.Context) ports.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	fieldErrors := make(map[string]string, len(s.fieldErrors))
	for field, msg := range s.fieldErrors {
		fieldErrors[field] = msg
	}
	return ports.Settings{
		DateRange:    s.dateRange,
		Salaries:     s.salaries,
		GrowthPct:    s.growthPct,
		UploadedFile: s.uploadedFile,
		FieldErrors:  fieldErrors,
	}
}

// SetDateRange replaces the active filter window. Start <= End is not
// enforced; a reversed range just filters out every dated ticket.
func (s *DashboardService) SetDateRange(ctx context.Context, start, end time.Time) {
	s.mu.Lock()
	s.dateRange = domain.DateRange{Start: start, End: end}
	s.mu.Unlock()
	s.notify(domain.EventSettingsUpdated)
}

// UpdateSalary validates and stores a per-level salary from its raw input
// string. Invalid input stores zero and keeps a field error until a valid
// value is supplied.
func (s *DashboardService) UpdateSalary(ctx context.Context, level string, raw string) error {
	var target *float64
	s.mu.Lock()
	switch level {
	case SalaryFieldLevel1:
		target = &s.salaries.Level1
	case SalaryFieldLevel2:
		target = &s.salaries.Level2
	case SalaryFieldLevel3:
		target = &s.salaries.Level3
	default:
		s.mu.Unlock()
		return apperrors.NewBadRequestError(apperrors.ErrUnknownSalaryLevel, "Unknown salary level: "+level)
	}
	err := s.storeValidatedLocked(target, level, raw)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.notify(domain.EventSettingsUpdated)
	return nil
}

// UpdateGrowth validates and stores the growth percentage from its raw
// input string, with the same fallback-to-zero rule as salaries.
func (s *DashboardService) UpdateGrowth(ctx context.Context, raw string) error {
	s.mu.Lock()
	err := s.storeValidatedLocked(&s.growthPct, GrowthField, raw)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.notify(domain.EventSettingsUpdated)
	return nil
}

// storeValidatedLocked parses a non-negative numeric input. On failure the
// stored value falls back to 0 rather than retaining the stale value.
func (s *DashboardService) storeValidatedLocked(target *float64, field, raw string) error {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		*target = 0
		s.fieldErrors[field] = apperrors.ErrValueNotNumeric.Error()
		return fieldValidationError(field, apperrors.ErrValueNotNumeric.Error())
	}
	if value < 0 {
		*target = 0
		s.fieldErrors[field] = apperrors.ErrValueNegative.Error()
		return fieldValidationError(field, apperrors.ErrValueNegative.Error())
	}
	*target = value
	delete(s.fieldErrors, field)
	return nil
}

// views returns the derived views for the current snapshot, recomputing
// them only when dataset version, range, salaries, or growth changed.
// Callers must hold s.mu.
func (s *DashboardService) views() *viewCache {
	key := viewKey{
		version:   s.datasetVersion,
		dateRange: s.dateRange,
		salaries:  s.salaries,
		growthPct: s.growthPct,
	}
	if s.cache.valid && s.cache.key == key {
		return &s.cache
	}

	filtered := FilterByDateRange(s.dataset, s.dateRange)
	s.cache = viewCache{
		key:        key,
		valid:      true,
		filtered:   filtered,
		kpis:       ComputeKPIs(filtered, s.salaries),
		projection: ProjectStaffing(filtered, s.dateRange, s.growthPct, s.roster, s.capacityPerDay),
		insights:   GenerateInsights(filtered, s.salaries, s.roster),
	}
	return &s.cache
}

func (s *DashboardService) recordUploadError(err error) {
	s.mu.Lock()
	s.fieldErrors[UploadField] = err.Error()
	s.mu.Unlock()
	s.logger.Warn("ingestion failed", "error", err)
}

func (s *DashboardService) notify(eventType domain.EventType) {
	if s.broadcaster == nil {
		return
	}
	_ = s.broadcaster.Broadcast(domain.Event{Type: eventType})
}

func asIngestionError(err error) error {
	var ingErr *apperrors.IngestionError
	if errors.As(err, &ingErr) {
		return err
	}
	return apperrors.NewIngestionError(err)
}

func fieldValidationError(field, message string) *apperrors.ValidationErrors {
	errs := apperrors.NewValidationErrors()
	errs.Add(field, message)
	return errs
}

package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/ticket-analytics-backend/internal/adapters/primary/validation"
	"github.com/lorrc/ticket-analytics-backend/internal/core/ports"
)

// SettingsHandler exposes the mutable dashboard configuration: date range,
// per-level salaries, growth projection.
type SettingsHandler struct {
	dashboard    ports.DashboardService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(dashboard ports.DashboardService, errorHandler *ErrorHandler, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		dashboard:    dashboard,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "settings"),
	}
}

// RegisterRoutes sets up the routing for all settings endpoints.
func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleGetSettings)
	r.Put("/date-range", h.HandleSetDateRange)
	r.Put("/salaries/{level}", h.HandleUpdateSalary)
	r.Put("/growth", h.HandleUpdateGrowth)
}

// --- Request/Response DTOs ---

// SetDateRangeRequest defines the expected JSON body for the filter window.
type SetDateRangeRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Validate validates the date range request. Start after end is allowed:
// the filter simply matches nothing then.
func (r *SetDateRangeRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("startDate", r.StartDate).
		Date("startDate", r.StartDate)

	v.Required("endDate", r.EndDate).
		Date("endDate", r.EndDate)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateValueRequest carries one raw input value. Salary and growth inputs
// arrive as the raw string the widget collected; the core owns validation.
type UpdateValueRequest struct {
	Value string `json:"value"`
}

// DateRangeDTO defines the JSON shape of the active filter window.
type DateRangeDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SalariesDTO defines the JSON shape of the salary table.
type SalariesDTO struct {
	Level1 float64 `json:"nivel_1"`
	Level2 float64 `json:"nivel_2"`
	Level3 float64 `json:"nivel_3"`
}

// SettingsDTO defines the JSON response for the configuration surface.
type SettingsDTO struct {
	DateRange        DateRangeDTO      `json:"dateRange"`
	Salaries         SalariesDTO       `json:"salaries"`
	GrowthProjection float64           `json:"growthProjection"`
	UploadedFile     string            `json:"uploadedFile,omitempty"`
	Errors           map[string]string `json:"errors"`
}

func toSettingsDTO(s ports.Settings) SettingsDTO {
	return SettingsDTO{
		DateRange: DateRangeDTO{
			StartDate: s.DateRange.Start.Format(time.RFC3339),
			EndDate:   s.DateRange.End.Format(time.RFC3339),
		},
		Salaries: SalariesDTO{
			Level1: s.Salaries.Level1,
			Level2: s.Salaries.Level2,
			Level3: s.Salaries.Level3,
		},
		GrowthProjection: s.GrowthPct,
		UploadedFile:     s.UploadedFile,
		Errors:           s.FieldErrors,
	}
}

// --- Handlers ---

// HandleGetSettings handles GET /settings
func (h *SettingsHandler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, toSettingsDTO(h.dashboard.Settings(r.Context())))
}

// HandleSetDateRange handles PUT /settings/date-range
func (h *SettingsHandler) HandleSetDateRange(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[SetDateRangeRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	start, _ := validation.ParseDate(req.StartDate)
	end, _ := validation.ParseDate(req.EndDate)

	h.dashboard.SetDateRange(r.Context(), start, end)

	h.logger.Info("date range updated",
		"start", start.Format(time.RFC3339),
		"end", end.Format(time.RFC3339),
	)

	WriteJSON(w, http.StatusOK, toSettingsDTO(h.dashboard.Settings(r.Context())))
}

// HandleUpdateSalary handles PUT /settings/salaries/{level}
func (h *SettingsHandler) HandleUpdateSalary(w http.ResponseWriter, r *http.Request) {
	level := chi.URLParam(r, "level")

	req, err := validation.DecodeAndValidate[UpdateValueRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.dashboard.UpdateSalary(r.Context(), level, req.Value); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("salary updated", "level", level)

	WriteJSON(w, http.StatusOK, toSettingsDTO(h.dashboard.Settings(r.Context())))
}

// HandleUpdateGrowth handles PUT /settings/growth
func (h *SettingsHandler) HandleUpdateGrowth(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[UpdateValueRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.dashboard.UpdateGrowth(r.Context(), req.Value); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("growth projection updated")

	WriteJSON(w, http.StatusOK, toSettingsDTO(h.dashboard.Settings(r.Context())))
}

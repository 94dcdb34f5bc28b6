package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/ticket-analytics-backend/internal/adapters/primary/validation"
	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
	"github.com/lorrc/ticket-analytics-backend/internal/core/ports"
)

const maxTicketsPerPage = 500

// DashboardHandler serves the derived analytical views.
type DashboardHandler struct {
	dashboard    ports.DashboardService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard ports.DashboardService, errorHandler *ErrorHandler, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard:    dashboard,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "dashboard"),
	}
}

// RegisterRoutes sets up the routing for all dashboard read endpoints.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleSummary)
	r.Get("/tickets", h.HandleListTickets)
	r.Get("/kpis", h.HandleKPIs)
	r.Get("/projection", h.HandleProjection)
	r.Get("/insights", h.HandleInsights)
}

// --- Response DTOs ---

// TicketDTO defines the JSON response for one normalized ticket.
type TicketDTO struct {
	Assignee        string        `json:"assignee,omitempty"`
	CreatedAt       *string       `json:"createdAt"`
	ResolvedAt      *string       `json:"resolvedAt"`
	ResolutionHours *float64      `json:"resolutionHours"`
	SupportLevel    string        `json:"supportLevel"`
	Month           string        `json:"month,omitempty"`
	Fields          domain.RawRow `json:"fields,omitempty"`
}

// KPIReportDTO defines the JSON response for the KPI summary.
type KPIReportDTO struct {
	TotalTickets             int                `json:"totalTickets"`
	ResolvedTickets          int                `json:"resolvedTickets"`
	ResolutionRate           float64            `json:"resolutionRate"`
	AvgResolutionHours       float64            `json:"avgResolutionHours"`
	AvgCostPerResolvedTicket float64            `json:"avgCostPerResolvedTicket"`
	CostPerMonth             map[string]float64 `json:"costPerMonth"`
}

// ProjectionRowDTO defines the JSON response for one staffing projection row.
type ProjectionRowDTO struct {
	Level              string `json:"level"`
	CurrentTickets     int    `json:"currentTickets"`
	ProjectedTickets   int    `json:"projectedTickets"`
	CapacityPerPeriod  int    `json:"capacityPerPeriod"`
	CurrentAnalysts    int    `json:"currentAnalysts"`
	NeededAnalysts     int    `json:"neededAnalysts"`
	AdditionalAnalysts int    `json:"additionalAnalysts"`
}

// InsightDTO defines the JSON response for one generated insight.
type InsightDTO struct {
	Kind    string   `json:"kind"`
	Title   string   `json:"title"`
	Content string   `json:"content,omitempty"`
	Items   []string `json:"items,omitempty"`
}

// SummaryResponse bundles everything the dashboard needs in one round trip.
type SummaryResponse struct {
	KPIs         KPIReportDTO       `json:"kpis"`
	Projection   []ProjectionRowDTO `json:"projection"`
	Insights     []InsightDTO       `json:"insights"`
	Settings     SettingsDTO        `json:"settings"`
	DatasetSize  int                `json:"datasetSize"`
	FilteredSize int                `json:"filteredSize"`
}

func toTicketDTO(ticket domain.Ticket) TicketDTO {
	var createdAt, resolvedAt *string
	if ticket.CreatedAt != nil {
		value := ticket.CreatedAt.Format(time.RFC3339)
		createdAt = &value
	}
	if ticket.ResolvedAt != nil {
		value := ticket.ResolvedAt.Format(time.RFC3339)
		resolvedAt = &value
	}

	return TicketDTO{
		Assignee:        ticket.Assignee,
		CreatedAt:       createdAt,
		ResolvedAt:      resolvedAt,
		ResolutionHours: ticket.ResolutionHours,
		SupportLevel:    string(ticket.SupportLevel),
		Month:           ticket.MonthBucket,
		Fields:          ticket.Fields,
	}
}

func toKPIReportDTO(report domain.KPIReport) KPIReportDTO {
	return KPIReportDTO{
		TotalTickets:             report.TotalTickets,
		ResolvedTickets:          report.ResolvedTickets,
		ResolutionRate:           report.ResolutionRate,
		AvgResolutionHours:       report.AvgResolutionHours,
		AvgCostPerResolvedTicket: report.AvgCostPerResolvedTicket,
		CostPerMonth:             report.CostPerMonth,
	}
}

func toProjectionDTOs(rows []domain.ProjectionRow) []ProjectionRowDTO {
	response := make([]ProjectionRowDTO, 0, len(rows))
	for _, row := range rows {
		response = append(response, ProjectionRowDTO{
			Level:              string(row.Level),
			CurrentTickets:     row.CurrentTickets,
			ProjectedTickets:   row.ProjectedTickets,
			CapacityPerPeriod:  row.CapacityPerPeriod,
			CurrentAnalysts:    row.CurrentAnalysts,
			NeededAnalysts:     row.NeededAnalysts,
			AdditionalAnalysts: row.AdditionalAnalysts,
		})
	}
	return response
}

func toInsightDTOs(insights []domain.Insight) []InsightDTO {
	response := make([]InsightDTO, 0, len(insights))
	for _, insight := range insights {
		response = append(response, InsightDTO{
			Kind:    string(insight.Kind),
			Title:   insight.Title,
			Content: insight.Content,
			Items:   insight.Items,
		})
	}
	return response
}

// --- Handlers ---

// HandleSummary handles GET /dashboard
func (h *DashboardHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings := h.dashboard.Settings(ctx)
	WriteJSON(w, http.StatusOK, SummaryResponse{
		KPIs:         toKPIReportDTO(h.dashboard.KPIs(ctx)),
		Projection:   toProjectionDTOs(h.dashboard.StaffingProjection(ctx)),
		Insights:     toInsightDTOs(h.dashboard.Insights(ctx)),
		Settings:     toSettingsDTO(settings),
		DatasetSize:  len(h.dashboard.Dataset(ctx)),
		FilteredSize: len(h.dashboard.FilteredDataset(ctx)),
	})
}

// HandleListTickets handles GET /dashboard/tickets
func (h *DashboardHandler) HandleListTickets(w http.ResponseWriter, r *http.Request) {
	pagination := validation.ParsePagination(r, maxTicketsPerPage)

	filtered := h.dashboard.FilteredDataset(r.Context())

	start := min(pagination.Offset, len(filtered))
	end := min(start+pagination.Limit, len(filtered))

	page := make([]TicketDTO, 0, end-start)
	for _, ticket := range filtered[start:end] {
		page = append(page, toTicketDTO(ticket))
	}

	WritePaginated(w, page, pagination.Limit, pagination.Offset, int64(len(filtered)))
}

// HandleKPIs handles GET /dashboard/kpis
func (h *DashboardHandler) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, toKPIReportDTO(h.dashboard.KPIs(r.Context())))
}

// HandleProjection handles GET /dashboard/projection
func (h *DashboardHandler) HandleProjection(w http.ResponseWriter, r *http.Request) {
	WriteList(w, toProjectionDTOs(h.dashboard.StaffingProjection(r.Context())))
}

// HandleInsights handles GET /dashboard/insights
func (h *DashboardHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	WriteList(w, toInsightDTOs(h.dashboard.Insights(r.Context())))
}

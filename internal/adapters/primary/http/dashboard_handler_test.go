package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/ticket-analytics-backend/internal/core/services"
)

const sampleCSV = "Assignee,Created,Resolved\n" +
	"Matheus Paleari,2025-02-10,2025-02-11\n" +
	"Matheus Paleari,2025-02-12,2025-02-13\n" +
	"Laura almeida,2025-02-14,\n" +
	"Agatha Anunciação,2025-03-01,2025-03-02\n" +
	"Nobody Known,2024-06-01,2024-06-02\n"

func newDashboardRouter(svc *services.DashboardService) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	errorHandler := NewErrorHandler(logger)
	handler := NewDashboardHandler(svc, errorHandler, logger)

	router := chi.NewRouter()
	router.Route("/dashboard", handler.RegisterRoutes)
	return router
}

func seededService(t *testing.T) *services.DashboardService {
	t.Helper()
	svc := newDashboardService()
	_, err := svc.IngestFile(context.Background(), strings.NewReader(sampleCSV), "export.csv")
	require.NoError(t, err)
	return svc
}

func getJSON(t *testing.T, router *chi.Mux, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(stdhttp.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if out != nil {
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(out))
	}
	return recorder
}

func TestDashboardSummary(t *testing.T) {
	router := newDashboardRouter(seededService(t))

	var response SummaryResponse
	recorder := getJSON(t, router, "/dashboard", &response)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)
	assert.Equal(t, 5, response.DatasetSize)
	// The 2024 ticket falls outside the default window.
	assert.Equal(t, 4, response.FilteredSize)
	assert.Equal(t, 4, response.KPIs.TotalTickets)
	assert.Equal(t, 3, response.KPIs.ResolvedTickets)
	assert.InDelta(t, 75.0, response.KPIs.ResolutionRate, 1e-9)
	assert.Len(t, response.Projection, 3)
	assert.Equal(t, "export.csv", response.Settings.UploadedFile)
}

func TestDashboardTickets(t *testing.T) {
	t.Run("lists the filtered dataset", func(t *testing.T) {
		router := newDashboardRouter(seededService(t))

		var response PaginatedResponse[TicketDTO]
		recorder := getJSON(t, router, "/dashboard/tickets", &response)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)
		assert.Len(t, response.Data, 4)
		assert.Equal(t, int64(4), response.Pagination.TotalCount)
		assert.False(t, response.Pagination.HasMore)
		assert.Equal(t, "Matheus Paleari", response.Data[0].Assignee)
		assert.Equal(t, "Level 1", response.Data[0].SupportLevel)
	})

	t.Run("paginates", func(t *testing.T) {
		router := newDashboardRouter(seededService(t))

		var response PaginatedResponse[TicketDTO]
		getJSON(t, router, "/dashboard/tickets?limit=2&offset=1", &response)

		assert.Len(t, response.Data, 2)
		assert.Equal(t, int64(4), response.Pagination.TotalCount)
		assert.True(t, response.Pagination.HasMore)
	})

	t.Run("offset past the end yields an empty page", func(t *testing.T) {
		router := newDashboardRouter(seededService(t))

		var response PaginatedResponse[TicketDTO]
		getJSON(t, router, "/dashboard/tickets?offset=100", &response)

		assert.Empty(t, response.Data)
	})
}

func TestDashboardKPIs(t *testing.T) {
	router := newDashboardRouter(seededService(t))

	var response KPIReportDTO
	recorder := getJSON(t, router, "/dashboard/kpis", &response)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)
	assert.Equal(t, 4, response.TotalTickets)
	assert.InDelta(t, 24.0, response.AvgResolutionHours, 1e-9)
	assert.Contains(t, response.CostPerMonth, "2025-02")
	assert.Contains(t, response.CostPerMonth, "2025-03")
}

func TestDashboardProjection(t *testing.T) {
	router := newDashboardRouter(seededService(t))

	var response ListResponse[ProjectionRowDTO]
	recorder := getJSON(t, router, "/dashboard/projection", &response)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)
	require.Equal(t, 3, response.Count)
	levels := make([]string, 0, 3)
	for _, row := range response.Data {
		levels = append(levels, row.Level)
	}
	assert.Equal(t, []string{"Level 1", "Level 2", "Level 3"}, levels)
}

func TestDashboardInsights_EmptyDataset(t *testing.T) {
	router := newDashboardRouter(newDashboardService())

	var response ListResponse[InsightDTO]
	recorder := getJSON(t, router, "/dashboard/insights", &response)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)
	assert.Zero(t, response.Count)
	assert.Empty(t, response.Data)
}

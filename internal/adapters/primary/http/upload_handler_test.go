package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/ticket-analytics-backend/internal/core/services"
)

func newUploadRouter(svc *services.DashboardService, maxBytes int64) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	errorHandler := NewErrorHandler(logger)
	handler := NewUploadHandler(svc, errorHandler, maxBytes, logger)

	router := chi.NewRouter()
	router.Route("/dashboard/upload", handler.RegisterRoutes)
	return router
}

func multipartUpload(t *testing.T, fieldName, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUpload(t *testing.T) {
	t.Run("ingests a csv export", func(t *testing.T) {
		svc := newDashboardService()
		router := newUploadRouter(svc, 1<<20)

		body, contentType := multipartUpload(t, "file", "export.csv", sampleCSV)
		req := httptest.NewRequest(stdhttp.MethodPost, "/dashboard/upload", body)
		req.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)

		var response UploadResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, "export.csv", response.FileName)
		assert.Equal(t, 5, response.Tickets)
	})

	t.Run("missing file part yields 400", func(t *testing.T) {
		router := newUploadRouter(newDashboardService(), 1<<20)

		body, contentType := multipartUpload(t, "wrong-field", "export.csv", sampleCSV)
		req := httptest.NewRequest(stdhttp.MethodPost, "/dashboard/upload", body)
		req.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, stdhttp.StatusBadRequest, recorder.Code)
	})

	t.Run("unsupported extension yields a field error", func(t *testing.T) {
		svc := newDashboardService()
		router := newUploadRouter(svc, 1<<20)

		body, contentType := multipartUpload(t, "file", "export.pdf", "not a spreadsheet")
		req := httptest.NewRequest(stdhttp.MethodPost, "/dashboard/upload", body)
		req.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		require.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code)

		var response ValidationErrorResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Contains(t, response.Fields, "upload")
	})

	t.Run("export missing a required column yields a field error", func(t *testing.T) {
		svc := newDashboardService()
		router := newUploadRouter(svc, 1<<20)

		csv := "Assignee,Created\nMatheus Paleari,2025-02-10\n"
		body, contentType := multipartUpload(t, "file", "export.csv", csv)
		req := httptest.NewRequest(stdhttp.MethodPost, "/dashboard/upload", body)
		req.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		require.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code)

		var response ValidationErrorResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		require.Contains(t, response.Fields, "upload")
		assert.Contains(t, response.Fields["upload"][0], "Resolved")
	})
}

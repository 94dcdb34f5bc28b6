package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/lorrc/ticket-analytics-backend/internal/core/errors"
	"github.com/lorrc/ticket-analytics-backend/internal/core/ports"
)

// UploadHandler accepts spreadsheet exports and hands them to the core for
// ingestion. Decoding and validation both live behind the dashboard
// service; this handler only unwraps the multipart envelope.
type UploadHandler struct {
	dashboard    ports.DashboardService
	errorHandler *ErrorHandler
	maxBytes     int64
	logger       *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(dashboard ports.DashboardService, errorHandler *ErrorHandler, maxBytes int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		dashboard:    dashboard,
		errorHandler: errorHandler,
		maxBytes:     maxBytes,
		logger:       logger.With("handler", "upload"),
	}
}

// RegisterRoutes sets up the upload endpoint.
func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleUpload)
}

// UploadResponse reports a completed ingestion.
type UploadResponse struct {
	FileName string `json:"fileName"`
	Tickets  int    `json:"tickets"`
}

// HandleUpload handles POST /dashboard/upload
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.ErrNoUploadedFile)
		return
	}
	defer file.Close()

	result, err := h.dashboard.IngestFile(r.Context(), file, header.Filename)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("file ingested",
		"file", result.FileName,
		"tickets", result.Tickets,
	)

	WriteJSON(w, http.StatusOK, UploadResponse{
		FileName: result.FileName,
		Tickets:  result.Tickets,
	})
}

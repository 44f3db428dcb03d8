// Package handler exposes batch imports and run history over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"docket/internal/importer/models"
	patternservice "docket/internal/pattern/service"
	"docket/pkg/platform/httputil"
	"docket/pkg/requestcontext"
)

// Service defines the import operations the handler needs.
type Service interface {
	ImportBatch(ctx context.Context, rows []models.Row, threshold float64) (*models.Run, error)
	ListRuns(ctx context.Context, limit int) ([]*models.Run, error)
}

// Handler wires import endpoints to the import service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an import handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts import endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/imports/hearings", h.HandleImport)
	r.Get("/imports/runs", h.HandleListRuns)
}

// ImportRequest is the wire shape of a batch submission. Threshold is
// optional; zero selects the server default.
type ImportRequest struct {
	Rows      []models.Row `json:"rows"`
	Threshold float64      `json:"threshold,omitempty"`
}

// RunResponse is the wire shape of a persisted run.
type RunResponse struct {
	ID                string                        `json:"id"`
	StartedAt         time.Time                     `json:"started_at"`
	FinishedAt        time.Time                     `json:"finished_at"`
	TotalRows         int                           `json:"total_rows"`
	Imported          int                           `json:"imported"`
	Duplicates        int                           `json:"duplicates"`
	NewPersonsCreated int                           `json:"new_persons_created"`
	Errors            []models.RowError             `json:"errors"`
	Disagreements     []patternservice.Disagreement `json:"disagreements,omitempty"`
}

func fromRun(run *models.Run) RunResponse {
	return RunResponse{
		ID:                run.ID.String(),
		StartedAt:         run.StartedAt,
		FinishedAt:        run.FinishedAt,
		TotalRows:         run.Report.TotalRows,
		Imported:          run.Report.Imported,
		Duplicates:        run.Report.Duplicates,
		NewPersonsCreated: run.Report.NewPersonsCreated,
		Errors:            run.Report.Errors,
		Disagreements:     run.Report.Disagreements,
	}
}

// HandleImport handles POST /imports/hearings requests.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[ImportRequest](w, r, h.logger)
	if !ok {
		return
	}

	run, err := h.service.ImportBatch(ctx, req.Rows, req.Threshold)
	if err != nil {
		h.logger.ErrorContext(ctx, "batch import failed",
			"request_id", requestID,
			"rows", len(req.Rows),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "batch import handled",
		"request_id", requestID,
		"run_id", run.ID,
		"imported", run.Report.Imported,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, fromRun(run))
}

// HandleListRuns handles GET /imports/runs requests.
func (h *Handler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	runs, err := h.service.ListRuns(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "run list failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	out := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, fromRun(run))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

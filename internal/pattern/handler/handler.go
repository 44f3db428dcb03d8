// Package handler exposes correction patterns over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"docket/internal/pattern/models"
	id "docket/pkg/domain"
	"docket/pkg/platform/httputil"
	"docket/pkg/requestcontext"
)

// Service defines the pattern operations the handler needs.
type Service interface {
	Record(ctx context.Context, pattern *models.Pattern) (*models.Pattern, error)
	List(ctx context.Context) ([]*models.Pattern, error)
}

// Handler wires pattern endpoints to the pattern service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a pattern handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts pattern endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/patterns", h.HandleList)
	r.Post("/patterns", h.HandleRecord)
}

// RecordRequest is the wire shape of a correction submission.
type RecordRequest struct {
	PatternType       string `json:"pattern_type"`
	OriginalValue     string `json:"original_value"`
	CorrectedValue    string `json:"corrected_value,omitempty"`
	CorrectedCategory string `json:"corrected_category,omitempty"`
}

// PatternResponse is the wire shape of a stored pattern.
type PatternResponse struct {
	ID                string    `json:"id"`
	PatternType       string    `json:"pattern_type"`
	OriginalValue     string    `json:"original_value"`
	NormalizedValue   string    `json:"normalized_value"`
	CorrectedValue    string    `json:"corrected_value,omitempty"`
	CorrectedCategory string    `json:"corrected_category,omitempty"`
	TimesUsed         int       `json:"times_used"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func fromPattern(p *models.Pattern) PatternResponse {
	return PatternResponse{
		ID:                p.ID.String(),
		PatternType:       string(p.Type),
		OriginalValue:     p.OriginalValue,
		NormalizedValue:   p.NormalizedValue,
		CorrectedValue:    p.CorrectedValue,
		CorrectedCategory: string(p.CorrectedCategory),
		TimesUsed:         p.TimesUsed,
		UpdatedAt:         p.UpdatedAt,
	}
}

// HandleRecord handles POST /patterns requests.
func (h *Handler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[RecordRequest](w, r, h.logger)
	if !ok {
		return
	}

	pattern, err := h.service.Record(ctx, &models.Pattern{
		Type:              models.PatternType(req.PatternType),
		OriginalValue:     req.OriginalValue,
		CorrectedValue:    req.CorrectedValue,
		CorrectedCategory: id.CaseCategory(req.CorrectedCategory),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "pattern record failed",
			"request_id", requestID,
			"pattern_type", req.PatternType,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, fromPattern(pattern))
}

// HandleList handles GET /patterns requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	patterns, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "pattern list failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	out := make([]PatternResponse, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, fromPattern(p))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

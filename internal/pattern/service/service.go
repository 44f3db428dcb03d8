// Package service applies and records correction patterns. Patterns are
// corrections a user made to an extracted value; the service decides when
// a stored correction outranks the rule-based classifier.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"docket/internal/classify"
	"docket/internal/match"
	"docket/internal/pattern/models"
	"docket/internal/pattern/store"
	id "docket/pkg/domain"
	dErrors "docket/pkg/domain-errors"
)

// Service coordinates pattern lookups and corrections.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

func New(store store.Store, logger *slog.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("pattern store is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{store: store, logger: logger}, nil
}

// Record stores a correction. The raw value is kept as received; the key
// is its normalized form, so accent and case variants of one raw value
// share a single pattern.
func (s *Service) Record(ctx context.Context, pattern *models.Pattern) (*models.Pattern, error) {
	if pattern == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "pattern is required")
	}
	if !pattern.Type.Valid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown pattern type %q", pattern.Type)
	}
	normalized := match.Normalize(pattern.OriginalValue)
	if normalized == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "original value is required")
	}
	if pattern.Type == models.PatternTypeCategory && !pattern.CorrectedCategory.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown category %q", pattern.CorrectedCategory)
	}
	pattern.OriginalValue = strings.TrimSpace(pattern.OriginalValue)
	pattern.NormalizedValue = normalized

	if err := s.store.Upsert(ctx, pattern); err != nil {
		return nil, fmt.Errorf("record pattern: %w", err)
	}

	s.logger.InfoContext(ctx, "correction pattern recorded",
		"pattern_type", pattern.Type,
		"original_value", pattern.OriginalValue,
		"times_used", pattern.TimesUsed,
	)
	return pattern, nil
}

// Lookup returns the stored pattern for a raw value, (nil, nil) when none
// exists.
func (s *Service) Lookup(ctx context.Context, patternType models.PatternType, rawValue string) (*models.Pattern, error) {
	normalized := match.Normalize(rawValue)
	if normalized == "" {
		return nil, nil
	}
	pattern, err := s.store.Find(ctx, patternType, normalized)
	if err != nil {
		return nil, fmt.Errorf("lookup pattern: %w", err)
	}
	return pattern, nil
}

// List returns all stored patterns, most used first.
func (s *Service) List(ctx context.Context) ([]*models.Pattern, error) {
	patterns, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	return patterns, nil
}

// Arbitration is the outcome of weighing a stored category correction
// against the rule-based classifier for one court value.
type Arbitration struct {
	Category   id.CaseCategory
	Confidence int
	// FromPattern is true when the stored correction outranked the
	// classifier.
	FromPattern bool
	// Disagreement is set when the winner and loser named different
	// categories. The importer surfaces these for review.
	Disagreement *Disagreement
}

// Disagreement records both sides of a category conflict.
type Disagreement struct {
	Court             string          `json:"court"`
	HeuristicCategory id.CaseCategory `json:"heuristic_category"`
	PatternCategory   id.CaseCategory `json:"pattern_category"`
	Chosen            id.CaseCategory `json:"chosen"`
}

// ArbitrateCategory resolves the category for a court value: the stored
// correction wins only when the classifier is less confident than the
// pattern's fixed confidence.
func (s *Service) ArbitrateCategory(ctx context.Context, court string, heuristic classify.Result) (Arbitration, error) {
	pattern, err := s.Lookup(ctx, models.PatternTypeCategory, court)
	if err != nil {
		return Arbitration{}, err
	}
	if pattern == nil || !pattern.CorrectedCategory.IsValid() {
		return Arbitration{Category: heuristic.Category, Confidence: heuristic.Confidence}, nil
	}

	if heuristic.Confidence < models.PatternConfidence {
		return Arbitration{
			Category:    pattern.CorrectedCategory,
			Confidence:  models.PatternConfidence,
			FromPattern: true,
		}, nil
	}

	out := Arbitration{Category: heuristic.Category, Confidence: heuristic.Confidence}
	if pattern.CorrectedCategory != heuristic.Category {
		out.Disagreement = &Disagreement{
			Court:             match.Normalize(court),
			HeuristicCategory: heuristic.Category,
			PatternCategory:   pattern.CorrectedCategory,
			Chosen:            heuristic.Category,
		}
	}
	return out, nil
}

package store

import (
	"context"
	"sort"
	"sync"

	"docket/internal/pattern/models"
	id "docket/pkg/domain"
	dErrors "docket/pkg/domain-errors"
	"docket/pkg/requestcontext"
)

type patternKey struct {
	patternType     models.PatternType
	normalizedValue string
}

// InMemoryStore keeps correction patterns in process memory.
type InMemoryStore struct {
	mu       sync.RWMutex
	patterns map[patternKey]*models.Pattern
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{patterns: make(map[patternKey]*models.Pattern)}
}

func (s *InMemoryStore) Upsert(ctx context.Context, pattern *models.Pattern) error {
	if pattern == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "pattern is required")
	}
	if !pattern.Type.Valid() {
		return dErrors.Newf(dErrors.CodeInvalidInput, "unknown pattern type %q", pattern.Type)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := requestcontext.Now(ctx)
	key := patternKey{patternType: pattern.Type, normalizedValue: pattern.NormalizedValue}

	if existing, exists := s.patterns[key]; exists {
		existing.TimesUsed++
		existing.OriginalValue = pattern.OriginalValue
		existing.CorrectedValue = pattern.CorrectedValue
		existing.CorrectedCategory = pattern.CorrectedCategory
		existing.UpdatedAt = now
		*pattern = *existing
		return nil
	}

	if pattern.ID.IsNil() {
		pattern.ID = id.NewPatternID()
	}
	pattern.TimesUsed = 1
	pattern.CreatedAt = now
	pattern.UpdatedAt = now

	stored := *pattern
	s.patterns[key] = &stored
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, patternType models.PatternType, normalizedValue string) (*models.Pattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if pattern, exists := s.patterns[patternKey{patternType: patternType, normalizedValue: normalizedValue}]; exists {
		copied := *pattern
		return &copied, nil
	}
	return nil, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Pattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Pattern, 0, len(s.patterns))
	for _, pattern := range s.patterns {
		copied := *pattern
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TimesUsed != out[j].TimesUsed {
			return out[i].TimesUsed > out[j].TimesUsed
		}
		return out[i].NormalizedValue < out[j].NormalizedValue
	})
	return out, nil
}

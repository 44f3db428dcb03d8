// Package runstore persists import runs so past batch reports stay
// inspectable.
package runstore

import (
	"context"
	"sort"
	"sync"

	"docket/internal/importer/models"
	id "docket/pkg/domain"
	dErrors "docket/pkg/domain-errors"
)

// InMemoryStore keeps runs in process memory.
type InMemoryStore struct {
	mu   sync.RWMutex
	runs map[id.RunID]*models.Run
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{runs: make(map[id.RunID]*models.Run)}
}

func (s *InMemoryStore) Save(_ context.Context, run *models.Run) error {
	if run == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "run is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *run
	s.runs[run.ID] = &stored
	return nil
}

func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]*models.Run, error) {
	if limit <= 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Run, 0, len(s.runs))
	for _, run := range s.runs {
		copied := *run
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"docket/internal/casefile/models"
	id "docket/pkg/domain"
	dErrors "docket/pkg/domain-errors"
	"docket/pkg/requestcontext"
)

type hearingKey struct {
	caseNumber  string
	scheduledAt int64
}

// InMemoryStore keeps cases and hearings in process memory.
type InMemoryStore struct {
	mu       sync.RWMutex
	cases    map[id.CaseID]*models.Case
	hearings map[id.HearingID]*models.Hearing
	byKey    map[hearingKey]id.HearingID
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		cases:    make(map[id.CaseID]*models.Case),
		hearings: make(map[id.HearingID]*models.Hearing),
		byKey:    make(map[hearingKey]id.HearingID),
	}
}

func keyOf(caseNumber string, scheduledAt time.Time) hearingKey {
	return hearingKey{caseNumber: caseNumber, scheduledAt: scheduledAt.UTC().Unix()}
}

func (s *InMemoryStore) CreateCase(ctx context.Context, c *models.Case) error {
	if c == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "case is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := requestcontext.Now(ctx)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	stored := *c
	s.cases[c.ID] = &stored
	return nil
}

func (s *InMemoryStore) FindCaseByNumber(_ context.Context, caseNumber string, personID id.PersonID) (*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.cases {
		if c.CaseNumber == caseNumber && c.PersonID == personID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *InMemoryStore) CreateHearing(ctx context.Context, h *models.Hearing) error {
	if h == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "hearing is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyOf(h.CaseNumber, h.ScheduledAt)
	if _, exists := s.byKey[key]; exists {
		return dErrors.New(dErrors.CodeConflict, "hearing already imported for this case and time")
	}

	if h.CreatedAt.IsZero() {
		h.CreatedAt = requestcontext.Now(ctx)
	}

	stored := *h
	s.hearings[h.ID] = &stored
	s.byKey[key] = h.ID
	return nil
}

func (s *InMemoryStore) FindHearingByKey(_ context.Context, caseNumber string, scheduledAt time.Time) (*models.Hearing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hearingID, exists := s.byKey[keyOf(caseNumber, scheduledAt)]
	if !exists {
		return nil, nil
	}
	copied := *s.hearings[hearingID]
	return &copied, nil
}

func (s *InMemoryStore) ListHearingsByPerson(_ context.Context, personID id.PersonID) ([]*models.Hearing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Hearing
	for _, h := range s.hearings {
		if h.PersonID == personID {
			copied := *h
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out, nil
}

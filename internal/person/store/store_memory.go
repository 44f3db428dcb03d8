package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"docket/internal/person/models"
	id "docket/pkg/domain"
	dErrors "docket/pkg/domain-errors"
	"docket/pkg/requestcontext"
)

// InMemoryStore keeps persons in process memory. It backs unit tests and
// single-node deployments without a database.
type InMemoryStore struct {
	mu      sync.RWMutex
	persons map[id.PersonID]*models.Person
	byTaxID map[string]id.PersonID
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		persons: make(map[id.PersonID]*models.Person),
		byTaxID: make(map[string]id.PersonID),
	}
}

func (s *InMemoryStore) Create(ctx context.Context, person *models.Person) error {
	if person == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "person is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if person.TaxID != "" {
		if _, exists := s.byTaxID[person.TaxID]; exists {
			return dErrors.New(dErrors.CodeConflict, "tax identifier already registered")
		}
	}

	now := requestcontext.Now(ctx)
	if person.CreatedAt.IsZero() {
		person.CreatedAt = now
	}
	person.UpdatedAt = now

	stored := *person
	s.persons[person.ID] = &stored
	if person.TaxID != "" {
		s.byTaxID[person.TaxID] = person.ID
	}
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, personID id.PersonID) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if person, exists := s.persons[personID]; exists {
		copied := *person
		return &copied, nil
	}
	return nil, nil
}

func (s *InMemoryStore) FindByTaxID(_ context.Context, taxID string) (*models.Person, error) {
	if taxID == "" {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	personID, exists := s.byTaxID[taxID]
	if !exists {
		return nil, nil
	}
	copied := *s.persons[personID]
	return &copied, nil
}

func (s *InMemoryStore) FindCandidatesByNamePrefix(_ context.Context, prefix string, limit int) ([]*models.Person, error) {
	if prefix == "" || limit <= 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*models.Person, 0, limit)
	for _, person := range s.persons {
		if strings.HasPrefix(person.NormalizedName, prefix) {
			copied := *person
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Person, 0, len(s.persons))
	for _, person := range s.persons {
		copied := *person
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DisplayName < out[j].DisplayName
	})
	return out, nil
}

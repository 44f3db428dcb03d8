// Package adapters bridges the importer's dependencies to other modules
// without letting the import loop depend on their concrete types.
package adapters

import (
	"context"

	"docket/internal/match"
	"docket/internal/person/models"
	"docket/internal/person/store"
)

// PersonRegistry implements match.Registry over the person store, so the
// candidate retriever works the same against memory and PostgreSQL.
type PersonRegistry struct {
	store store.Store
}

func NewPersonRegistry(store store.Store) *PersonRegistry {
	return &PersonRegistry{store: store}
}

func (r *PersonRegistry) FindByTaxID(ctx context.Context, taxID string) (*match.Candidate, error) {
	person, err := r.store.FindByTaxID(ctx, taxID)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, nil
	}
	candidate := toCandidate(person)
	return &candidate, nil
}

func (r *PersonRegistry) FindCandidatesByNamePrefix(ctx context.Context, prefix string, limit int) ([]match.Candidate, error) {
	persons, err := r.store.FindCandidatesByNamePrefix(ctx, prefix, limit)
	if err != nil {
		return nil, err
	}
	candidates := make([]match.Candidate, 0, len(persons))
	for _, person := range persons {
		candidates = append(candidates, toCandidate(person))
	}
	return candidates, nil
}

func toCandidate(person *models.Person) match.Candidate {
	return match.Candidate{
		ID:        person.ID,
		Name:      person.DisplayName,
		TaxID:     person.TaxID,
		CreatedAt: person.CreatedAt,
	}
}

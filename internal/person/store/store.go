// Package store persists person records. Both implementations honor the
// same contract: lookups return (nil, nil) on absence, and Create reports
// a conflict when another person already holds the tax identifier.
package store

import (
	"context"

	"docket/internal/person/models"
	id "docket/pkg/domain"
)

// Store is the persistence surface the registry and importer depend on.
type Store interface {
	// Create inserts a new person. It fails with a conflict error when the
	// tax identifier is already registered to another person.
	Create(ctx context.Context, person *models.Person) error
	// FindByID returns the person or (nil, nil) when absent.
	FindByID(ctx context.Context, personID id.PersonID) (*models.Person, error)
	// FindByTaxID looks up a person by exact tax identifier. Empty
	// identifiers never match.
	FindByTaxID(ctx context.Context, taxID string) (*models.Person, error)
	// FindCandidatesByNamePrefix returns up to limit persons whose
	// normalized name starts with prefix, oldest first.
	FindCandidatesByNamePrefix(ctx context.Context, prefix string, limit int) ([]*models.Person, error)
	// List returns all persons ordered by display name.
	List(ctx context.Context) ([]*models.Person, error)
}

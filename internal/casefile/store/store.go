// Package store persists cases and hearings. Lookups return (nil, nil)
// on absence; hearing creation reports a conflict when the import key
// (case number, scheduled time) is already taken.
package store

import (
	"context"
	"time"

	"docket/internal/casefile/models"
	id "docket/pkg/domain"
)

// Store is the persistence surface for cases and hearings.
type Store interface {
	// CreateCase inserts a new case.
	CreateCase(ctx context.Context, c *models.Case) error
	// FindCaseByNumber returns the case with the given normalized number
	// belonging to the person, or (nil, nil) when absent.
	FindCaseByNumber(ctx context.Context, caseNumber string, personID id.PersonID) (*models.Case, error)
	// CreateHearing inserts a new hearing. It fails with a conflict error
	// when a hearing with the same (case number, scheduled time) exists.
	CreateHearing(ctx context.Context, h *models.Hearing) error
	// FindHearingByKey looks a hearing up by its import key, (nil, nil)
	// when absent.
	FindHearingByKey(ctx context.Context, caseNumber string, scheduledAt time.Time) (*models.Hearing, error)
	// ListHearingsByPerson returns the person's hearings ordered by
	// scheduled time ascending.
	ListHearingsByPerson(ctx context.Context, personID id.PersonID) ([]*models.Hearing, error)
}

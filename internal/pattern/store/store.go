// Package store persists correction patterns keyed by (type, normalized
// value). Upsert increments the usage counter and overwrites the raw and
// corrected fields, so the most recent correction always wins.
package store

import (
	"context"

	"docket/internal/pattern/models"
)

// Store is the persistence surface for correction patterns.
type Store interface {
	// Upsert inserts the pattern with TimesUsed=1, or increments the
	// counter and overwrites the raw and corrected fields when the key
	// exists. The stored row is written back into pattern.
	Upsert(ctx context.Context, pattern *models.Pattern) error
	// Find returns the pattern for the key or (nil, nil) when absent.
	Find(ctx context.Context, patternType models.PatternType, normalizedValue string) (*models.Pattern, error)
	// List returns all patterns, most used first.
	List(ctx context.Context) ([]*models.Pattern, error)
}

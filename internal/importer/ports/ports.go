// Package ports defines the interfaces the importer depends on for
// concerns owned by other layers. Adapters implement them so the import
// loop stays free of transport and infrastructure detail.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks Locker,EventSink,RunStore

import (
	"context"

	"docket/internal/importer/models"
)

// Locker serializes person creation per identity key. Acquire blocks
// until the key is held or ctx is done; the returned release must be
// called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// EventSink receives the report of a finished run. Implementations must
// not fail the import: delivery problems are their own to log.
type EventSink interface {
	RunFinished(ctx context.Context, run *models.Run)
}

// RunStore persists import runs for later inspection.
type RunStore interface {
	Save(ctx context.Context, run *models.Run) error
	// ListRecent returns up to limit runs, most recent first.
	ListRecent(ctx context.Context, limit int) ([]*models.Run, error)
}

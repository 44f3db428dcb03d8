package runstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docket/internal/importer/models"
	id "docket/pkg/domain"
)

func TestInMemoryStoreListRecent(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		run := &models.Run{
			ID:        id.NewRunID(),
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		}
		run.Report.Imported = i
		require.NoError(t, store.Save(ctx, run))
	}

	runs, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 2, runs[0].Report.Imported)
	assert.Equal(t, 1, runs[1].Report.Imported)

	none, err := store.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInMemoryStoreSaveNil(t *testing.T) {
	store := NewMemory()
	assert.Error(t, store.Save(context.Background(), nil))
}

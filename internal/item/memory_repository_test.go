package item

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/retention/internal/srs"
)

func TestMemoryItemRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryItemRepository()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	reviewed := now.Add(-time.Hour)

	it := srs.Item{
		ID: "item-1", OwnerID: "u1", ContentRef: "ref",
		Easiness: 2.36, Interval: 15, Repetitions: 3,
		NextDue: now, LastReviewed: &reviewed,
	}
	require.NoError(t, repo.Put(ctx, &it))
	assert.Equal(t, int64(1), it.Revision)

	got, err := repo.Get(ctx, "item-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, it, *got)

	// The stored copy is not shared with callers
	got.LastReviewed = nil
	got.Easiness = 9
	again, err := repo.Get(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, it, *again)
}

func TestMemoryItemRepository_GetMissing(t *testing.T) {
	got, err := NewMemoryItemRepository().Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryItemRepository_Put(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		existing     []srs.Item
		put          srs.Item
		wantRevision int64
		wantErr      error
	}{
		{
			name:         "insert new item",
			put:          srs.NewItem("item-1", "u1", "", now),
			wantRevision: 1,
		},
		{
			name:     "insert duplicate conflicts",
			existing: []srs.Item{srs.NewItem("item-1", "u1", "", now)},
			put:      srs.NewItem("item-1", "u1", "", now),
			wantErr:  srs.ErrConflict,
		},
		{
			name:         "update at current revision",
			existing:     []srs.Item{srs.NewItem("item-1", "u1", "", now)},
			put:          srs.Item{ID: "item-1", OwnerID: "u1", Easiness: 2.6, Interval: 6, Repetitions: 2, Revision: 1},
			wantRevision: 2,
		},
		{
			name:     "update at stale revision conflicts",
			existing: []srs.Item{srs.NewItem("item-1", "u1", "", now)},
			put:      srs.Item{ID: "item-1", OwnerID: "u1", Revision: 5},
			wantErr:  srs.ErrConflict,
		},
		{
			name:    "update of missing item conflicts",
			put:     srs.Item{ID: "item-1", OwnerID: "u1", Revision: 1},
			wantErr: srs.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewMemoryItemRepository()
			for _, e := range tt.existing {
				e := e
				require.NoError(t, repo.Put(ctx, &e))
			}

			put := tt.put
			err := repo.Put(ctx, &put)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Equal(t, tt.put.Revision, put.Revision, "revision must not move on failure")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRevision, put.Revision)
		})
	}
}

func TestMemoryItemRepository_PutNil(t *testing.T) {
	err := NewMemoryItemRepository().Put(context.Background(), nil)
	assert.True(t, errors.Is(err, srs.ErrInvalidArgument))
}

func TestMemoryItemRepository_ListByOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryItemRepository()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, it := range []srs.Item{
		srs.NewItem("b", "u1", "", now),
		srs.NewItem("a", "u1", "", now),
		srs.NewItem("c", "u2", "", now),
	} {
		it := it
		require.NoError(t, repo.Put(ctx, &it))
	}

	got, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	empty, err := repo.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemoryItemRepository_ConcurrentConditionalPuts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryItemRepository()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := srs.NewItem("item-1", "u1", "", now)
	require.NoError(t, repo.Put(ctx, &seed))

	const writers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			it := seed
			it.Repetitions++
			if err := repo.Put(ctx, &it); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded, "only one writer may win a revision")
	got, err := repo.Get(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Revision)
}

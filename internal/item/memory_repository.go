package item

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/at-ishikawa/retention/internal/srs"
)

// MemoryItemRepository implements ItemRepository using an in-memory map.
type MemoryItemRepository struct {
	mu    sync.RWMutex
	items map[string]srs.Item
}

// NewMemoryItemRepository creates an empty MemoryItemRepository.
func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{
		items: make(map[string]srs.Item),
	}
}

// Get returns a copy of the item, or nil if not found.
func (r *MemoryItemRepository) Get(_ context.Context, itemID string) (*srs.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[itemID]
	if !ok {
		return nil, nil
	}
	copied := cloneItem(it)
	return &copied, nil
}

// Put stores a copy of the item if its revision matches the stored one.
func (r *MemoryItemRepository) Put(_ context.Context, it *srs.Item) error {
	if it == nil {
		return fmt.Errorf("%w: cannot store nil item", srs.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[it.ID]
	switch {
	case !ok && it.Revision != 0:
		return fmt.Errorf("%w: item %s was not found at revision %d", srs.ErrConflict, it.ID, it.Revision)
	case ok && stored.Revision != it.Revision:
		return fmt.Errorf("%w: item %s is at revision %d, not %d", srs.ErrConflict, it.ID, stored.Revision, it.Revision)
	}

	it.Revision++
	r.items[it.ID] = cloneItem(*it)
	return nil
}

// ListByOwner returns copies of all items owned by ownerID, ordered by ID.
func (r *MemoryItemRepository) ListByOwner(_ context.Context, ownerID string) ([]srs.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []srs.Item{}
	for _, it := range r.items {
		if it.OwnerID != ownerID {
			continue
		}
		result = append(result, cloneItem(it))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func cloneItem(it srs.Item) srs.Item {
	if it.LastReviewed != nil {
		reviewed := *it.LastReviewed
		it.LastReviewed = &reviewed
	}
	return it
}

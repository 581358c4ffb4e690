// Package item provides durable keyed storage for scheduled items.
package item

import (
	"context"
	"time"

	"github.com/at-ishikawa/retention/internal/srs"
)

//go:generate mockgen -source=repository.go -destination=../mocks/item/mock_repository.go -package=mock_item

// ItemRepository defines operations for storing items.
// Put is conditional on Item.Revision: 0 inserts a new item, anything else
// updates only when the stored revision still matches. A failed condition
// returns srs.ErrConflict; backend failures are wrapped with srs.ErrStorage.
type ItemRepository interface {
	Get(ctx context.Context, itemID string) (*srs.Item, error)
	Put(ctx context.Context, it *srs.Item) error
	ListByOwner(ctx context.Context, ownerID string) ([]srs.Item, error)
}

// DueLister is implemented by repositories that can answer due queries natively.
type DueLister interface {
	ListDueByOwner(ctx context.Context, ownerID string, now time.Time, limit int) ([]srs.Item, error)
}

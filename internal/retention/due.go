package retention

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/at-ishikawa/retention/internal/item"
	"github.com/at-ishikawa/retention/internal/srs"
)

// DefaultDueLimit caps due queries that do not ask for a limit.
const DefaultDueLimit = 10

// DueQuery answers which items an owner should review next. It never writes.
type DueQuery struct {
	repo         item.ItemRepository
	defaultLimit int
}

// NewDueQuery creates a DueQuery. defaultLimit <= 0 falls back to DefaultDueLimit.
func NewDueQuery(repo item.ItemRepository, defaultLimit int) *DueQuery {
	if defaultLimit <= 0 {
		defaultLimit = DefaultDueLimit
	}
	return &DueQuery{
		repo:         repo,
		defaultLimit: defaultLimit,
	}
}

// DueItems returns at most limit items of ownerID with NextDue <= now, oldest first.
// limit <= 0 uses the default limit. No due items is an empty slice, not an error.
func (q *DueQuery) DueItems(ctx context.Context, ownerID string, now time.Time, limit int) ([]srs.Item, error) {
	if limit <= 0 {
		limit = q.defaultLimit
	}

	if lister, ok := q.repo.(item.DueLister); ok {
		items, err := lister.ListDueByOwner(ctx, ownerID, now, limit)
		if err != nil {
			return nil, fmt.Errorf("repo.ListDueByOwner(%s) > %w", ownerID, err)
		}
		if items == nil {
			items = []srs.Item{}
		}
		return items, nil
	}

	all, err := q.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("repo.ListByOwner(%s) > %w", ownerID, err)
	}
	return selectDue(all, now, limit), nil
}

func selectDue(items []srs.Item, now time.Time, limit int) []srs.Item {
	due := []srs.Item{}
	for _, it := range items {
		if it.IsDue(now) {
			due = append(due, it)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		if !due[i].NextDue.Equal(due[j].NextDue) {
			return due[i].NextDue.Before(due[j].NextDue)
		}
		return due[i].ID < due[j].ID
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due
}

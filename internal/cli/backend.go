// Package cli implements the terminal front end of the retention engine.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/retention/internal/item"
	"github.com/at-ishikawa/retention/internal/learning"
	"github.com/at-ishikawa/retention/internal/retention"
	"github.com/at-ishikawa/retention/internal/srs"
	"github.com/at-ishikawa/retention/internal/statistics"
)

//go:generate mockgen -source=backend.go -destination=../mocks/cli/mock_backend.go -package=mock_cli Backend

// Backend is what the commands talk to: a local store or a remote server.
// *client.RetentionClient implements it for the remote case.
type Backend interface {
	AddItem(ctx context.Context, ownerID, contentRef, itemID string) (*srs.Item, error)
	ReportQuality(ctx context.Context, report srs.QualityReport) (*srs.ScheduleUpdateResult, error)
	DueItems(ctx context.Context, ownerID string, limit int) ([]srs.Item, error)
	Statistics(ctx context.Context, ownerID string) (*statistics.OwnerStatistics, error)
	ReviewHistory(ctx context.Context, itemID string) ([]learning.ReviewLog, error)
}

// LocalBackend runs the engine in process.
type LocalBackend struct {
	repo    item.ItemRepository
	manager *retention.Manager
	due     *retention.DueQuery
	now     func() time.Time
}

// NewLocalBackend creates a LocalBackend over repo.
func NewLocalBackend(repo item.ItemRepository, manager *retention.Manager, defaultDueLimit int) *LocalBackend {
	return &LocalBackend{
		repo:    repo,
		manager: manager,
		due:     retention.NewDueQuery(repo, defaultDueLimit),
		now:     time.Now,
	}
}

func (b *LocalBackend) AddItem(ctx context.Context, ownerID, contentRef, itemID string) (*srs.Item, error) {
	return b.manager.AddItem(ctx, retention.SeedRequest{OwnerID: ownerID, ContentRef: contentRef, ItemID: itemID})
}

func (b *LocalBackend) ReportQuality(ctx context.Context, report srs.QualityReport) (*srs.ScheduleUpdateResult, error) {
	return b.manager.ReportQuality(ctx, report)
}

func (b *LocalBackend) DueItems(ctx context.Context, ownerID string, limit int) ([]srs.Item, error) {
	return b.due.DueItems(ctx, ownerID, b.now().UTC(), limit)
}

func (b *LocalBackend) Statistics(ctx context.Context, ownerID string) (*statistics.OwnerStatistics, error) {
	items, err := b.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("repo.ListByOwner(%s) > %w", ownerID, err)
	}
	stats := statistics.Calculate(ownerID, items, b.now().UTC())
	return &stats, nil
}

func (b *LocalBackend) ReviewHistory(ctx context.Context, itemID string) ([]learning.ReviewLog, error) {
	return b.manager.ReviewHistory(ctx, itemID)
}

package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/retention/internal/config"
	"github.com/at-ishikawa/retention/internal/database"
	"github.com/at-ishikawa/retention/internal/item"
	"github.com/at-ishikawa/retention/internal/learning"
	"github.com/at-ishikawa/retention/internal/retention"
	"github.com/at-ishikawa/retention/internal/srs"
)

// Store is the opened item store together with the review history kept beside it.
type Store struct {
	Items      item.ItemRepository
	ReviewLogs learning.ReviewLogRepository
	Close      func() error
}

// OpenStore opens the configured storage for items and review logs.
// SQLite files are migrated on open; server databases are migrated with the migrate command.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		slog.Default().Warn("Using the in-memory store, items are lost on exit")
		return &Store{
			Items:      item.NewMemoryItemRepository(),
			ReviewLogs: learning.NewMemoryReviewLogRepository(),
			Close:      func() error { return nil },
		}, nil
	}

	if cfg.Storage.Driver == config.DriverSQLite {
		if _, err := database.Migrate(cfg.Storage, cfg.Database); err != nil {
			return nil, fmt.Errorf("database.Migrate(%s) > %w", cfg.Storage.Driver, err)
		}
	}
	db, err := database.Open(cfg.Storage, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open(%s) > %w", cfg.Storage.Driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: db.PingContext(%s) > %w", srs.ErrStorage, cfg.Storage.Driver, err)
	}
	slog.Default().Debug("Opened item store", "driver", cfg.Storage.Driver)
	return &Store{
		Items:      item.NewDBItemRepository(db),
		ReviewLogs: learning.NewDBReviewLogRepository(db),
		Close:      db.Close,
	}, nil
}

// NewManager creates a retention.Manager on store with the configured conflict retry policy.
func NewManager(store *Store, cfg config.RetentionConfig) *retention.Manager {
	return retention.NewManager(store.Items,
		retention.WithConflictRetry(cfg.ConflictRetryAttempts, time.Duration(cfg.ConflictRetryDelayMs)*time.Millisecond),
		retention.WithReviewLog(store.ReviewLogs),
	)
}

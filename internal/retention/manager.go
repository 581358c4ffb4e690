// Package retention creates items, applies quality reports to them and answers due queries.
package retention

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"

	"github.com/at-ishikawa/retention/internal/item"
	"github.com/at-ishikawa/retention/internal/learning"
	"github.com/at-ishikawa/retention/internal/srs"
)

const (
	DefaultConflictRetryAttempts = 3
	DefaultConflictRetryDelay    = 10 * time.Millisecond

	maxBackoffFactor = 32
)

// SeedRequest describes an item to create. ItemID is generated when empty.
type SeedRequest struct {
	OwnerID    string
	ContentRef string
	ItemID     string
}

// Manager owns item creation and the get-apply-put cycle of quality reports.
type Manager struct {
	repo          item.ItemRepository
	reviewLogs    learning.ReviewLogRepository
	now           func() time.Time
	newID         func() string
	retryAttempts uint
	retryDelay    time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithIDGenerator replaces the UUID generator used for seeded items without an ID.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) {
		m.newID = newID
	}
}

// WithConflictRetry sets how many times a conflicting report is attempted and the initial backoff.
func WithConflictRetry(attempts int, delay time.Duration) Option {
	return func(m *Manager) {
		if attempts < 1 {
			attempts = 1
		}
		m.retryAttempts = uint(attempts)
		m.retryDelay = delay
	}
}

// WithReviewLog records every applied report in logs.
func WithReviewLog(logs learning.ReviewLogRepository) Option {
	return func(m *Manager) {
		m.reviewLogs = logs
	}
}

// NewManager creates a Manager on top of repo.
func NewManager(repo item.ItemRepository, opts ...Option) *Manager {
	m := &Manager{
		repo:          repo,
		now:           time.Now,
		newID:         uuid.NewString,
		retryAttempts: DefaultConflictRetryAttempts,
		retryDelay:    DefaultConflictRetryDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// clock returns the current time in UTC at the precision every store keeps.
func (m *Manager) clock() time.Time {
	return m.now().UTC().Truncate(time.Microsecond)
}

// AddItem creates a new item due immediately.
func (m *Manager) AddItem(ctx context.Context, req SeedRequest) (*srs.Item, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return nil, fmt.Errorf("%w: owner_id is required", srs.ErrInvalidArgument)
	}

	itemID := req.ItemID
	if itemID == "" {
		itemID = m.newID()
	}

	it := srs.NewItem(itemID, req.OwnerID, req.ContentRef, m.clock())
	if err := m.repo.Put(ctx, &it); err != nil {
		if errors.Is(err, srs.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", srs.ErrItemExists, itemID)
		}
		return nil, fmt.Errorf("repo.Put(%s) > %w", itemID, err)
	}

	slog.Default().Debug("Added item", "itemID", it.ID, "ownerID", it.OwnerID)
	return &it, nil
}

// GetItem returns the stored item, or srs.ErrItemNotFound.
func (m *Manager) GetItem(ctx context.Context, itemID string) (*srs.Item, error) {
	it, err := m.repo.Get(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("repo.Get(%s) > %w", itemID, err)
	}
	if it == nil {
		return nil, fmt.Errorf("%w: %s", srs.ErrItemNotFound, itemID)
	}
	return it, nil
}

// ReportQuality applies a graded review to the item, creating it on first sight.
// Conflicting concurrent updates re-run the whole cycle; when the retries run out
// the error matches both srs.ErrStorage and srs.ErrConflict.
func (m *Manager) ReportQuality(ctx context.Context, report srs.QualityReport) (*srs.ScheduleUpdateResult, error) {
	if err := srs.ValidateQuality(report.Quality); err != nil {
		return nil, err
	}
	if report.ItemID == "" || report.OwnerID == "" {
		return nil, fmt.Errorf("%w: item_id and owner_id are required", srs.ErrInvalidArgument)
	}

	var (
		result     srs.ScheduleUpdateResult
		reviewedAt time.Time
	)
	err := retry.Do(
		func() error {
			r, at, err := m.reportOnce(ctx, report)
			if err != nil {
				return err
			}
			result, reviewedAt = r, at
			return nil
		},
		m.retryOptions(ctx, report.ItemID)...,
	)
	if err != nil {
		if errors.Is(err, srs.ErrConflict) {
			slog.Default().Warn("Gave up on conflicting quality report",
				"attempts", m.retryAttempts,
				"itemID", report.ItemID,
				"error", err)
			return nil, fmt.Errorf("%w: gave up after %d attempts > %w", srs.ErrStorage, m.retryAttempts, err)
		}
		return nil, err
	}

	slog.Default().Debug("Scheduled item",
		"itemID", result.ItemID,
		"quality", report.Quality,
		"responseLatency", report.ResponseLatency,
		"intervalDays", result.Interval,
		"nextDue", result.NextDue)
	m.recordReview(ctx, report, result, reviewedAt)
	return &result, nil
}

// recordReview stores the history entry. The schedule is already committed, so a failure is only logged.
func (m *Manager) recordReview(ctx context.Context, report srs.QualityReport, result srs.ScheduleUpdateResult, reviewedAt time.Time) {
	if m.reviewLogs == nil {
		return
	}
	log := learning.NewReviewLog(report, result, reviewedAt)
	if err := m.reviewLogs.Create(ctx, &log); err != nil {
		slog.Default().Warn("Failed to record review",
			"itemID", report.ItemID,
			"error", err)
	}
}

// ReviewHistory returns the recorded reviews of an existing item, oldest first.
func (m *Manager) ReviewHistory(ctx context.Context, itemID string) ([]learning.ReviewLog, error) {
	if _, err := m.GetItem(ctx, itemID); err != nil {
		return nil, err
	}
	if m.reviewLogs == nil {
		return []learning.ReviewLog{}, nil
	}
	logs, err := m.reviewLogs.FindByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("reviewLogs.FindByItem(%s) > %w", itemID, err)
	}
	return logs, nil
}

func (m *Manager) retryOptions(ctx context.Context, itemID string) []retry.Option {
	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(m.retryAttempts),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, srs.ErrConflict)
		}),
		retry.OnRetry(func(n uint, err error) {
			// retry-go also calls this after the last attempt
			if n+1 >= m.retryAttempts || !errors.Is(err, srs.ErrConflict) {
				return
			}
			slog.Default().Info("Retrying conflicting quality report",
				"attempt", n+1,
				"itemID", itemID,
				"error", err)
		}),
	}
	if m.retryDelay <= 0 {
		return append(opts, retry.Delay(0), retry.DelayType(retry.FixedDelay))
	}
	// Jittered exponential backoff capped at maxBackoffFactor delays
	return append(opts,
		retry.Delay(m.retryDelay),
		retry.MaxDelay(m.retryDelay*maxBackoffFactor),
		retry.MaxJitter(m.retryDelay),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
	)
}

func (m *Manager) reportOnce(ctx context.Context, report srs.QualityReport) (srs.ScheduleUpdateResult, time.Time, error) {
	current, err := m.repo.Get(ctx, report.ItemID)
	if err != nil {
		return srs.ScheduleUpdateResult{}, time.Time{}, fmt.Errorf("repo.Get(%s) > %w", report.ItemID, err)
	}

	now := m.clock()
	if current == nil {
		fresh := srs.NewItem(report.ItemID, report.OwnerID, "", now)
		current = &fresh
	} else if current.OwnerID != report.OwnerID {
		slog.Default().Warn("Quality report for another owner's item",
			"itemID", report.ItemID,
			"ownerID", current.OwnerID,
			"reportedOwnerID", report.OwnerID)
		return srs.ScheduleUpdateResult{}, time.Time{}, fmt.Errorf("%w: item %s", srs.ErrOwnerMismatch, report.ItemID)
	}

	updated := srs.Apply(*current, report.Quality, now)
	if err := m.repo.Put(ctx, &updated); err != nil {
		return srs.ScheduleUpdateResult{}, time.Time{}, fmt.Errorf("repo.Put(%s) > %w", report.ItemID, err)
	}
	return srs.NewScheduleUpdateResult(updated), now, nil
}

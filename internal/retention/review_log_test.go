package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/retention/internal/item"
	"github.com/at-ishikawa/retention/internal/learning"
	mock_learning "github.com/at-ishikawa/retention/internal/mocks/learning"
	"github.com/at-ishikawa/retention/internal/srs"
)

func TestManager_ReviewHistory(t *testing.T) {
	ctx := context.Background()
	logs := learning.NewMemoryReviewLogRepository()
	manager := NewManager(item.NewMemoryItemRepository(), WithClock(fixedClock), WithReviewLog(logs))

	_, err := manager.ReviewHistory(ctx, "item1")
	assert.ErrorIs(t, err, srs.ErrItemNotFound)

	_, err = manager.ReportQuality(ctx, srs.QualityReport{ItemID: "item1", OwnerID: "u1", Quality: 4, ResponseLatency: 1500 * time.Millisecond})
	require.NoError(t, err)
	reportedAt := testNow.Add(-time.Minute)
	_, err = manager.ReportQuality(ctx, srs.QualityReport{ItemID: "item1", OwnerID: "u1", Quality: 1, Timestamp: reportedAt})
	require.NoError(t, err)
	// Rejected reports leave no history
	_, err = manager.ReportQuality(ctx, srs.QualityReport{ItemID: "item1", OwnerID: "u2", Quality: 5})
	require.ErrorIs(t, err, srs.ErrOwnerMismatch)

	got, err := manager.ReviewHistory(ctx, "item1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 2.5, got[0].Easiness, 1e-9)
	assert.InDelta(t, 1.96, got[1].Easiness, 1e-9)
	got[0].Easiness, got[1].Easiness = 0, 0
	assert.Equal(t, []learning.ReviewLog{
		{ID: 1, ItemID: "item1", OwnerID: "u1", Quality: 4, ResponseTimeMs: 1500, ReviewedAt: testNow, IntervalDays: 1, Repetitions: 1},
		{ID: 2, ItemID: "item1", OwnerID: "u1", Quality: 1, ReviewedAt: testNow, IntervalDays: 1, Repetitions: 0, ReportedAt: &reportedAt},
	}, got)
}

func TestManager_ReviewHistory_WithoutLog(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(item.NewMemoryItemRepository(), WithClock(fixedClock))
	_, err := manager.AddItem(ctx, SeedRequest{OwnerID: "u1", ItemID: "item1"})
	require.NoError(t, err)

	got, err := manager.ReviewHistory(ctx, "item1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestManager_ReportQuality_ReviewLogFailureKeepsSchedule(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	logs := mock_learning.NewMockReviewLogRepository(ctrl)
	logs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	logs.EXPECT().FindByItem(gomock.Any(), "item1").Return(nil, errors.New("disk full"))

	repo := item.NewMemoryItemRepository()
	manager := NewManager(repo, WithClock(fixedClock), WithReviewLog(logs))

	result, err := manager.ReportQuality(ctx, srs.QualityReport{ItemID: "item1", OwnerID: "u1", Quality: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Repetitions)

	stored, err := repo.Get(ctx, "item1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 1, stored.Repetitions)

	_, err = manager.ReviewHistory(ctx, "item1")
	assert.ErrorContains(t, err, "reviewLogs.FindByItem(item1)")
}

package srs

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewItem(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	got := NewItem("item-1", "u1", "What is the capital of France?", now)

	assert.Equal(t, Item{
		ID:          "item-1",
		OwnerID:     "u1",
		ContentRef:  "What is the capital of France?",
		Easiness:    2.5,
		Interval:    1,
		Repetitions: 0,
		NextDue:     now,
	}, got)
	assert.True(t, got.IsDue(now))
}

func TestItem_IsDue(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		nextDue time.Time
		want    bool
	}{
		{name: "overdue", nextDue: now.Add(-Day), want: true},
		{name: "due exactly now", nextDue: now, want: true},
		{name: "not yet due", nextDue: now.Add(time.Second), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Item{NextDue: tt.nextDue}.IsDue(now))
		})
	}
}

func TestValidateQuality(t *testing.T) {
	for q := MinQuality; q <= MaxQuality; q++ {
		assert.NoError(t, ValidateQuality(q))
	}
	for _, q := range []int{-1, 6} {
		err := ValidateQuality(q)
		assert.True(t, errors.Is(err, ErrInvalidQuality))
	}
}

func TestNewScheduleUpdateResult(t *testing.T) {
	due := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
	got := NewScheduleUpdateResult(Item{ID: "item-1", OwnerID: "u1", Easiness: 2.6, Interval: 6, Repetitions: 2, NextDue: due})

	assert.Equal(t, ScheduleUpdateResult{
		ItemID:      "item-1",
		NextDue:     due,
		Interval:    6,
		Easiness:    2.6,
		Repetitions: 2,
	}, got)
}

// Package srs holds the spaced-repetition item model and the SM-2 scheduling function.
package srs

import "time"

// Item is a single memorization item tracked by the scheduler.
type Item struct {
	ID           string     `json:"item_id" yaml:"item_id"`
	OwnerID      string     `json:"owner_id" yaml:"owner_id"`
	ContentRef   string     `json:"content_ref" yaml:"content_ref"`
	Easiness     float64    `json:"easiness" yaml:"easiness"`
	Interval     int        `json:"interval_days" yaml:"interval_days"`
	Repetitions  int        `json:"repetitions" yaml:"repetitions"`
	NextDue      time.Time  `json:"next_due" yaml:"next_due"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty" yaml:"last_reviewed,omitempty"`

	// Revision is the stored version used for conditional writes. 0 means never persisted.
	Revision int64 `json:"-" yaml:"-"`
}

// NewItem returns an item with the initial SM-2 state, due at now.
func NewItem(itemID, ownerID, contentRef string, now time.Time) Item {
	return Item{
		ID:          itemID,
		OwnerID:     ownerID,
		ContentRef:  contentRef,
		Easiness:    DefaultEasinessFactor,
		Interval:    1,
		Repetitions: 0,
		NextDue:     now,
	}
}

// IsDue reports whether the item is eligible for review at now.
func (it Item) IsDue(now time.Time) bool {
	return !it.NextDue.After(now)
}

// QualityReport is a single graded review of an item.
type QualityReport struct {
	ItemID          string
	OwnerID         string
	Quality         int
	ResponseLatency time.Duration // informational, not used for scheduling
	// Timestamp is when the client says the review happened. It is kept in the
	// review log; scheduling always uses the server clock. Zero when unknown.
	Timestamp time.Time
}

// ScheduleUpdateResult is the outcome of applying a quality report.
type ScheduleUpdateResult struct {
	ItemID      string    `json:"item_id"`
	NextDue     time.Time `json:"next_review"`
	Interval    int       `json:"interval_days"`
	Easiness    float64   `json:"easiness"`
	Repetitions int       `json:"repetitions"`
}

// NewScheduleUpdateResult builds the result for an updated item.
func NewScheduleUpdateResult(it Item) ScheduleUpdateResult {
	return ScheduleUpdateResult{
		ItemID:      it.ID,
		NextDue:     it.NextDue,
		Interval:    it.Interval,
		Easiness:    it.Easiness,
		Repetitions: it.Repetitions,
	}
}

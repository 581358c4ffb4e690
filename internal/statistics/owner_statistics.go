package statistics

import (
	"time"

	"github.com/at-ishikawa/retention/internal/srs"
)

const (
	// LearningRepetitions is the repetition count below which an item is still being learned.
	LearningRepetitions = 3
	// MatureIntervalDays is the interval from which an item counts as mature.
	MatureIntervalDays = 21
)

// OwnerStatistics summarises one owner's items at a point in time
type OwnerStatistics struct {
	OwnerID         string     `json:"owner_id" yaml:"owner_id"`
	Total           int        `json:"total" yaml:"total"`
	DueNow          int        `json:"due_now" yaml:"due_now"`
	NeverReviewed   int        `json:"never_reviewed" yaml:"never_reviewed"`
	Learning        int        `json:"learning" yaml:"learning"`
	Mature          int        `json:"mature" yaml:"mature"`
	AverageEasiness float64    `json:"average_easiness" yaml:"average_easiness"`
	NextDue         *time.Time `json:"next_due,omitempty" yaml:"next_due,omitempty"`
}

// Calculate aggregates items as of now.
// NextDue is the earliest due time after now, nil when nothing is upcoming.
// Items of other owners are not filtered out; callers pass one owner's items.
func Calculate(ownerID string, items []srs.Item, now time.Time) OwnerStatistics {
	stats := OwnerStatistics{
		OwnerID: ownerID,
		Total:   len(items),
	}
	if len(items) == 0 {
		return stats
	}

	var easinessSum float64
	for _, it := range items {
		easinessSum += it.Easiness

		if it.IsDue(now) {
			stats.DueNow++
		} else if stats.NextDue == nil || it.NextDue.Before(*stats.NextDue) {
			next := it.NextDue
			stats.NextDue = &next
		}
		if it.LastReviewed == nil {
			stats.NeverReviewed++
		}
		if it.Repetitions < LearningRepetitions {
			stats.Learning++
		}
		if it.Interval >= MatureIntervalDays {
			stats.Mature++
		}
	}
	stats.AverageEasiness = easinessSum / float64(len(items))
	return stats
}

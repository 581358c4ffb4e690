// Package learning records the review history of items.
package learning

import (
	"time"

	"github.com/at-ishikawa/retention/internal/srs"
)

// ReviewLog is one applied quality report together with the schedule it produced.
type ReviewLog struct {
	ID             int64     `db:"id" json:"id" yaml:"id"`
	ItemID         string    `db:"item_id" json:"item_id" yaml:"item_id"`
	OwnerID        string    `db:"owner_id" json:"owner_id" yaml:"owner_id"`
	Quality        int       `db:"quality" json:"quality" yaml:"quality"`
	ResponseTimeMs int64     `db:"response_time_ms" json:"response_time_ms" yaml:"response_time_ms"`
	ReviewedAt     time.Time `db:"reviewed_at" json:"reviewed_at" yaml:"reviewed_at"`
	IntervalDays   int       `db:"interval_days" json:"interval_days" yaml:"interval_days"`
	Easiness       float64   `db:"easiness" json:"easiness" yaml:"easiness"`
	Repetitions    int       `db:"repetitions" json:"repetitions" yaml:"repetitions"`
	// ReportedAt is the client's own review time, nil when the report had none.
	ReportedAt *time.Time `db:"reported_at" json:"reported_at,omitempty" yaml:"reported_at,omitempty"`
}

// NewReviewLog builds the log entry of report applied as result at reviewedAt.
func NewReviewLog(report srs.QualityReport, result srs.ScheduleUpdateResult, reviewedAt time.Time) ReviewLog {
	var reportedAt *time.Time
	if !report.Timestamp.IsZero() {
		t := report.Timestamp.UTC().Truncate(time.Microsecond)
		reportedAt = &t
	}
	return ReviewLog{
		ItemID:         report.ItemID,
		OwnerID:        report.OwnerID,
		Quality:        report.Quality,
		ResponseTimeMs: report.ResponseLatency.Milliseconds(),
		ReviewedAt:     reviewedAt,
		IntervalDays:   result.Interval,
		Easiness:       result.Easiness,
		Repetitions:    result.Repetitions,
		ReportedAt:     reportedAt,
	}
}

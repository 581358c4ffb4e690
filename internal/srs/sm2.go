package srs

import (
	"fmt"
	"math"
	"time"
)

const (
	DefaultEasinessFactor = 2.5
	MinEasinessFactor     = 1.3

	MinQuality     = 0
	MaxQuality     = 5
	PassingQuality = 3
)

// Day is the length of one interval unit.
const Day = 24 * time.Hour

// Apply returns the item state after a review graded with quality at now.
// quality must already be validated; an out-of-range value panics.
func Apply(it Item, quality int, now time.Time) Item {
	if err := ValidateQuality(quality); err != nil {
		panic(fmt.Sprintf("srs.Apply: %v", err))
	}

	easiness := UpdateEasinessFactor(it.Easiness, quality)

	repetitions := 0
	if quality >= PassingQuality {
		repetitions = it.Repetitions + 1
	}
	interval := CalculateNextInterval(it.Interval, easiness, repetitions)

	reviewed := now
	it.Easiness = easiness
	it.Repetitions = repetitions
	it.Interval = interval
	it.NextDue = now.Add(time.Duration(interval) * Day)
	it.LastReviewed = &reviewed
	return it
}

// UpdateEasinessFactor calculates new EF based on quality grade.
// The delta applies on failures too, so a lapse lowers EF down to the floor.
func UpdateEasinessFactor(ef float64, quality int) float64 {
	q := float64(quality)
	delta := 0.1 - (5-q)*(0.08+(5-q)*0.02)
	return math.Max(ef+delta, MinEasinessFactor)
}

// CalculateNextInterval calculates the next review interval in days.
// repetitions is the streak after the review; 0 means the review failed.
func CalculateNextInterval(lastInterval int, ef float64, repetitions int) int {
	switch repetitions {
	case 0, 1:
		return 1
	case 2:
		return 6
	default:
		// Compounds on the previous interval
		if lastInterval < 1 {
			lastInterval = 1
		}
		return int(math.Ceil(float64(lastInterval) * ef))
	}
}

package srs

import (
	"errors"
	"fmt"
)

// Sentinel errors for scheduling and storage.
// Use errors.Is to check: errors.Is(err, srs.ErrInvalidQuality)
var (
	ErrInvalidQuality  = errors.New("srs: quality must be between 0 and 5")
	ErrInvalidArgument = errors.New("srs: invalid argument")
	ErrItemNotFound    = errors.New("srs: item not found")
	ErrItemExists      = errors.New("srs: item already exists")
	ErrOwnerMismatch   = errors.New("srs: item belongs to a different owner")
	ErrConflict        = errors.New("srs: concurrent update conflict")
	ErrStorage         = errors.New("srs: storage failure")
)

// ValidateQuality returns ErrInvalidQuality if quality is outside [MinQuality, MaxQuality].
func ValidateQuality(quality int) error {
	if quality < MinQuality || quality > MaxQuality {
		return fmt.Errorf("%w: got %d", ErrInvalidQuality, quality)
	}
	return nil
}

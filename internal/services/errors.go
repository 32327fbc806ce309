package services

import (
	"errors"
	"fmt"
)

var (
	ErrModuleNotFound   = errors.New("module not found")
	ErrProgressNotFound = errors.New("progress not found")
	ErrGigNotFound      = errors.New("gig not found")
	ErrAlreadyApplied   = errors.New("already applied")
	ErrUserNotFound     = errors.New("user not found")
	ErrSyncDisabled     = errors.New("cloud sync is disabled")
	ErrSyncUnavailable  = errors.New("cloud sync is not available yet")
)

// ErrInsufficientCredits carries the amounts so the HTTP layer can
// surface them to the caller.
type ErrInsufficientCredits struct {
	Required  int64
	Available int64
}

func (e *ErrInsufficientCredits) Error() string {
	return fmt.Sprintf("insufficient credits: required %d, available %d", e.Required, e.Available)
}

func IsInsufficientCredits(err error) (*ErrInsufficientCredits, bool) {
	var ice *ErrInsufficientCredits
	if errors.As(err, &ice) {
		return ice, true
	}
	return nil, false
}

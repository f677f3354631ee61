package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates a request that failed local validation and
	// never reached the store.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateDate is returned when a daily log already exists for the date.
	ErrDuplicateDate = errors.New("a log already exists for this date")
	// ErrDuplicateWeek is returned when a journal already exists for the week.
	ErrDuplicateWeek = errors.New("a journal already exists for this week")
	// ErrNotFound is returned when a row cannot be located for the acting user.
	ErrNotFound = errors.New("record not found")
	// ErrPermissionDenied is returned when a row belongs to another user.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNothingToSummarize is returned when a week has no logged hours.
	ErrNothingToSummarize = errors.New("no daily logs found for this week")
)

// MaxTotalHours is the program-wide cap on accumulated OJT hours.
const MaxTotalHours = 500.0

// QuotaError reports a submission that would push the user past the cap.
type QuotaError struct {
	Remaining float64
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("this entry would exceed the %v hour limit, %v hours remaining", MaxTotalHours, e.Remaining)
}

// ProviderError wraps a failure from an external text-generation backend.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

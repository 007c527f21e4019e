package timer

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNoOpenEntry     = errors.New("no open time entry")
	ErrEntryNotFound   = errors.New("time entry not found")

	// ErrInvalidTimeRange rejects a toggle whose override timestamp
	// precedes the open entry's start. Elapsed time is never negative;
	// corrections that would make it so are refused, not clamped.
	ErrInvalidTimeRange = errors.New("end time precedes start time")

	// ErrToggleConflict means a concurrent toggle for the same user won
	// the race. The losing call made no change; callers may retry.
	ErrToggleConflict = errors.New("concurrent toggle in progress")
)

package attachment

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound covers true absence, a name mismatch, and a
	// visibility denial alike so callers cannot probe for existence.
	ErrNotFound = errors.New("attachment not found")

	ErrInvalidTicketID = errors.New("ticket id is not a valid token")
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrEmptyName       = errors.New("file name must not be empty")
	ErrLengthRequired  = errors.New("payload length must be declared")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")

	// ErrStorage is any store or filesystem failure, including a
	// visible record whose file is missing. Detail stays in the log.
	ErrStorage = errors.New("storage failure")
)

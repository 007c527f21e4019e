package ticket

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("ticket not found")
	ErrInvalidID       = errors.New("ticket id is not a valid token")
	ErrForbidden       = errors.New("only the ticket creator or an admin may do this")
)

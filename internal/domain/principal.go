package domain

// Role of an authenticated user.
type Role string

const (
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// Principal is the resolved identity behind a request. It is built by
// the auth middleware from a verified token and passed explicitly into
// every service call; services never read identity from ambient state.
type Principal struct {
	ID       int64
	Role     Role
	Language string
}

// Authenticated reports whether the principal was actually resolved.
func (p Principal) Authenticated() bool { return p.ID > 0 }

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

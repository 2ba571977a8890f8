package domain

import "errors"

// Role represents a caller's access level. Role resolution happens in
// the authorization gate before the ledger is invoked; the ledger only
// records the actor on entries.
type Role string

const (
	// RoleAdmin may adjust balances and resolve settlement requests.
	RoleAdmin Role = "admin"

	// RolePlayer may operate on its own account only.
	RolePlayer Role = "player"

	// RoleService is a trusted game or platform backend.
	RoleService Role = "service"
)

var validRoles = map[Role]bool{
	RoleAdmin:   true,
	RolePlayer:  true,
	RoleService: true,
}

// Actor identifies who requested an operation.
type Actor struct {
	ID   string
	Role Role
}

// IsValid checks if the role is known.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanAdjust reports whether the role may perform admin adjustments.
func (r Role) CanAdjust() bool {
	return r == RoleAdmin
}

// CanResolveRequests reports whether the role may resolve settlement requests.
func (r Role) CanResolveRequests() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)

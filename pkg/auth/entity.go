package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role is a closed set of account kinds. It is immutable after creation.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleApplicant, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// User is a domain entity representing a system user. PasswordHash is empty
// for accounts created through an external identity provider.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         Role
	Active       bool
	PasswordHash string
	GoogleID     string
	Picture      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor is the authenticated identity attached to a request.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// internal/domain/identity/entity.go
package identity

import (
	"fmt"
	"time"
)

// Role is the closed set of roles an identity can hold.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleViewer Role = "viewer"
)

// ParseRole converts a stored or submitted string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleViewer:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Identity is a persisted account. PasswordHash is nil for OAuth-only
// accounts and never leaves the repository/service boundary.
type Identity struct {
	ID            string     `json:"id" db:"id"`
	Email         string     `json:"email" db:"email"`
	Name          string     `json:"name" db:"name"`
	PasswordHash  *string    `json:"-" db:"password_hash"`
	Role          Role       `json:"role" db:"role"`
	EmailVerified *time.Time `json:"email_verified" db:"email_verified"`
	Image         *string    `json:"image" db:"image"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// LinkedAccount ties an identity to an external provider login.
// Provider is unique per identity.
type LinkedAccount struct {
	ID             string    `json:"id" db:"id"`
	IdentityID     string    `json:"identity_id" db:"identity_id"`
	Provider       string    `json:"provider" db:"provider"`
	ProviderUserID string    `json:"provider_user_id" db:"provider_user_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// VerificationToken is a one-shot email verification token.
type VerificationToken struct {
	ID         string     `json:"id" db:"id"`
	IdentityID string     `json:"identity_id" db:"identity_id"`
	Token      string     `json:"-" db:"token"`
	ExpiresAt  time.Time  `json:"expires_at" db:"expires_at"`
	UsedAt     *time.Time `json:"used_at" db:"used_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

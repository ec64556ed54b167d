// internal/pkg/token/claims.go
package token

import (
	"time"

	"gateway-auth-service/internal/domain/identity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session projection carried in the signed token. It holds the
// identity reference, role and verification timestamp. The password hash is
// never projected into a token.
type Claims struct {
	Role          identity.Role `json:"role"`
	Email         string        `json:"email"`
	Name          string        `json:"name"`
	EmailVerified *time.Time    `json:"email_verified"`
	jwt.RegisteredClaims
}

// UserID is the identity reference (the registered subject).
func (c *Claims) UserID() string {
	return c.Subject
}

// HasRole reports whether the claims carry one of the given roles.
func (c *Claims) HasRole(roles ...identity.Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// IsVerified reports whether the email verification timestamp is set.
func (c *Claims) IsVerified() bool {
	return c.EmailVerified != nil
}

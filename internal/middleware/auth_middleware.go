// internal/middleware/auth_middleware.go
package middleware

import (
	"net/http"
	"strings"

	"gateway-auth-service/internal/domain/identity"
	"gateway-auth-service/internal/guard"
	"gateway-auth-service/internal/pkg/response"
	"gateway-auth-service/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// SessionCookie carries the token for browser page flows; API clients send
// a Bearer header.
const SessionCookie = "session"

const claimsKey = "claims"

type AuthMiddleware struct {
	verifier *token.Verifier
}

func NewAuthMiddleware(verifier *token.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// ReadClaims decodes the session token into request-scoped claims when one
// is present. It never aborts: the guards downstream decide what a missing
// or invalid session means for their route.
func (m *AuthMiddleware) ReadClaims() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			c.Next()
			return
		}

		claims, err := m.verifier.Verify(raw)
		if err != nil {
			// Invalid and absent sessions look the same to guards.
			c.Next()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAuth aborts API requests without a valid session.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := ClaimsFrom(c); !ok {
			response.Error(c, http.StatusUnauthorized, "missing or invalid session token", nil)
			return
		}
		c.Next()
	}
}

// RequireRoleAPI aborts API requests whose session lacks all given roles.
func (m *AuthMiddleware) RequireRoleAPI(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "missing or invalid session token", nil)
			return
		}
		if !claims.HasRole(roles...) {
			response.Error(c, http.StatusForbidden, "insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

// GuardPage adapts a guard decision to a page route: a redirect is terminal,
// nothing downstream runs after it.
func GuardPage(decide func(*token.Claims) guard.Decision) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := ClaimsFrom(c)
		d := decide(claims)
		if !d.Proceed() {
			c.Redirect(http.StatusSeeOther, d.Redirect)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuthenticatedPage redirects unauthenticated page requests to login.
func RequireAuthenticatedPage() gin.HandlerFunc {
	return GuardPage(guard.RequireAuthenticated)
}

// RequireRolePage redirects under-privileged page requests to /unauthorized.
func RequireRolePage(roles ...identity.Role) gin.HandlerFunc {
	return GuardPage(func(claims *token.Claims) guard.Decision {
		return guard.RequireRole(claims, roles...)
	})
}

// RequireVerifiedEmailPage redirects unverified identities to /verify-email.
func RequireVerifiedEmailPage() gin.HandlerFunc {
	return GuardPage(guard.RequireVerifiedEmail)
}

// OptionalAuthenticatedPage guards pages that render either way; the
// decision always proceeds, with or without claims.
func OptionalAuthenticatedPage() gin.HandlerFunc {
	return GuardPage(guard.OptionalAuthenticated)
}

// extractToken pulls the session token from the Authorization header, with
// a cookie fallback for page navigation.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	return ""
}

// ClaimsFrom returns the request-scoped claims, if any.
func ClaimsFrom(c *gin.Context) (*token.Claims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*token.Claims)
	return claims, ok
}

// MustClaims returns the request claims or panics; only call behind
// RequireAuth.
func MustClaims(c *gin.Context) *token.Claims {
	claims, ok := ClaimsFrom(c)
	if !ok {
		panic("claims not found in context")
	}
	return claims
}

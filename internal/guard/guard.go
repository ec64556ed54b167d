// internal/guard/guard.go

// Package guard decides whether a request may proceed based on its session
// claims. Outcomes are explicit values, not non-local jumps: the transport
// layer interprets a redirect as terminal.
package guard

import (
	"gateway-auth-service/internal/domain/identity"
	"gateway-auth-service/internal/pkg/token"
)

// Redirect destinations for rejected requests.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
	VerifyEmailPath  = "/verify-email"
)

// Decision is the outcome of a guard: either proceed with claims or redirect.
type Decision struct {
	Claims   *token.Claims
	Redirect string
}

// Proceed reports whether the request may continue.
func (d Decision) Proceed() bool {
	return d.Redirect == ""
}

func proceed(claims *token.Claims) Decision {
	return Decision{Claims: claims}
}

func redirectTo(dest string) Decision {
	return Decision{Redirect: dest}
}

// RequireAuthenticated redirects to the sign-in page when no valid claims
// are present.
func RequireAuthenticated(claims *token.Claims) Decision {
	if claims == nil {
		return redirectTo(LoginPath)
	}
	return proceed(claims)
}

// RequireRole allows only the given roles through, redirecting everyone else
// to the unauthorized page.
func RequireRole(claims *token.Claims, allowed ...identity.Role) Decision {
	d := RequireAuthenticated(claims)
	if !d.Proceed() {
		return d
	}
	if !claims.HasRole(allowed...) {
		return redirectTo(UnauthorizedPath)
	}
	return proceed(claims)
}

// RequireVerifiedEmail redirects identities without a verification timestamp
// to the verify-email page.
func RequireVerifiedEmail(claims *token.Claims) Decision {
	d := RequireAuthenticated(claims)
	if !d.Proceed() {
		return d
	}
	if !claims.IsVerified() {
		return redirectTo(VerifyEmailPath)
	}
	return proceed(claims)
}

// OptionalAuthenticated never redirects: pages that render differently for
// signed-in users stay reachable either way.
func OptionalAuthenticated(claims *token.Claims) Decision {
	return proceed(claims)
}

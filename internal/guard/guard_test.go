package guard

import (
	"testing"
	"time"

	"gateway-auth-service/internal/domain/identity"
	"gateway-auth-service/internal/pkg/token"

	"github.com/golang-jwt/jwt/v5"
)

func claimsFor(role identity.Role, verified bool) *token.Claims {
	c := &token.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "u1",
		},
	}
	if verified {
		now := time.Now()
		c.EmailVerified = &now
	}
	return c
}

func TestRequireAuthenticated(t *testing.T) {
	if d := RequireAuthenticated(nil); d.Proceed() || d.Redirect != LoginPath {
		t.Errorf("nil claims: got %+v, want redirect to %s", d, LoginPath)
	}

	claims := claimsFor(identity.RoleUser, false)
	d := RequireAuthenticated(claims)
	if !d.Proceed() {
		t.Fatalf("valid claims redirected to %s", d.Redirect)
	}
	if d.Claims != claims {
		t.Error("decision does not carry the claims through")
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name         string
		claims       *token.Claims
		allowed      []identity.Role
		wantRedirect string
	}{
		{
			name:         "unauthenticated goes to login",
			claims:       nil,
			allowed:      []identity.Role{identity.RoleAdmin},
			wantRedirect: LoginPath,
		},
		{
			name:         "viewer blocked from admin-only",
			claims:       claimsFor(identity.RoleViewer, true),
			allowed:      []identity.Role{identity.RoleAdmin},
			wantRedirect: UnauthorizedPath,
		},
		{
			name:    "viewer allowed when listed",
			claims:  claimsFor(identity.RoleViewer, true),
			allowed: []identity.Role{identity.RoleViewer, identity.RoleAdmin},
		},
		{
			name:    "admin allowed",
			claims:  claimsFor(identity.RoleAdmin, true),
			allowed: []identity.Role{identity.RoleAdmin},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := RequireRole(tt.claims, tt.allowed...)
			if tt.wantRedirect == "" {
				if !d.Proceed() {
					t.Errorf("got redirect %s, want proceed", d.Redirect)
				}
				return
			}
			if d.Proceed() || d.Redirect != tt.wantRedirect {
				t.Errorf("got %+v, want redirect %s", d, tt.wantRedirect)
			}
		})
	}
}

func TestRequireVerifiedEmail(t *testing.T) {
	if d := RequireVerifiedEmail(nil); d.Redirect != LoginPath {
		t.Errorf("nil claims: got %+v, want redirect to %s", d, LoginPath)
	}

	unverified := claimsFor(identity.RoleUser, false)
	if d := RequireVerifiedEmail(unverified); d.Redirect != VerifyEmailPath {
		t.Errorf("unverified: got %+v, want redirect to %s", d, VerifyEmailPath)
	}

	verified := claimsFor(identity.RoleUser, true)
	if d := RequireVerifiedEmail(verified); !d.Proceed() {
		t.Errorf("verified claims redirected to %s", d.Redirect)
	}
}

func TestOptionalAuthenticatedNeverRedirects(t *testing.T) {
	if d := OptionalAuthenticated(nil); !d.Proceed() {
		t.Errorf("nil claims redirected to %s", d.Redirect)
	}
	if d := OptionalAuthenticated(nil); d.Claims != nil {
		t.Error("nil claims produced non-nil claims")
	}

	claims := claimsFor(identity.RoleViewer, false)
	d := OptionalAuthenticated(claims)
	if !d.Proceed() || d.Claims != claims {
		t.Errorf("got %+v, want proceed with claims", d)
	}
}

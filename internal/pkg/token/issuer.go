// internal/pkg/token/issuer.go
package token

import (
	"fmt"
	"time"

	"gateway-auth-service/internal/domain/identity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// SessionTTL is the fixed absolute token lifetime. Refresh-on-update never
// extends it.
const SessionTTL = 30 * 24 * time.Hour

// Issuer signs session tokens with a shared HMAC secret.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	TTL      time.Duration
}

func NewIssuer(secret []byte, issuer, audience string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &Issuer{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		TTL:      ttl,
	}
}

// Issue projects an authenticated identity into a signed session token.
func (g *Issuer) Issue(info identity.UserInfo) (string, *Claims, error) {
	if len(g.secret) == 0 {
		return "", nil, fmt.Errorf("token issuer has empty secret")
	}

	now := time.Now()
	claims := &Claims{
		Role:          info.Role,
		Email:         info.Email,
		Name:          info.Name,
		EmailVerified: info.EmailVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   info.ID,
			Audience:  []string{g.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(g.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        ulid.Make().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, claims, nil
}

// RefreshVerified re-signs existing claims overwriting only the email
// verification timestamp. Issued and expiry times are preserved: the session
// lifetime is absolute, an update trigger is not a re-authentication.
func (g *Issuer) RefreshVerified(claims *Claims, verifiedAt *time.Time) (string, *Claims, error) {
	if len(g.secret) == 0 {
		return "", nil, fmt.Errorf("token issuer has empty secret")
	}

	updated := *claims
	updated.EmailVerified = verifiedAt
	updated.ID = ulid.Make().String()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &updated).SignedString(g.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to re-sign session token: %w", err)
	}
	return signed, &updated, nil
}

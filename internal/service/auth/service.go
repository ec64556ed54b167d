// internal/service/auth/service.go

// Package auth holds the credential decision flow, signup orchestration and
// session issuance.
package auth

import (
	"context"
	"time"

	"gateway-auth-service/internal/domain/identity"
	"gateway-auth-service/internal/oauth"
	"gateway-auth-service/internal/pkg/token"
	"gateway-auth-service/internal/pkg/validate"

	"go.uber.org/zap"
)

// IdentityRepo is the persistence surface the service needs for accounts.
type IdentityRepo interface {
	FindByEmail(ctx context.Context, email string) (*identity.Identity, error)
	FindByID(ctx context.Context, id string) (*identity.Identity, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, ident *identity.Identity) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	UpdateRole(ctx context.Context, id string, role identity.Role) error
	MarkEmailVerified(ctx context.Context, id string, verifiedAt time.Time) error
	List(ctx context.Context) ([]*identity.Identity, error)
}

// LinkedAccountRepo persists external provider links.
type LinkedAccountRepo interface {
	FindByProvider(ctx context.Context, provider, providerUserID string) (*identity.LinkedAccount, error)
	Create(ctx context.Context, acc *identity.LinkedAccount) error
	ListByIdentity(ctx context.Context, identityID string) ([]*identity.LinkedAccount, error)
}

// VerificationTokenRepo persists one-shot email verification tokens.
type VerificationTokenRepo interface {
	Create(ctx context.Context, vt *identity.VerificationToken) error
	FindUsable(ctx context.Context, token string) (*identity.VerificationToken, error)
	MarkUsed(ctx context.Context, id string) error
}

// LoginLimiter throttles credential attempts.
type LoginLimiter interface {
	AllowLogin(ctx context.Context, ip, email string) (bool, int64, error)
	ResetLogin(ctx context.Context, ip, email string) error
	AllowSignup(ctx context.Context, ip string) (bool, error)
}

// StateStore manages the OAuth CSRF nonce round-trip.
type StateStore interface {
	Issue(ctx context.Context, provider oauth.ProviderName) (string, error)
	Consume(ctx context.Context, provider oauth.ProviderName, state string) (bool, error)
}

type Service struct {
	identities IdentityRepo
	accounts   LinkedAccountRepo
	tokens     VerificationTokenRepo
	issuer     *token.Issuer
	validator  *validate.Validator
	limiter    LoginLimiter
	states     StateStore
	providers  map[oauth.ProviderName]oauth.Provider
	logger     *zap.Logger
}

func NewService(
	identities IdentityRepo,
	accounts LinkedAccountRepo,
	tokens VerificationTokenRepo,
	issuer *token.Issuer,
	validator *validate.Validator,
	limiter LoginLimiter,
	states StateStore,
	providers map[oauth.ProviderName]oauth.Provider,
	logger *zap.Logger,
) *Service {
	return &Service{
		identities: identities,
		accounts:   accounts,
		tokens:     tokens,
		issuer:     issuer,
		validator:  validator,
		limiter:    limiter,
		states:     states,
		providers:  providers,
		logger:     logger,
	}
}

// SessionTTL is the absolute session lifetime tokens are issued with.
func (s *Service) SessionTTL() time.Duration {
	return s.issuer.TTL
}

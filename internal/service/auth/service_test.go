package auth

import (
	"context"
	"time"

	"gateway-auth-service/internal/domain/identity"
	"gateway-auth-service/internal/oauth"
	xerrors "gateway-auth-service/internal/pkg/errors"
	"gateway-auth-service/internal/pkg/token"
	"gateway-auth-service/internal/pkg/validate"

	"go.uber.org/zap"
)

// --- mocks ---

type mockIdentityRepo struct {
	findByEmailFn       func(ctx context.Context, email string) (*identity.Identity, error)
	findByIDFn          func(ctx context.Context, id string) (*identity.Identity, error)
	existsByEmailFn     func(ctx context.Context, email string) (bool, error)
	createFn            func(ctx context.Context, ident *identity.Identity) error
	updatePasswordFn    func(ctx context.Context, id, hash string) error
	updateRoleFn        func(ctx context.Context, id string, role identity.Role) error
	markEmailVerifiedFn func(ctx context.Context, id string, verifiedAt time.Time) error
	listFn              func(ctx context.Context) ([]*identity.Identity, error)
}

func (m *mockIdentityRepo) FindByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, xerrors.ErrNotFound
}

func (m *mockIdentityRepo) FindByID(ctx context.Context, id string) (*identity.Identity, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, xerrors.ErrNotFound
}

func (m *mockIdentityRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockIdentityRepo) Create(ctx context.Context, ident *identity.Identity) error {
	if m.createFn != nil {
		return m.createFn(ctx, ident)
	}
	return nil
}

func (m *mockIdentityRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, id, hash)
	}
	return nil
}

func (m *mockIdentityRepo) UpdateRole(ctx context.Context, id string, role identity.Role) error {
	if m.updateRoleFn != nil {
		return m.updateRoleFn(ctx, id, role)
	}
	return nil
}

func (m *mockIdentityRepo) MarkEmailVerified(ctx context.Context, id string, verifiedAt time.Time) error {
	if m.markEmailVerifiedFn != nil {
		return m.markEmailVerifiedFn(ctx, id, verifiedAt)
	}
	return nil
}

func (m *mockIdentityRepo) List(ctx context.Context) ([]*identity.Identity, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockAccountRepo struct {
	findByProviderFn func(ctx context.Context, provider, providerUserID string) (*identity.LinkedAccount, error)
	createFn         func(ctx context.Context, acc *identity.LinkedAccount) error
	listByIdentityFn func(ctx context.Context, identityID string) ([]*identity.LinkedAccount, error)
}

func (m *mockAccountRepo) FindByProvider(ctx context.Context, provider, providerUserID string) (*identity.LinkedAccount, error) {
	if m.findByProviderFn != nil {
		return m.findByProviderFn(ctx, provider, providerUserID)
	}
	return nil, xerrors.ErrNotFound
}

func (m *mockAccountRepo) Create(ctx context.Context, acc *identity.LinkedAccount) error {
	if m.createFn != nil {
		return m.createFn(ctx, acc)
	}
	return nil
}

func (m *mockAccountRepo) ListByIdentity(ctx context.Context, identityID string) ([]*identity.LinkedAccount, error) {
	if m.listByIdentityFn != nil {
		return m.listByIdentityFn(ctx, identityID)
	}
	return nil, nil
}

type mockTokenRepo struct {
	createFn     func(ctx context.Context, vt *identity.VerificationToken) error
	findUsableFn func(ctx context.Context, token string) (*identity.VerificationToken, error)
	markUsedFn   func(ctx context.Context, id string) error
}

func (m *mockTokenRepo) Create(ctx context.Context, vt *identity.VerificationToken) error {
	if m.createFn != nil {
		return m.createFn(ctx, vt)
	}
	return nil
}

func (m *mockTokenRepo) FindUsable(ctx context.Context, tok string) (*identity.VerificationToken, error) {
	if m.findUsableFn != nil {
		return m.findUsableFn(ctx, tok)
	}
	return nil, xerrors.ErrNotFound
}

func (m *mockTokenRepo) MarkUsed(ctx context.Context, id string) error {
	if m.markUsedFn != nil {
		return m.markUsedFn(ctx, id)
	}
	return nil
}

type mockLimiter struct {
	allowLoginFn  func(ctx context.Context, ip, email string) (bool, int64, error)
	allowSignupFn func(ctx context.Context, ip string) (bool, error)
}

func (m *mockLimiter) AllowLogin(ctx context.Context, ip, email string) (bool, int64, error) {
	if m.allowLoginFn != nil {
		return m.allowLoginFn(ctx, ip, email)
	}
	return true, 5, nil
}

func (m *mockLimiter) ResetLogin(ctx context.Context, ip, email string) error {
	return nil
}

func (m *mockLimiter) AllowSignup(ctx context.Context, ip string) (bool, error) {
	if m.allowSignupFn != nil {
		return m.allowSignupFn(ctx, ip)
	}
	return true, nil
}

type mockStateStore struct {
	issueFn   func(ctx context.Context, provider oauth.ProviderName) (string, error)
	consumeFn func(ctx context.Context, provider oauth.ProviderName, state string) (bool, error)
}

func (m *mockStateStore) Issue(ctx context.Context, provider oauth.ProviderName) (string, error) {
	if m.issueFn != nil {
		return m.issueFn(ctx, provider)
	}
	return "state-1", nil
}

func (m *mockStateStore) Consume(ctx context.Context, provider oauth.ProviderName, state string) (bool, error) {
	if m.consumeFn != nil {
		return m.consumeFn(ctx, provider, state)
	}
	return state == "state-1", nil
}

type mockProvider struct {
	loginURLFn func(state string) string
	exchangeFn func(ctx context.Context, code string) (*oauth.UserInfo, error)
}

func (m *mockProvider) Name() oauth.ProviderName {
	return oauth.ProviderGoogle
}

func (m *mockProvider) LoginURL(state string) string {
	if m.loginURLFn != nil {
		return m.loginURLFn(state)
	}
	return "https://example.com/consent?state=" + state
}

func (m *mockProvider) Exchange(ctx context.Context, code string) (*oauth.UserInfo, error) {
	if m.exchangeFn != nil {
		return m.exchangeFn(ctx, code)
	}
	return nil, xerrors.ErrInvalidCredentials
}

// --- fixture ---

type fixture struct {
	identities *mockIdentityRepo
	accounts   *mockAccountRepo
	tokens     *mockTokenRepo
	limiter    *mockLimiter
	states     *mockStateStore
	provider   *mockProvider
	issuer     *token.Issuer
	verifier   *token.Verifier
}

func newFixture() *fixture {
	secret := []byte("unit-test-secret-unit-test-secre")
	return &fixture{
		identities: &mockIdentityRepo{},
		accounts:   &mockAccountRepo{},
		tokens:     &mockTokenRepo{},
		limiter:    &mockLimiter{},
		states:     &mockStateStore{},
		provider:   &mockProvider{},
		issuer:     token.NewIssuer(secret, "ai-gateway", "ai-gateway-console", 0),
		verifier:   token.NewVerifier(secret, "ai-gateway", "ai-gateway-console"),
	}
}

func (f *fixture) service() *Service {
	return NewService(
		f.identities,
		f.accounts,
		f.tokens,
		f.issuer,
		validate.New(),
		f.limiter,
		f.states,
		map[oauth.ProviderName]oauth.Provider{oauth.ProviderGoogle: f.provider},
		zap.NewNop(),
	)
}

// internal/service/auth/oauth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gateway-auth-service/internal/domain/identity"
	"gateway-auth-service/internal/oauth"
	xerrors "gateway-auth-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// LoginURL starts an OAuth flow: issues the state nonce and builds the
// provider consent URL.
func (s *Service) LoginURL(ctx context.Context, name oauth.ProviderName) (string, error) {
	provider, ok := s.providers[name]
	if !ok {
		return "", fmt.Errorf("unknown provider %q: %w", name, xerrors.ErrNotFound)
	}

	state, err := s.states.Issue(ctx, name)
	if err != nil {
		return "", err
	}
	return provider.LoginURL(state), nil
}

// HandleCallback completes an OAuth flow: validates the state, exchanges the
// code, resolves or creates the identity and issues a session.
func (s *Service) HandleCallback(ctx context.Context, name oauth.ProviderName, state, code string) (*identity.LoginResponse, error) {
	provider, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q: %w", name, xerrors.ErrNotFound)
	}

	valid, err := s.states.Consume(ctx, name, state)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, fmt.Errorf("oauth state mismatch: %w", xerrors.ErrUnauthorized)
	}

	info, err := provider.Exchange(ctx, code)
	if err != nil {
		s.logger.Error("oauth exchange failed",
			zap.String("provider", string(name)),
			zap.Error(err),
		)
		return nil, xerrors.ErrInvalidCredentials
	}

	ident, err := s.resolveProviderIdentity(ctx, info)
	if err != nil {
		return nil, err
	}

	return s.issueSession(ident)
}

// resolveProviderIdentity finds the identity behind a provider assertion,
// linking or creating records as needed:
// known link -> existing identity; same email -> link to it; otherwise a new
// identity without a password hash.
func (s *Service) resolveProviderIdentity(ctx context.Context, info *oauth.UserInfo) (*identity.Identity, error) {
	acc, err := s.accounts.FindByProvider(ctx, string(info.Provider), info.ProviderUserID)
	if err == nil {
		return s.identities.FindByID(ctx, acc.IdentityID)
	}
	if !errors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}

	ident, err := s.identities.FindByEmail(ctx, info.Email)
	if errors.Is(err, xerrors.ErrNotFound) {
		ident, err = s.createProviderIdentity(ctx, info)
	}
	if err != nil {
		return nil, err
	}

	link := &identity.LinkedAccount{
		ID:             ulid.Make().String(),
		IdentityID:     ident.ID,
		Provider:       string(info.Provider),
		ProviderUserID: info.ProviderUserID,
	}
	if err := s.accounts.Create(ctx, link); err != nil && !errors.Is(err, xerrors.ErrConflict) {
		return nil, err
	}

	return ident, nil
}

// LinkedAccounts lists the external provider links of an identity. An
// account created through credentials only has none.
func (s *Service) LinkedAccounts(ctx context.Context, identityID string) ([]*identity.LinkedAccount, error) {
	return s.accounts.ListByIdentity(ctx, identityID)
}

func (s *Service) createProviderIdentity(ctx context.Context, info *oauth.UserInfo) (*identity.Identity, error) {
	ident := &identity.Identity{
		ID:    ulid.Make().String(),
		Email: info.Email,
		Name:  info.Name,
		Role:  identity.RoleUser,
	}
	if info.EmailVerified {
		now := time.Now()
		ident.EmailVerified = &now
	}
	if info.Picture != "" {
		pic := info.Picture
		ident.Image = &pic
	}

	if err := s.identities.Create(ctx, ident); err != nil {
		return nil, err
	}

	s.logger.Info("identity created from provider",
		zap.String("identity_id", ident.ID),
		zap.String("provider", string(info.Provider)),
	)
	return ident, nil
}

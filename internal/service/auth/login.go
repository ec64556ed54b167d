// internal/service/auth/login.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gateway-auth-service/internal/domain/identity"
	xerrors "gateway-auth-service/internal/pkg/errors"
	"gateway-auth-service/internal/pkg/password"
	"gateway-auth-service/internal/pkg/token"

	"go.uber.org/zap"
)

// Login runs the credential authorization decision:
// validated -> identity-found -> password-checked -> accepted.
// Every rejection past validation uses the same generic message so callers
// cannot distinguish unknown users from wrong passwords.
func (s *Service) Login(ctx context.Context, req *identity.LoginRequest, ip string) (*identity.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if s.limiter != nil && ip != "" {
		allowed, remaining, err := s.limiter.AllowLogin(ctx, ip, req.Email)
		if err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}
		if !allowed {
			s.logger.Warn("login rate limited",
				zap.String("ip", ip),
				zap.Int64("remaining", remaining),
			)
			return nil, xerrors.ErrRateLimited
		}
	}

	ident, err := s.identities.FindByEmail(ctx, req.Email)
	if errors.Is(err, xerrors.ErrNotFound) {
		// Unknown email rejects the same way as a wrong password.
		return nil, xerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up identity: %w", err)
	}

	// OAuth-only accounts have no hash to check against.
	if ident.PasswordHash == nil {
		return nil, xerrors.ErrInvalidCredentials
	}

	if !password.Verify(req.Password, *ident.PasswordHash) {
		return nil, xerrors.ErrInvalidCredentials
	}

	if s.limiter != nil && ip != "" {
		if err := s.limiter.ResetLogin(ctx, ip, req.Email); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	return s.issueSession(ident)
}

// issueSession projects an accepted identity into a signed session token.
// The claims carry id, role and verification status; the password hash stays
// behind.
func (s *Service) issueSession(ident *identity.Identity) (*identity.LoginResponse, error) {
	info := ident.Info()
	signed, claims, err := s.issuer.Issue(info)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("session issued",
		zap.String("identity_id", info.ID),
		zap.String("role", string(info.Role)),
		zap.Time("expires_at", claims.ExpiresAt.Time),
	)

	return &identity.LoginResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresAt: claims.ExpiresAt.Time,
		User:      info,
	}, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, identityID string, req *identity.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	ident, err := s.identities.FindByID(ctx, identityID)
	if err != nil {
		return err
	}
	if ident.PasswordHash == nil {
		return fmt.Errorf("account has no password: %w", xerrors.ErrInvalidCredentials)
	}
	if !password.Verify(req.CurrentPassword, *ident.PasswordHash) {
		return xerrors.ErrInvalidCredentials
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.identities.UpdatePasswordHash(ctx, identityID, hash)
}

// VerifyEmail consumes a verification token and stamps the identity. When
// the caller holds a live session for the same identity, a refreshed token
// carrying the new verification status is returned; the original expiry is
// kept.
func (s *Service) VerifyEmail(ctx context.Context, tok string, current *token.Claims) (string, error) {
	vt, err := s.tokens.FindUsable(ctx, tok)
	if err != nil {
		return "", xerrors.Wrap(xerrors.ErrTokenExpired, "verification token")
	}

	verifiedAt := time.Now()
	if err := s.identities.MarkEmailVerified(ctx, vt.IdentityID, verifiedAt); err != nil {
		return "", err
	}
	if err := s.tokens.MarkUsed(ctx, vt.ID); err != nil {
		s.logger.Error("failed to mark verification token used", zap.Error(err))
	}

	s.logger.Info("email verified", zap.String("identity_id", vt.IdentityID))

	if current == nil || current.UserID() != vt.IdentityID {
		return "", nil
	}

	refreshed, _, err := s.issuer.RefreshVerified(current, &verifiedAt)
	if err != nil {
		return "", fmt.Errorf("failed to refresh session: %w", err)
	}
	return refreshed, nil
}

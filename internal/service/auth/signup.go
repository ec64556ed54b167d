// internal/service/auth/signup.go
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"gateway-auth-service/internal/domain/identity"
	xerrors "gateway-auth-service/internal/pkg/errors"
	"gateway-auth-service/internal/pkg/password"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// verificationTTL bounds how long an emailed verification link stays usable.
const verificationTTL = 24 * time.Hour

// SignUp validates the payload, checks uniqueness, hashes the password and
// persists a new identity with the default role and an unverified email.
func (s *Service) SignUp(ctx context.Context, req *identity.SignUpRequest, ip string) (*identity.Identity, error) {
	// Whitespace-only names are not names.
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if s.limiter != nil && ip != "" {
		allowed, err := s.limiter.AllowSignup(ctx, ip)
		if err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}
		if !allowed {
			return nil, xerrors.ErrRateLimited
		}
	}

	// No hash is computed for a taken email.
	exists, err := s.identities.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, xerrors.ErrConflict
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	ident := &identity.Identity{
		ID:           ulid.Make().String(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hash,
		Role:         identity.RoleUser,
	}

	// The unique email index closes the pre-check race: a losing concurrent
	// insert comes back as the same conflict.
	if err := s.identities.Create(ctx, ident); err != nil {
		if errors.Is(err, xerrors.ErrConflict) {
			return nil, xerrors.ErrConflict
		}
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	if _, err := s.IssueVerification(ctx, ident.ID); err != nil {
		// Signup stands even if the verification token could not be stored.
		s.logger.Error("failed to issue verification token",
			zap.String("identity_id", ident.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("identity created",
		zap.String("identity_id", ident.ID),
		zap.String("role", string(ident.Role)),
	)

	return ident, nil
}

// IssueVerification stores a fresh email verification token. Delivery is an
// external collaborator; the token is only logged at debug level here.
func (s *Service) IssueVerification(ctx context.Context, identityID string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	tok := base64.URLEncoding.EncodeToString(raw)

	vt := &identity.VerificationToken{
		ID:         ulid.Make().String(),
		IdentityID: identityID,
		Token:      tok,
		ExpiresAt:  time.Now().Add(verificationTTL),
	}
	if err := s.tokens.Create(ctx, vt); err != nil {
		return "", err
	}

	s.logger.Debug("verification token issued",
		zap.String("identity_id", identityID),
		zap.String("token", tok),
	)
	return tok, nil
}

// ResendVerification issues a new token for a signed-in, unverified identity.
func (s *Service) ResendVerification(ctx context.Context, identityID string) error {
	ident, err := s.identities.FindByID(ctx, identityID)
	if err != nil {
		return err
	}
	if ident.EmailVerified != nil {
		return fmt.Errorf("email already verified: %w", xerrors.ErrConflict)
	}
	_, err = s.IssueVerification(ctx, identityID)
	return err
}

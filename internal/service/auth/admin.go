// internal/service/auth/admin.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gateway-auth-service/internal/domain/identity"
	xerrors "gateway-auth-service/internal/pkg/errors"
	"gateway-auth-service/internal/pkg/password"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// ListUsers returns every identity for the admin console.
func (s *Service) ListUsers(ctx context.Context) ([]identity.UserInfo, error) {
	idents, err := s.identities.List(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]identity.UserInfo, 0, len(idents))
	for _, ident := range idents {
		infos = append(infos, ident.Info())
	}
	return infos, nil
}

// ChangeRole assigns one of the closed role set to an identity. Sessions are
// stateless, so live tokens keep their old role until natural expiry.
func (s *Service) ChangeRole(ctx context.Context, identityID string, req *identity.ChangeRoleRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}
	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return xerrors.Wrap(xerrors.ErrValidation, err.Error())
	}

	if err := s.identities.UpdateRole(ctx, identityID, role); err != nil {
		return err
	}

	s.logger.Info("role changed",
		zap.String("identity_id", identityID),
		zap.String("role", string(role)),
	)
	return nil
}

// EnsureAdminExists creates the bootstrap administrator when no account
// holds that email yet. Called once at startup.
func (s *Service) EnsureAdminExists(ctx context.Context, email, plaintext, name string) error {
	exists, err := s.identities.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check admin email: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now()
	ident := &identity.Identity{
		ID:            ulid.Make().String(),
		Email:         email,
		Name:          name,
		PasswordHash:  &hash,
		Role:          identity.RoleAdmin,
		EmailVerified: &now,
	}

	if err := s.identities.Create(ctx, ident); err != nil {
		// Another instance may have bootstrapped first.
		if errors.Is(err, xerrors.ErrConflict) {
			return nil
		}
		return err
	}

	s.logger.Info("bootstrap admin created", zap.String("identity_id", ident.ID))
	return nil
}

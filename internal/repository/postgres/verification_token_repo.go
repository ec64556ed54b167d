// internal/repository/postgres/verification_token_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gateway-auth-service/internal/domain/identity"
	xerrors "gateway-auth-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VerificationTokenRepository struct {
	db *pgxpool.Pool
}

func NewVerificationTokenRepository(db *pgxpool.Pool) *VerificationTokenRepository {
	return &VerificationTokenRepository{db: db}
}

// Create stores a new verification token.
func (r *VerificationTokenRepository) Create(ctx context.Context, vt *identity.VerificationToken) error {
	query := `
		INSERT INTO verification_tokens (id, identity_id, token, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, vt.ID, vt.IdentityID, vt.Token, vt.ExpiresAt).Scan(&vt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create verification token: %w", err)
	}
	return nil
}

// FindUsable retrieves an unused, unexpired token by its value.
func (r *VerificationTokenRepository) FindUsable(ctx context.Context, token string) (*identity.VerificationToken, error) {
	query := `
		SELECT id, identity_id, token, expires_at, used_at, created_at
		FROM verification_tokens
		WHERE token = $1 AND used_at IS NULL AND expires_at > now()
	`
	var vt identity.VerificationToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&vt.ID, &vt.IdentityID, &vt.Token, &vt.ExpiresAt, &vt.UsedAt, &vt.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find verification token: %w", err)
	}
	return &vt, nil
}

// MarkUsed stamps a token so it cannot be replayed.
func (r *VerificationTokenRepository) MarkUsed(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE verification_tokens SET used_at = now() WHERE id = $1 AND used_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to mark token used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

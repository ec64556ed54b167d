// internal/repository/postgres/linked_account_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gateway-auth-service/internal/domain/identity"
	xerrors "gateway-auth-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LinkedAccountRepository struct {
	db *pgxpool.Pool
}

func NewLinkedAccountRepository(db *pgxpool.Pool) *LinkedAccountRepository {
	return &LinkedAccountRepository{db: db}
}

// FindByProvider retrieves a linked account by provider and provider user id.
func (r *LinkedAccountRepository) FindByProvider(ctx context.Context, provider, providerUserID string) (*identity.LinkedAccount, error) {
	query := `
		SELECT id, identity_id, provider, provider_user_id, created_at
		FROM linked_accounts
		WHERE provider = $1 AND provider_user_id = $2
	`
	var acc identity.LinkedAccount
	err := r.db.QueryRow(ctx, query, provider, providerUserID).Scan(
		&acc.ID, &acc.IdentityID, &acc.Provider, &acc.ProviderUserID, &acc.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find linked account: %w", err)
	}
	return &acc, nil
}

// Create links an external provider login to an identity. Provider is unique
// per identity.
func (r *LinkedAccountRepository) Create(ctx context.Context, acc *identity.LinkedAccount) error {
	query := `
		INSERT INTO linked_accounts (id, identity_id, provider, provider_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		acc.ID, acc.IdentityID, acc.Provider, acc.ProviderUserID,
	).Scan(&acc.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return xerrors.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create linked account: %w", err)
	}
	return nil
}

// ListByIdentity returns all provider links for an identity.
func (r *LinkedAccountRepository) ListByIdentity(ctx context.Context, identityID string) ([]*identity.LinkedAccount, error) {
	query := `
		SELECT id, identity_id, provider, provider_user_id, created_at
		FROM linked_accounts
		WHERE identity_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, identityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list linked accounts: %w", err)
	}
	defer rows.Close()

	var accs []*identity.LinkedAccount
	for rows.Next() {
		var acc identity.LinkedAccount
		if err := rows.Scan(&acc.ID, &acc.IdentityID, &acc.Provider, &acc.ProviderUserID, &acc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan linked account: %w", err)
		}
		accs = append(accs, &acc)
	}
	return accs, rows.Err()
}

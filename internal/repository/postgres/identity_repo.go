// internal/repository/postgres/identity_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gateway-auth-service/internal/domain/identity"
	xerrors "gateway-auth-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

type IdentityRepository struct {
	db *pgxpool.Pool
}

func NewIdentityRepository(db *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{db: db}
}

const identityColumns = `id, email, name, password_hash, role, email_verified, image, created_at, updated_at`

func scanIdentity(row pgx.Row) (*identity.Identity, error) {
	var ident identity.Identity
	err := row.Scan(
		&ident.ID, &ident.Email, &ident.Name, &ident.PasswordHash,
		&ident.Role, &ident.EmailVerified, &ident.Image,
		&ident.CreatedAt, &ident.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan identity: %w", err)
	}
	return &ident, nil
}

// FindByEmail retrieves an identity by exact-match email.
func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities WHERE email = $1`
	return scanIdentity(r.db.QueryRow(ctx, query, email))
}

// FindByID retrieves an identity by id.
func (r *IdentityRepository) FindByID(ctx context.Context, id string) (*identity.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities WHERE id = $1`
	return scanIdentity(r.db.QueryRow(ctx, query, id))
}

// ExistsByEmail reports whether an identity with this email exists.
func (r *IdentityRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM identities WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// Create inserts a new identity. A concurrent signup losing the race against
// the unique email index surfaces as ErrConflict, same as the pre-check.
func (r *IdentityRepository) Create(ctx context.Context, ident *identity.Identity) error {
	query := `
		INSERT INTO identities (id, email, name, password_hash, role, email_verified, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		ident.ID, ident.Email, ident.Name, ident.PasswordHash,
		ident.Role, ident.EmailVerified, ident.Image,
	).Scan(&ident.CreatedAt, &ident.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return xerrors.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}
	return nil
}

// UpdatePasswordHash replaces the stored credential hash.
func (r *IdentityRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE identities SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// UpdateRole assigns a new role.
func (r *IdentityRepository) UpdateRole(ctx context.Context, id string, role identity.Role) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE identities SET role = $2, updated_at = now() WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// MarkEmailVerified stamps the verification time.
func (r *IdentityRepository) MarkEmailVerified(ctx context.Context, id string, verifiedAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE identities SET email_verified = $2, updated_at = now() WHERE id = $1`, id, verifiedAt)
	if err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// List returns every identity, newest first.
func (r *IdentityRepository) List(ctx context.Context) ([]*identity.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}
	defer rows.Close()

	var idents []*identity.Identity
	for rows.Next() {
		ident, err := scanIdentity(rows)
		if err != nil {
			return nil, err
		}
		idents = append(idents, ident)
	}
	return idents, rows.Err()
}

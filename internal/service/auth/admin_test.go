package auth

import (
	"context"
	"errors"
	"testing"

	"gateway-auth-service/internal/domain/identity"
	xerrors "gateway-auth-service/internal/pkg/errors"
)

func TestChangeRole(t *testing.T) {
	f := newFixture()
	var gotRole identity.Role
	f.identities.updateRoleFn = func(_ context.Context, _ string, role identity.Role) error {
		gotRole = role
		return nil
	}
	svc := f.service()
	ctx := context.Background()

	if err := svc.ChangeRole(ctx, "u1", &identity.ChangeRoleRequest{Role: "viewer"}); err != nil {
		t.Fatalf("ChangeRole() error: %v", err)
	}
	if gotRole != identity.RoleViewer {
		t.Errorf("role = %q, want viewer", gotRole)
	}
}

func TestChangeRoleRejectsUnknownRole(t *testing.T) {
	f := newFixture()
	updated := 0
	f.identities.updateRoleFn = func(_ context.Context, _ string, _ identity.Role) error {
		updated++
		return nil
	}

	err := f.service().ChangeRole(context.Background(), "u1", &identity.ChangeRoleRequest{Role: "owner"})
	if !errors.Is(err, xerrors.ErrValidation) {
		t.Fatalf("ChangeRole() with unknown role = %v, want ErrValidation", err)
	}
	if updated != 0 {
		t.Error("role persisted despite failed validation")
	}
}

func TestEnsureAdminExistsSkipsExisting(t *testing.T) {
	f := newFixture()
	f.identities.existsByEmailFn = func(_ context.Context, _ string) (bool, error) {
		return true, nil
	}
	created := 0
	f.identities.createFn = func(_ context.Context, _ *identity.Identity) error {
		created++
		return nil
	}

	if err := f.service().EnsureAdminExists(context.Background(), "admin@example.com", "Sup3rSecret", "Admin"); err != nil {
		t.Fatalf("EnsureAdminExists() error: %v", err)
	}
	if created != 0 {
		t.Error("created a second admin for an existing email")
	}
}

func TestEnsureAdminExistsCreatesAdmin(t *testing.T) {
	f := newFixture()
	var created *identity.Identity
	f.identities.createFn = func(_ context.Context, ident *identity.Identity) error {
		created = ident
		return nil
	}

	if err := f.service().EnsureAdminExists(context.Background(), "admin@example.com", "Sup3rSecret", "Admin"); err != nil {
		t.Fatalf("EnsureAdminExists() error: %v", err)
	}
	if created == nil {
		t.Fatal("no admin created on empty database")
	}
	if created.Role != identity.RoleAdmin {
		t.Errorf("bootstrap role = %q, want admin", created.Role)
	}
	if created.PasswordHash == nil || *created.PasswordHash == "Sup3rSecret" {
		t.Error("bootstrap password stored unhashed")
	}
	if created.EmailVerified == nil {
		t.Error("bootstrap admin left unverified")
	}
}

func TestEnsureAdminExistsToleratesRace(t *testing.T) {
	f := newFixture()
	f.identities.createFn = func(_ context.Context, _ *identity.Identity) error {
		return xerrors.ErrConflict
	}

	if err := f.service().EnsureAdminExists(context.Background(), "admin@example.com", "Sup3rSecret", "Admin"); err != nil {
		t.Fatalf("EnsureAdminExists() lost bootstrap race but returned %v", err)
	}
}

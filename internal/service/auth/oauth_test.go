package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gateway-auth-service/internal/domain/identity"
	"gateway-auth-service/internal/oauth"
	xerrors "gateway-auth-service/internal/pkg/errors"
)

func googleUser() *oauth.UserInfo {
	return &oauth.UserInfo{
		ProviderUserID: "google-sub-1",
		Email:          "ada@example.com",
		Name:           "Ada Lovelace",
		EmailVerified:  true,
		Provider:       oauth.ProviderGoogle,
	}
}

func TestLoginURLCarriesState(t *testing.T) {
	f := newFixture()
	url, err := f.service().LoginURL(context.Background(), oauth.ProviderGoogle)
	if err != nil {
		t.Fatalf("LoginURL() error: %v", err)
	}
	if !strings.Contains(url, "state=state-1") {
		t.Errorf("consent URL %q missing issued state", url)
	}
}

func TestLoginURLUnknownProvider(t *testing.T) {
	f := newFixture()
	_, err := f.service().LoginURL(context.Background(), oauth.ProviderName("github"))
	if !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("LoginURL() error = %v, want ErrNotFound", err)
	}
}

func TestCallbackRejectsStateMismatch(t *testing.T) {
	f := newFixture()
	exchanged := false
	f.provider.exchangeFn = func(_ context.Context, _ string) (*oauth.UserInfo, error) {
		exchanged = true
		return googleUser(), nil
	}

	_, err := f.service().HandleCallback(context.Background(), oauth.ProviderGoogle, "forged-state", "code")
	if !errors.Is(err, xerrors.ErrUnauthorized) {
		t.Fatalf("HandleCallback() error = %v, want ErrUnauthorized", err)
	}
	if exchanged {
		t.Error("code exchanged despite state mismatch")
	}
}

func TestCallbackCreatesNewIdentity(t *testing.T) {
	f := newFixture()
	f.provider.exchangeFn = func(_ context.Context, _ string) (*oauth.UserInfo, error) {
		return googleUser(), nil
	}
	var createdIdent *identity.Identity
	f.identities.createFn = func(_ context.Context, ident *identity.Identity) error {
		createdIdent = ident
		return nil
	}
	var createdLink *identity.LinkedAccount
	f.accounts.createFn = func(_ context.Context, acc *identity.LinkedAccount) error {
		createdLink = acc
		return nil
	}

	resp, err := f.service().HandleCallback(context.Background(), oauth.ProviderGoogle, "state-1", "code")
	if err != nil {
		t.Fatalf("HandleCallback() error: %v", err)
	}

	if createdIdent == nil {
		t.Fatal("no identity created for first provider login")
	}
	if createdIdent.PasswordHash != nil {
		t.Error("provider identity has a password hash")
	}
	if createdIdent.Role != identity.RoleUser {
		t.Errorf("provider identity role = %q, want user", createdIdent.Role)
	}
	if createdIdent.EmailVerified == nil {
		t.Error("provider asserted a verified email, identity is unverified")
	}
	if createdLink == nil || createdLink.Provider != "google" || createdLink.ProviderUserID != "google-sub-1" {
		t.Errorf("linked account = %+v, want google link", createdLink)
	}
	if resp.User.ID != createdIdent.ID {
		t.Errorf("session user = %q, want %q", resp.User.ID, createdIdent.ID)
	}
}

func TestCallbackLinksExistingEmail(t *testing.T) {
	f := newFixture()
	existing := &identity.Identity{
		ID:    "existing-1",
		Email: "ada@example.com",
		Name:  "Ada Lovelace",
		Role:  identity.RoleViewer,
	}
	f.provider.exchangeFn = func(_ context.Context, _ string) (*oauth.UserInfo, error) {
		return googleUser(), nil
	}
	f.identities.findByEmailFn = func(_ context.Context, email string) (*identity.Identity, error) {
		if email == existing.Email {
			return existing, nil
		}
		return nil, xerrors.ErrNotFound
	}
	created := 0
	f.identities.createFn = func(_ context.Context, _ *identity.Identity) error {
		created++
		return nil
	}

	resp, err := f.service().HandleCallback(context.Background(), oauth.ProviderGoogle, "state-1", "code")
	if err != nil {
		t.Fatalf("HandleCallback() error: %v", err)
	}
	if created != 0 {
		t.Error("new identity created for an email that already exists")
	}
	if resp.User.ID != "existing-1" {
		t.Errorf("session user = %q, want existing-1", resp.User.ID)
	}
	if resp.User.Role != identity.RoleViewer {
		t.Errorf("session role = %q, want the stored role", resp.User.Role)
	}
}

func TestCallbackReturningUser(t *testing.T) {
	f := newFixture()
	existing := &identity.Identity{
		ID:    "existing-1",
		Email: "ada@example.com",
		Name:  "Ada Lovelace",
		Role:  identity.RoleUser,
	}
	f.provider.exchangeFn = func(_ context.Context, _ string) (*oauth.UserInfo, error) {
		return googleUser(), nil
	}
	f.accounts.findByProviderFn = func(_ context.Context, provider, providerUserID string) (*identity.LinkedAccount, error) {
		return &identity.LinkedAccount{IdentityID: "existing-1", Provider: provider, ProviderUserID: providerUserID}, nil
	}
	f.identities.findByIDFn = func(_ context.Context, id string) (*identity.Identity, error) {
		if id == "existing-1" {
			return existing, nil
		}
		return nil, xerrors.ErrNotFound
	}
	linked := 0
	f.accounts.createFn = func(_ context.Context, _ *identity.LinkedAccount) error {
		linked++
		return nil
	}

	resp, err := f.service().HandleCallback(context.Background(), oauth.ProviderGoogle, "state-1", "code")
	if err != nil {
		t.Fatalf("HandleCallback() error: %v", err)
	}
	if linked != 0 {
		t.Error("re-linked an already linked account")
	}
	if resp.User.ID != "existing-1" {
		t.Errorf("session user = %q, want existing-1", resp.User.ID)
	}
}

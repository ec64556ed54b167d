// internal/oauth/provider.go

// Package oauth implements the external-provider login flow. Providers are
// a closed set so call sites can switch exhaustively.
package oauth

import "context"

// ProviderName identifies a supported authentication provider.
type ProviderName string

const (
	ProviderCredentials ProviderName = "credentials"
	ProviderGoogle      ProviderName = "google"
)

// UserInfo is what a provider asserts about the signed-in user.
type UserInfo struct {
	ProviderUserID string
	Email          string
	Name           string
	Picture        string
	EmailVerified  bool
	Provider       ProviderName
}

// Provider is an external OAuth identity provider.
type Provider interface {
	// Name returns the provider identifier stored on linked accounts.
	Name() ProviderName
	// LoginURL builds the consent URL carrying the CSRF state nonce.
	LoginURL(state string) string
	// Exchange trades the authorization code for the provider's user info.
	Exchange(ctx context.Context, code string) (*UserInfo, error)
}

package provider

import (
	"context"

	"github.com/CIMAN01/Web-Authentication-Security/internal/auth"
)

// OAuthProvider is the contract every external sign-in provider
// implements. Implementations return identity facts only and must not
// touch user records or sessions.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the authorization URL for the redirect leg.
	// State and PKCE parameters are supplied by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode trades the callback's authorization code for a
	// verified, normalized identity.
	ExchangeCode(
		ctx context.Context,
		code string,
		codeVerifier string,
	) (*auth.Identity, error)
}

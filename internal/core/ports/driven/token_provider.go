package driven

import (
	"context"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle token refresh transparently.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// If the current token is expired, it will be refreshed when possible.
	GetToken(ctx context.Context) (string, error)

	// AuthMethod returns the authentication method (pat, oauth).
	AuthMethod() domain.AuthMethod

	// IsAuthenticated returns true if valid authentication is available.
	IsAuthenticated() bool
}

// OAuthExchanger performs the network half of an OAuth flow.
type OAuthExchanger interface {
	// AuthURL builds the authorisation URL the user opens in a browser.
	AuthURL(provider domain.Provider, state, codeChallenge, redirectURI string) (string, error)

	// Exchange trades an authorisation code for tokens.
	Exchange(ctx context.Context, provider domain.Provider, code, codeVerifier, redirectURI string) (*domain.OAuthToken, error)

	// Refresh obtains a new access token using a refresh token.
	Refresh(ctx context.Context, provider domain.Provider, refreshToken string) (*domain.OAuthToken, error)
}

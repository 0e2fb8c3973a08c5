package driving

import (
	"context"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
)

// OAuthFlow holds the per-login values of an authorisation code flow.
type OAuthFlow struct {
	Provider     domain.Provider
	State        string
	CodeVerifier string
	RedirectURI  string
	AuthURL      string
}

// OAuthService runs OAuth logins and manages the resulting tokens.
type OAuthService interface {
	// Begin starts a login: it creates state and a PKCE verifier and builds
	// the authorisation URL.
	Begin(provider domain.Provider, redirectURI string) (*OAuthFlow, error)

	// Complete checks state, exchanges the code and stores the tokens.
	Complete(ctx context.Context, flow *OAuthFlow, code, state string) (*domain.OAuthToken, error)

	// StoreTokens persists tokens for a provider.
	StoreTokens(ctx context.Context, provider domain.Provider, token *domain.OAuthToken) error

	// Tokens returns stored tokens. Expired tokens without a refresh token
	// are cleared and read as nil.
	Tokens(ctx context.Context, provider domain.Provider) (*domain.OAuthToken, error)

	// IsAuthenticated reports whether usable tokens are stored.
	IsAuthenticated(ctx context.Context, provider domain.Provider) bool

	// AccessToken returns a usable access token, refreshing an expired one
	// when a refresh token exists. Otherwise the tokens are cleared and
	// domain.ErrAuthExpired is returned.
	AccessToken(ctx context.Context, provider domain.Provider) (string, error)

	// Logout clears stored tokens.
	Logout(ctx context.Context, provider domain.Provider) error

	// TokenProvider adapts AccessToken for use by a session.
	TokenProvider(provider domain.Provider) driven.TokenProvider
}

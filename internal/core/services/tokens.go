package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
)

// Ensure the token providers implement the interface.
var (
	_ driven.TokenProvider = (*patTokenProvider)(nil)
	_ driven.TokenProvider = (*oauthTokenProvider)(nil)
)

// patTokenProvider serves a token entered by the user.
// PATs don't expire and don't require refresh.
type patTokenProvider struct {
	token string
}

// GetToken returns the PAT.
func (p *patTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", fmt.Errorf("no token: %w", domain.ErrInvalidCredentials)
	}
	return p.token, nil
}

// AuthMethod returns AuthMethodPAT.
func (p *patTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodPAT
}

// IsAuthenticated returns true if a token is set.
func (p *patTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}

// oauthTokenProvider serves OAuth access tokens from the OAuthService,
// refreshing expired tokens on demand.
type oauthTokenProvider struct {
	oauth    *OAuthService
	provider domain.Provider
}

// GetToken returns a valid access token.
func (p *oauthTokenProvider) GetToken(ctx context.Context) (string, error) {
	return p.oauth.AccessToken(ctx, p.provider)
}

// AuthMethod returns AuthMethodOAuth.
func (p *oauthTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodOAuth
}

// IsAuthenticated returns true if usable tokens are stored.
func (p *oauthTokenProvider) IsAuthenticated() bool {
	return p.oauth.IsAuthenticated(context.Background(), p.provider)
}

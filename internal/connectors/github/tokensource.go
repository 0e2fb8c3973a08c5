package github

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
)

// oauthTokenLifetime is how long an OAuth token is reused before the
// provider is asked again. The provider refreshes expired tokens itself.
const oauthTokenLifetime = time.Minute

// providerTokenSource adapts a TokenProvider to oauth2.TokenSource.
type providerTokenSource struct {
	ctx      context.Context
	provider driven.TokenProvider
	lifetime time.Duration
}

// Token asks the provider for the current access token. Personal access
// tokens never expire; OAuth tokens are re-read after the source's lifetime.
func (s *providerTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.provider.GetToken(s.ctx)
	if err != nil {
		return nil, err
	}
	tok := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
	if s.provider.AuthMethod() == domain.AuthMethodOAuth {
		tok.Expiry = time.Now().Add(s.lifetime)
	}
	return tok, nil
}

// newTokenSource wraps provider in a caching token source. ctx must outlive
// the HTTP client built on it.
func newTokenSource(ctx context.Context, provider driven.TokenProvider) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &providerTokenSource{
		ctx:      ctx,
		provider: provider,
		lifetime: oauthTokenLifetime,
	})
}

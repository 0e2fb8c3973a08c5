package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/devsync-cli/internal/logger"
)

// Ensure OAuthService implements the interface.
var _ driving.OAuthService = (*OAuthService)(nil)

// OAuthService runs OAuth logins and manages the resulting tokens.
type OAuthService struct {
	store     driven.KeyValueStore
	exchanger driven.OAuthExchanger
}

// NewOAuthService creates a new OAuth service.
func NewOAuthService(store driven.KeyValueStore, exchanger driven.OAuthExchanger) *OAuthService {
	return &OAuthService{
		store:     store,
		exchanger: exchanger,
	}
}

// TokensKey returns the store key holding a provider's OAuth tokens.
func TokensKey(provider domain.Provider) string {
	return "oauth_" + string(provider) + "_tokens"
}

// Begin starts a login: it creates state and a PKCE verifier and builds
// the authorisation URL.
func (s *OAuthService) Begin(provider domain.Provider, redirectURI string) (*driving.OAuthFlow, error) {
	if s.exchanger == nil {
		return nil, fmt.Errorf("oauth is not configured: %w", domain.ErrUnsupportedProvider)
	}

	verifier := oauth2.GenerateVerifier()
	state := uuid.NewString()
	authURL, err := s.exchanger.AuthURL(provider, state, oauth2.S256ChallengeFromVerifier(verifier), redirectURI)
	if err != nil {
		return nil, err
	}

	return &driving.OAuthFlow{
		Provider:     provider,
		State:        state,
		CodeVerifier: verifier,
		RedirectURI:  redirectURI,
		AuthURL:      authURL,
	}, nil
}

// Complete checks state, exchanges the code and stores the tokens.
func (s *OAuthService) Complete(
	ctx context.Context, flow *driving.OAuthFlow, code, state string,
) (*domain.OAuthToken, error) {
	if flow == nil || state != flow.State {
		return nil, fmt.Errorf("%w: oauth state mismatch", domain.ErrInvalidInput)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: no authorization code received", domain.ErrInvalidInput)
	}

	token, err := s.exchanger.Exchange(ctx, flow.Provider, code, flow.CodeVerifier, flow.RedirectURI)
	if err != nil {
		return nil, fmt.Errorf("exchange %s code: %w", flow.Provider, err)
	}
	if err := s.StoreTokens(ctx, flow.Provider, token); err != nil {
		return nil, err
	}
	return token, nil
}

// StoreTokens persists tokens for a provider.
func (s *OAuthService) StoreTokens(ctx context.Context, provider domain.Provider, token *domain.OAuthToken) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%w: token has no access token", domain.ErrInvalidInput)
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}
	if err := s.store.Set(ctx, TokensKey(provider), string(data)); err != nil {
		return fmt.Errorf("write %s tokens: %w", provider, err)
	}
	return nil
}

// Tokens returns stored tokens. Expired tokens without a refresh token are
// cleared and read as nil.
func (s *OAuthService) Tokens(ctx context.Context, provider domain.Provider) (*domain.OAuthToken, error) {
	raw, ok, err := s.store.Get(ctx, TokensKey(provider))
	if err != nil {
		return nil, fmt.Errorf("read %s tokens: %w", provider, err)
	}
	if !ok {
		return nil, nil
	}

	var token domain.OAuthToken
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		logger.Warn("stored %s tokens are unreadable, clearing: %v", provider, err)
		return nil, s.Logout(ctx, provider)
	}

	if token.IsExpired() && !token.CanRefresh() {
		logger.Debug("%s tokens expired, clearing", provider)
		return nil, s.Logout(ctx, provider)
	}
	return &token, nil
}

// IsAuthenticated reports whether usable tokens are stored.
func (s *OAuthService) IsAuthenticated(ctx context.Context, provider domain.Provider) bool {
	token, err := s.Tokens(ctx, provider)
	return err == nil && token != nil && token.AccessToken != ""
}

// AccessToken returns a usable access token, refreshing an expired one.
func (s *OAuthService) AccessToken(ctx context.Context, provider domain.Provider) (string, error) {
	token, err := s.Tokens(ctx, provider)
	if err != nil {
		return "", err
	}
	if token == nil {
		return "", fmt.Errorf("no tokens found for %s: %w", provider, domain.ErrAuthExpired)
	}
	if !token.IsExpired() {
		return token.AccessToken, nil
	}

	if s.exchanger == nil {
		_ = s.Logout(ctx, provider)
		return "", fmt.Errorf("refresh %s token: %w", provider, domain.ErrTokenRefreshFailed)
	}

	refreshed, err := s.exchanger.Refresh(ctx, provider, token.RefreshToken)
	if err != nil {
		_ = s.Logout(ctx, provider)
		return "", fmt.Errorf("refresh %s token: %w: %w", provider, domain.ErrTokenRefreshFailed, err)
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = token.RefreshToken
	}
	if err := s.StoreTokens(ctx, provider, refreshed); err != nil {
		return "", err
	}
	logger.Debug("refreshed %s access token", provider)
	return refreshed.AccessToken, nil
}

// Logout clears stored tokens.
func (s *OAuthService) Logout(ctx context.Context, provider domain.Provider) error {
	if err := s.store.Delete(ctx, TokensKey(provider)); err != nil {
		return fmt.Errorf("clear %s tokens: %w", provider, err)
	}
	return nil
}

// TokenProvider adapts AccessToken for use by a session.
func (s *OAuthService) TokenProvider(provider domain.Provider) driven.TokenProvider {
	return &oauthTokenProvider{oauth: s, provider: provider}
}

package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
)

// Ensure Exchanger implements the interface.
var _ driven.OAuthExchanger = (*Exchanger)(nil)

// DefaultTimeout bounds token endpoint requests.
const DefaultTimeout = 30 * time.Second

// AtlassianEndpoint is the Atlassian 3LO endpoint.
var AtlassianEndpoint = oauth2.Endpoint{
	AuthURL:   "https://auth.atlassian.com/authorize",
	TokenURL:  "https://auth.atlassian.com/oauth/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// ProviderConfig describes one provider's OAuth app.
type ProviderConfig struct {
	App      domain.OAuthApp
	Endpoint oauth2.Endpoint
	Scopes   []string
	// AuthParams are extra authorisation URL parameters.
	AuthParams map[string]string
}

// GitHubConfig returns the GitHub OAuth app configuration.
func GitHubConfig(app domain.OAuthApp) ProviderConfig {
	return ProviderConfig{
		App:      app,
		Endpoint: github.Endpoint,
		Scopes:   []string{"repo", "user"},
	}
}

// AtlassianConfig returns the Atlassian OAuth app configuration.
func AtlassianConfig(app domain.OAuthApp) ProviderConfig {
	return ProviderConfig{
		App:      app,
		Endpoint: AtlassianEndpoint,
		Scopes:   []string{"read:jira-work", "write:jira-work", "read:jira-user"},
		AuthParams: map[string]string{
			"audience": "api.atlassian.com",
			"prompt":   "consent",
		},
	}
}

// Exchanger performs OAuth code exchange and refresh.
type Exchanger struct {
	client    *http.Client
	providers map[domain.Provider]ProviderConfig
}

// NewExchanger creates an exchanger. Providers whose app has no client ID
// are treated as unsupported. A nil client uses DefaultTimeout.
func NewExchanger(client *http.Client, providers map[domain.Provider]ProviderConfig) *Exchanger {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	configured := make(map[domain.Provider]ProviderConfig, len(providers))
	for p, cfg := range providers {
		if cfg.App.Configured() {
			configured[p] = cfg
		}
	}
	return &Exchanger{client: client, providers: configured}
}

// Supports reports whether provider has a configured app.
func (e *Exchanger) Supports(provider domain.Provider) bool {
	_, ok := e.providers[provider]
	return ok
}

func (e *Exchanger) config(provider domain.Provider, redirectURI string) (*oauth2.Config, ProviderConfig, error) {
	pc, ok := e.providers[provider]
	if !ok {
		return nil, ProviderConfig{}, fmt.Errorf("%w: no oauth app configured for %s", domain.ErrUnsupportedProvider, provider)
	}
	return &oauth2.Config{
		ClientID:     pc.App.ClientID,
		ClientSecret: pc.App.ClientSecret,
		Endpoint:     pc.Endpoint,
		RedirectURL:  redirectURI,
		Scopes:       pc.Scopes,
	}, pc, nil
}

// AuthURL builds the authorisation URL with a S256 PKCE challenge.
func (e *Exchanger) AuthURL(provider domain.Provider, state, codeChallenge, redirectURI string) (string, error) {
	cfg, pc, err := e.config(provider, redirectURI)
	if err != nil {
		return "", err
	}

	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	}
	for k, v := range pc.AuthParams {
		opts = append(opts, oauth2.SetAuthURLParam(k, v))
	}
	return cfg.AuthCodeURL(state, opts...), nil
}

// Exchange trades an authorisation code for tokens.
func (e *Exchanger) Exchange(
	ctx context.Context, provider domain.Provider, code, codeVerifier, redirectURI string,
) (*domain.OAuthToken, error) {
	cfg, _, err := e.config(provider, redirectURI)
	if err != nil {
		return nil, err
	}

	var opts []oauth2.AuthCodeOption
	if codeVerifier != "" {
		opts = append(opts, oauth2.VerifierOption(codeVerifier))
	}
	tok, err := cfg.Exchange(e.context(ctx), code, opts...)
	if err != nil {
		return nil, wrapError(err)
	}
	return toDomainToken(tok), nil
}

// Refresh obtains new tokens from a refresh token.
func (e *Exchanger) Refresh(ctx context.Context, provider domain.Provider, refreshToken string) (*domain.OAuthToken, error) {
	cfg, _, err := e.config(provider, "")
	if err != nil {
		return nil, err
	}
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: no refresh token", domain.ErrTokenRefreshFailed)
	}

	// An expired token forces the source to refresh.
	src := cfg.TokenSource(e.context(ctx), &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Unix(1, 0),
	})
	tok, err := src.Token()
	if err != nil {
		return nil, wrapError(err)
	}
	return toDomainToken(tok), nil
}

func (e *Exchanger) context(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, e.client)
}

func toDomainToken(tok *oauth2.Token) *domain.OAuthToken {
	out := &domain.OAuthToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		out.Scope = scope
	}
	return out
}

// wrapError surfaces the provider's error code and description.
func wrapError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode != "" {
		if retrieveErr.ErrorDescription != "" {
			return fmt.Errorf("token error: %s - %s", retrieveErr.ErrorCode, retrieveErr.ErrorDescription)
		}
		return fmt.Errorf("token error: %s", retrieveErr.ErrorCode)
	}
	return fmt.Errorf("token request: %w", err)
}

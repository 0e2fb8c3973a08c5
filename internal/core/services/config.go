package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
)

// Configuration keys, in dot notation.
const (
	ConfigStorageBackend        = "storage.backend"
	ConfigStorageDir            = "storage.dir"
	ConfigProxyStrategies       = "proxy.strategies"
	ConfigGitHubBaseURL         = "github.base_url"
	ConfigHTTPTimeoutSeconds    = "http.timeout_seconds"
	ConfigGitHubClientID        = "oauth.github.client_id"
	ConfigGitHubClientSecret    = "oauth.github.client_secret"
	ConfigAtlassianClientID     = "oauth.atlassian.client_id"
	ConfigAtlassianClientSecret = "oauth.atlassian.client_secret"
)

// ConfigKeys lists every recognised configuration key.
var ConfigKeys = []string{
	ConfigStorageBackend,
	ConfigStorageDir,
	ConfigProxyStrategies,
	ConfigGitHubBaseURL,
	ConfigHTTPTimeoutSeconds,
	ConfigGitHubClientID,
	ConfigGitHubClientSecret,
	ConfigAtlassianClientID,
	ConfigAtlassianClientSecret,
}

// ReadAppConfig reads the typed configuration from store, applying
// defaults. defaultDir is used when storage.dir is unset.
func ReadAppConfig(store driven.ConfigStore, defaultDir string) (domain.AppConfig, error) {
	cfg := domain.AppConfig{
		StorageBackend:  domain.StorageFile,
		StorageDir:      defaultDir,
		ProxyStrategies: store.GetStringSlice(ConfigProxyStrategies),
		GitHubBaseURL:   strings.TrimSpace(store.GetString(ConfigGitHubBaseURL)),
		HTTPTimeout:     domain.DefaultHTTPTimeout,
		GitHubOAuth: domain.OAuthApp{
			ClientID:     store.GetString(ConfigGitHubClientID),
			ClientSecret: store.GetString(ConfigGitHubClientSecret),
		},
		AtlassianOAuth: domain.OAuthApp{
			ClientID:     store.GetString(ConfigAtlassianClientID),
			ClientSecret: store.GetString(ConfigAtlassianClientSecret),
		},
	}

	if backend := strings.TrimSpace(store.GetString(ConfigStorageBackend)); backend != "" {
		cfg.StorageBackend = domain.StorageBackend(strings.ToLower(backend))
		if !cfg.StorageBackend.IsValid() {
			return domain.AppConfig{}, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ConfigStorageBackend, backend)
		}
	}
	if dir := strings.TrimSpace(store.GetString(ConfigStorageDir)); dir != "" {
		cfg.StorageDir = dir
	}

	if _, ok := store.Get(ConfigHTTPTimeoutSeconds); ok {
		seconds := store.GetInt(ConfigHTTPTimeoutSeconds)
		if seconds <= 0 {
			return domain.AppConfig{}, fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, ConfigHTTPTimeoutSeconds)
		}
		cfg.HTTPTimeout = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}

package domain

import "time"

// StorageBackend names a key-value store implementation.
type StorageBackend string

// Storage backends.
const (
	StorageFile   StorageBackend = "file"
	StorageSQLite StorageBackend = "sqlite"
)

// IsValid reports whether the backend is known.
func (b StorageBackend) IsValid() bool {
	return b == StorageFile || b == StorageSQLite
}

// OAuthApp is the client registration for one OAuth provider.
type OAuthApp struct {
	ClientID     string
	ClientSecret string
}

// Configured reports whether a client ID is set.
func (a OAuthApp) Configured() bool {
	return a.ClientID != ""
}

// AppConfig is the typed form of config.toml.
type AppConfig struct {
	StorageBackend  StorageBackend
	StorageDir      string
	ProxyStrategies []string
	GitHubBaseURL   string
	HTTPTimeout     time.Duration
	GitHubOAuth     OAuthApp
	AtlassianOAuth  OAuthApp
}

// DefaultHTTPTimeout bounds provider requests when no timeout is configured.
const DefaultHTTPTimeout = 30 * time.Second

package domain

import "time"

// OAuthToken represents stored OAuth credentials for a provider.
type OAuthToken struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type,omitempty"`
	// Scope is the granted scope string.
	Scope string `json:"scope,omitempty"`
	// Expiry is when the access token expires. Zero means it does not expire.
	Expiry time.Time `json:"expires_at,omitempty"`
}

// IsExpired returns true if the token has expired.
func (t *OAuthToken) IsExpired() bool {
	if t.Expiry.IsZero() {
		return false
	}
	return time.Now().After(t.Expiry)
}

// CanRefresh returns true if a refresh token is available.
func (t *OAuthToken) CanRefresh() bool {
	return t.RefreshToken != ""
}

// AuthMethod identifies how a session authenticates.
type AuthMethod string

// Supported authentication methods.
const (
	// AuthMethodPAT is a personal access token or API token entered by the user.
	AuthMethodPAT AuthMethod = "pat"

	// AuthMethodOAuth is an access token obtained through an OAuth flow.
	AuthMethodOAuth AuthMethod = "oauth"
)

// String returns the string representation.
func (m AuthMethod) String() string {
	return string(m)
}

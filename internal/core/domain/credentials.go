package domain

import (
	"strings"
	"time"
)

// CredentialsRecord stores the authentication fields for one provider.
// There is at most one record per provider. A stored record always has
// every required field present; partially-filled records are never persisted.
type CredentialsRecord struct {
	// Provider is the system these credentials authenticate against.
	Provider Provider `json:"-"`

	// Fields holds the provider-specific values (token, or domain/email/apiToken).
	Fields map[string]string `json:"fields"`

	// Timestamp is when the record was last stored.
	Timestamp time.Time `json:"timestamp"`
}

// Get returns a field value or empty string.
func (r *CredentialsRecord) Get(field string) string {
	if r == nil || r.Fields == nil {
		return ""
	}
	return r.Fields[field]
}

// GitHubCredentials is the typed form of a GitHub credentials record.
type GitHubCredentials struct {
	Token string
}

// Fields converts the credentials into a record field map.
func (c GitHubCredentials) Fields() map[string]string {
	return map[string]string{FieldToken: c.Token}
}

// GitHubCredentialsFrom extracts GitHub credentials from a field map.
func GitHubCredentialsFrom(fields map[string]string) GitHubCredentials {
	return GitHubCredentials{Token: strings.TrimSpace(fields[FieldToken])}
}

// AtlassianCredentials is the typed form of a Jira or Confluence record.
type AtlassianCredentials struct {
	// Domain is the site host, e.g. "acme.atlassian.net". A scheme is tolerated.
	Domain   string
	Email    string
	APIToken string
}

// Fields converts the credentials into a record field map.
func (c AtlassianCredentials) Fields() map[string]string {
	return map[string]string{
		FieldDomain:   c.Domain,
		FieldEmail:    c.Email,
		FieldAPIToken: c.APIToken,
	}
}

// BaseURL returns the https site URL for the domain.
func (c AtlassianCredentials) BaseURL() string {
	return AtlassianBaseURL(c.Domain)
}

// AtlassianCredentialsFrom extracts Atlassian credentials from a field map.
func AtlassianCredentialsFrom(fields map[string]string) AtlassianCredentials {
	return AtlassianCredentials{
		Domain:   strings.TrimSpace(fields[FieldDomain]),
		Email:    strings.TrimSpace(fields[FieldEmail]),
		APIToken: strings.TrimSpace(fields[FieldAPIToken]),
	}
}

// AtlassianBaseURL strips any http(s) scheme and trailing slash from domain
// and returns it as an https URL.
func AtlassianBaseURL(domain string) string {
	d := strings.TrimSpace(domain)
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimRight(d, "/")
	return "https://" + d
}

// HasRequiredFields reports whether every named field is present and non-blank.
func HasRequiredFields(fields map[string]string, required []string) bool {
	for _, name := range required {
		if strings.TrimSpace(fields[name]) == "" {
			return false
		}
	}
	return true
}

// MaskSecret hides all but the edges of a secret for display.
func MaskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

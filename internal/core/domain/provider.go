package domain

import "strings"

// Provider identifies an external system integrated by DevSync.
type Provider string

// Supported providers.
const (
	ProviderGitHub     Provider = "github"
	ProviderJira       Provider = "jira"
	ProviderConfluence Provider = "confluence"
)

// Credential field names.
//
//nolint:gosec // G101: field names, not credentials.
const (
	FieldToken    = "token"
	FieldDomain   = "domain"
	FieldEmail    = "email"
	FieldAPIToken = "apiToken"
)

// AllProviders returns every supported provider.
func AllProviders() []Provider {
	return []Provider{ProviderGitHub, ProviderJira, ProviderConfluence}
}

// ParseProvider converts a user-supplied name into a Provider.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", ErrUnsupportedProvider
	}
	return p, nil
}

// IsValid returns true if the provider is recognised.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderGitHub, ProviderJira, ProviderConfluence:
		return true
	default:
		return false
	}
}

// RequiredFields returns the credential fields that must be non-blank.
// Confluence shares the Atlassian field set with Jira.
func (p Provider) RequiredFields() []string {
	switch p {
	case ProviderGitHub:
		return []string{FieldToken}
	case ProviderJira, ProviderConfluence:
		return []string{FieldDomain, FieldEmail, FieldAPIToken}
	default:
		return nil
	}
}

// SecretFields returns the fields that must be masked when displayed.
func (p Provider) SecretFields() []string {
	switch p {
	case ProviderGitHub:
		return []string{FieldToken}
	case ProviderJira, ProviderConfluence:
		return []string{FieldAPIToken}
	default:
		return nil
	}
}

// String returns the string representation.
func (p Provider) String() string {
	return string(p)
}

// Description returns a human-readable name.
func (p Provider) Description() string {
	switch p {
	case ProviderGitHub:
		return "GitHub"
	case ProviderJira:
		return "Jira Cloud"
	case ProviderConfluence:
		return "Confluence Cloud"
	default:
		return unknownDescription
	}
}

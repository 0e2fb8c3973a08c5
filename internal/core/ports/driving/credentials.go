package driving

import (
	"context"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// CredentialService manages the per-provider credential records.
// There is at most one record per provider.
type CredentialService interface {
	// Store validates fields and saves them as the provider's record,
	// replacing any previous record.
	// Returns domain.ErrInvalidCredentials if a required field is blank.
	Store(ctx context.Context, provider domain.Provider, fields map[string]string) error

	// Get returns the provider's record, or nil if none is stored.
	Get(ctx context.Context, provider domain.Provider) (*domain.CredentialsRecord, error)

	// Has reports whether a record is stored for the provider.
	Has(ctx context.Context, provider domain.Provider) bool

	// Remove deletes the provider's record.
	Remove(ctx context.Context, provider domain.Provider) error

	// ClearAll deletes every record.
	ClearAll(ctx context.Context) error

	// ValidateGitHub reports whether fields hold a non-blank token.
	ValidateGitHub(fields map[string]string) bool

	// ValidateJira reports whether fields hold non-blank domain, email and apiToken.
	ValidateJira(fields map[string]string) bool

	// Validate applies the provider's field rules.
	Validate(provider domain.Provider, fields map[string]string) bool
}

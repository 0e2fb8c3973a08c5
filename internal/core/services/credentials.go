package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/devsync-cli/internal/logger"
)

// Ensure CredentialService implements the interface.
var _ driving.CredentialService = (*CredentialService)(nil)

// CredentialsKey is the store key holding every provider's record as one JSON map.
//
//nolint:gosec // G101: storage key name, not a credential.
const CredentialsKey = "devsync_credentials"

// CredentialService manages the per-provider credential records.
// Records are stored in plaintext; the store file is only protected by
// its permissions.
type CredentialService struct {
	store driven.KeyValueStore
	now   func() time.Time
}

// NewCredentialService creates a new credential service.
func NewCredentialService(store driven.KeyValueStore) *CredentialService {
	return &CredentialService{
		store: store,
		now:   time.Now,
	}
}

// storedRecord is the on-disk form of one provider's record.
type storedRecord struct {
	Fields    map[string]string `json:"fields"`
	Timestamp time.Time         `json:"timestamp"`
}

// Store validates fields and saves them as the provider's record.
func (s *CredentialService) Store(ctx context.Context, provider domain.Provider, fields map[string]string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, provider)
	}
	if !s.Validate(provider, fields) {
		return fmt.Errorf("store %s credentials: %w", provider, domain.ErrInvalidCredentials)
	}

	all, err := s.load(ctx)
	if err != nil {
		return err
	}

	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	all[provider] = storedRecord{Fields: copied, Timestamp: s.now().UTC()}

	if err := s.save(ctx, all); err != nil {
		return err
	}
	logger.Debug("stored %s credentials", provider)
	return nil
}

// Get returns the provider's record, or nil if none is stored.
func (s *CredentialService) Get(ctx context.Context, provider domain.Provider) (*domain.CredentialsRecord, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := all[provider]
	if !ok {
		return nil, nil
	}
	return &domain.CredentialsRecord{
		Provider:  provider,
		Fields:    rec.Fields,
		Timestamp: rec.Timestamp,
	}, nil
}

// Has reports whether a record is stored for the provider.
func (s *CredentialService) Has(ctx context.Context, provider domain.Provider) bool {
	rec, err := s.Get(ctx, provider)
	return err == nil && rec != nil
}

// Remove deletes the provider's record.
func (s *CredentialService) Remove(ctx context.Context, provider domain.Provider) error {
	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := all[provider]; !ok {
		return nil
	}
	delete(all, provider)
	if err := s.save(ctx, all); err != nil {
		return err
	}
	logger.Debug("removed %s credentials", provider)
	return nil
}

// ClearAll deletes every record.
func (s *CredentialService) ClearAll(ctx context.Context) error {
	if err := s.store.Delete(ctx, CredentialsKey); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// ValidateGitHub reports whether fields hold a non-blank token.
func (s *CredentialService) ValidateGitHub(fields map[string]string) bool {
	return domain.HasRequiredFields(fields, domain.ProviderGitHub.RequiredFields())
}

// ValidateJira reports whether fields hold non-blank domain, email and apiToken.
func (s *CredentialService) ValidateJira(fields map[string]string) bool {
	return domain.HasRequiredFields(fields, domain.ProviderJira.RequiredFields())
}

// Validate applies the provider's field rules.
func (s *CredentialService) Validate(provider domain.Provider, fields map[string]string) bool {
	switch provider {
	case domain.ProviderGitHub:
		return s.ValidateGitHub(fields)
	case domain.ProviderJira, domain.ProviderConfluence:
		return s.ValidateJira(fields)
	default:
		return false
	}
}

// load reads the record map. A corrupt map reads as empty.
func (s *CredentialService) load(ctx context.Context) (map[domain.Provider]storedRecord, error) {
	all := make(map[domain.Provider]storedRecord)

	raw, ok, err := s.store.Get(ctx, CredentialsKey)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if !ok || raw == "" {
		return all, nil
	}

	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		logger.Warn("stored credentials are unreadable, treating as empty: %v", err)
		return make(map[domain.Provider]storedRecord), nil
	}
	return all, nil
}

func (s *CredentialService) save(ctx context.Context, all map[domain.Provider]storedRecord) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := s.store.Set(ctx, CredentialsKey, string(data)); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

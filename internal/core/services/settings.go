package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/devsync-cli/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Store keys for persisted dashboard state.
const (
	SettingsKey     = "devsync_settings"
	SelectedRepoKey = "selectedRepo"
)

// SettingsService manages persisted dashboard preferences.
type SettingsService struct {
	store driven.KeyValueStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(store driven.KeyValueStore) *SettingsService {
	return &SettingsService{store: store}
}

// Get returns the stored UI settings, or the defaults when none are stored.
// Fields missing from the stored JSON keep their default values.
func (s *SettingsService) Get(ctx context.Context) (domain.UISettings, error) {
	settings := domain.DefaultUISettings()

	raw, ok, err := s.store.Get(ctx, SettingsKey)
	if err != nil {
		return settings, fmt.Errorf("read settings: %w", err)
	}
	if !ok {
		return settings, nil
	}

	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		logger.Warn("stored settings are unreadable, using defaults: %v", err)
		return domain.DefaultUISettings(), nil
	}
	settings.Normalise()
	return settings, nil
}

// Save normalises and persists UI settings.
func (s *SettingsService) Save(ctx context.Context, settings domain.UISettings) error {
	settings.Normalise()
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.store.Set(ctx, SettingsKey, string(data)); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// SetTheme updates the theme.
func (s *SettingsService) SetTheme(ctx context.Context, theme domain.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: unknown theme %q", domain.ErrInvalidInput, theme)
	}
	settings, err := s.Get(ctx)
	if err != nil {
		return err
	}
	settings.Theme = theme
	return s.Save(ctx, settings)
}

// SetVolume updates the sound volume, clamped to [0, 1].
func (s *SettingsService) SetVolume(ctx context.Context, volume float64) error {
	settings, err := s.Get(ctx)
	if err != nil {
		return err
	}
	settings.Volume = domain.ClampVolume(volume)
	return s.Save(ctx, settings)
}

// SelectedRepo returns the last selected repository, if any.
func (s *SettingsService) SelectedRepo(ctx context.Context) (domain.RepoRef, bool, error) {
	raw, ok, err := s.store.Get(ctx, SelectedRepoKey)
	if err != nil {
		return domain.RepoRef{}, false, fmt.Errorf("read selected repository: %w", err)
	}
	if !ok {
		return domain.RepoRef{}, false, nil
	}
	ref, err := domain.ParseRepoRef(raw)
	if err != nil {
		logger.Warn("ignoring stored repository %q: %v", raw, err)
		return domain.RepoRef{}, false, nil
	}
	return ref, true, nil
}

// SetSelectedRepo remembers the selected repository.
func (s *SettingsService) SetSelectedRepo(ctx context.Context, ref domain.RepoRef) error {
	if ref.Owner == "" || ref.Name == "" {
		return fmt.Errorf("%w: repository owner and name are required", domain.ErrInvalidInput)
	}
	if err := s.store.Set(ctx, SelectedRepoKey, ref.String()); err != nil {
		return fmt.Errorf("write selected repository: %w", err)
	}
	return nil
}

package driving

import (
	"context"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// SettingsService manages persisted dashboard preferences.
type SettingsService interface {
	// Get returns the stored UI settings, or the defaults when none are stored.
	Get(ctx context.Context) (domain.UISettings, error)

	// Save normalises and persists UI settings.
	Save(ctx context.Context, settings domain.UISettings) error

	// SetTheme updates the theme.
	SetTheme(ctx context.Context, theme domain.Theme) error

	// SetVolume updates the sound volume, clamped to [0, 1].
	SetVolume(ctx context.Context, volume float64) error

	// SelectedRepo returns the last selected repository, if any.
	SelectedRepo(ctx context.Context) (domain.RepoRef, bool, error)

	// SetSelectedRepo remembers the selected repository.
	SetSelectedRepo(ctx context.Context, ref domain.RepoRef) error
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewKVStore())

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewKVStore())

	settings, err := service.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultUISettings(), settings)
}

func TestSettingsService_Get_PartialJSONKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	require.NoError(t, store.Set(ctx, SettingsKey, `{"theme":"light"}`))
	service := NewSettingsService(store)

	settings, err := service.Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, settings.Theme)
	assert.True(t, settings.Notifications)
	assert.InDelta(t, 0.3, settings.Volume, 1e-9)
}

func TestSettingsService_Get_InvalidValuesNormalised(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	require.NoError(t, store.Set(ctx, SettingsKey, `{"theme":"neon","volume":7}`))
	service := NewSettingsService(store)

	settings, err := service.Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, settings.Theme)
	assert.InDelta(t, 1.0, settings.Volume, 1e-9)
}

func TestSettingsService_Get_CorruptJSONReturnsDefaults(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	require.NoError(t, store.Set(ctx, SettingsKey, `{`))

	settings, err := NewSettingsService(store).Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultUISettings(), settings)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	service := NewSettingsService(memory.NewKVStore())
	want := domain.UISettings{Theme: domain.ThemeLight, Notifications: false, SoundEffects: true, Volume: 0.8}

	require.NoError(t, service.Save(ctx, want))
	got, err := service.Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettingsService_SetTheme(t *testing.T) {
	ctx := context.Background()
	service := NewSettingsService(memory.NewKVStore())

	require.NoError(t, service.SetTheme(ctx, domain.ThemeLight))
	settings, _ := service.Get(ctx)
	assert.Equal(t, domain.ThemeLight, settings.Theme)

	assert.ErrorIs(t, service.SetTheme(ctx, "neon"), domain.ErrInvalidInput)
}

func TestSettingsService_SetVolume_Clamps(t *testing.T) {
	ctx := context.Background()
	service := NewSettingsService(memory.NewKVStore())

	require.NoError(t, service.SetVolume(ctx, -1))
	settings, _ := service.Get(ctx)
	assert.Zero(t, settings.Volume)

	require.NoError(t, service.SetVolume(ctx, 0.55))
	settings, _ = service.Get(ctx)
	assert.InDelta(t, 0.55, settings.Volume, 1e-9)
}

func TestSettingsService_SelectedRepo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	service := NewSettingsService(store)

	_, ok, err := service.SelectedRepo(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, service.SetSelectedRepo(ctx, domain.RepoRef{Owner: "octocat", Name: "Hello-World"}))

	ref, ok, err := service.SelectedRepo(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "octocat/Hello-World", ref.String())

	raw, _, _ := store.Get(ctx, SelectedRepoKey)
	assert.Equal(t, "octocat/Hello-World", raw)

	assert.ErrorIs(t, service.SetSelectedRepo(ctx, domain.RepoRef{Owner: "octocat"}), domain.ErrInvalidInput)
}

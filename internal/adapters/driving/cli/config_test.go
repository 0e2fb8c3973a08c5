package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/services"
)

func setupConfig(initial map[string]any) (*memory.ConfigStore, func()) {
	store := memory.NewConfigStore(initial)
	SetServices(&Services{Config: store})
	return store, func() {
		SetServices(nil)
		resetFlags(rootCmd)
	}
}

func TestConfigList(t *testing.T) {
	_, cleanup := setupConfig(map[string]any{
		services.ConfigStorageBackend:     "sqlite",
		services.ConfigProxyStrategies:    []any{"direct", "https://relay.example.com/?url="},
		services.ConfigGitHubClientSecret: "0123456789abcdef",
		services.ConfigHTTPTimeoutSeconds: int64(10),
	})
	defer cleanup()

	out, err := runCommand(t, "", "config")

	require.NoError(t, err)
	assert.Contains(t, out, "storage.backend")
	assert.Contains(t, out, "sqlite")
	assert.Contains(t, out, "direct,https://relay.example.com/?url=")
	assert.Contains(t, out, "0123...cdef")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "(unset)")
}

func TestConfigGet(t *testing.T) {
	_, cleanup := setupConfig(map[string]any{services.ConfigGitHubBaseURL: "https://ghe.example.com/api/v3/"})
	defer cleanup()

	out, err := runCommand(t, "", "config", "get", "github.base_url")

	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3/\n", out)
}

func TestConfigGet_UnknownKey(t *testing.T) {
	_, cleanup := setupConfig(nil)
	defer cleanup()

	_, err := runCommand(t, "", "config", "get", "ai.provider")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigSet(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, store *memory.ConfigStore)
	}{
		{
			name: "strategies become a list", key: services.ConfigProxyStrategies,
			value: "direct, https://relay.example.com/?url=",
			check: func(t *testing.T, store *memory.ConfigStore) {
				assert.Equal(t, []string{"direct", "https://relay.example.com/?url="},
					store.GetStringSlice(services.ConfigProxyStrategies))
			},
		},
		{
			name: "timeout is an integer", key: services.ConfigHTTPTimeoutSeconds, value: "15",
			check: func(t *testing.T, store *memory.ConfigStore) {
				assert.Equal(t, 15, store.GetInt(services.ConfigHTTPTimeoutSeconds))
			},
		},
		{
			name: "backend is lowercased", key: services.ConfigStorageBackend, value: "SQLite",
			check: func(t *testing.T, store *memory.ConfigStore) {
				assert.Equal(t, "sqlite", store.GetString(services.ConfigStorageBackend))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := setupConfig(nil)
			defer cleanup()

			out, err := runCommand(t, "", "config", "set", tt.key, tt.value)

			require.NoError(t, err)
			assert.Contains(t, out, tt.key+" set to:")
			tt.check(t, store)
		})
	}
}

func TestConfigSet_Invalid(t *testing.T) {
	for _, args := range [][]string{
		{services.ConfigHTTPTimeoutSeconds, "soon"},
		{services.ConfigHTTPTimeoutSeconds, "0"},
		{services.ConfigStorageBackend, "postgres"},
		{"search.limit", "5"},
	} {
		_, cleanup := setupConfig(nil)
		_, err := runCommand(t, "", append([]string{"config", "set"}, args...)...)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, args)
		cleanup()
	}
}

func TestConfig_NotLoaded(t *testing.T) {
	SetServices(nil)
	defer resetFlags(rootCmd)

	_, err := runCommand(t, "", "config", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration not loaded")
}

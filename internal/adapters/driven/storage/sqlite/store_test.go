package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DBName), store.Path())
	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNewStore_MigrationsRecorded(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations.
	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	var count int
	require.NoError(t, reopened.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	_, ok, err := store.Get(ctx, "devsync_settings")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "devsync_settings", `{"theme":"dark"}`))
	require.NoError(t, store.Set(ctx, "devsync_settings", `{"theme":"light"}`))

	val, ok, err := store.Get(ctx, "devsync_settings")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"theme":"light"}`, val)

	require.NoError(t, store.Delete(ctx, "devsync_settings"))
	_, ok, err = store.Get(ctx, "devsync_settings")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Delete(ctx, "missing"))
}

func TestStore_Keys(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	require.NoError(t, store.Set(ctx, "selectedRepo", "octocat/Hello-World"))
	require.NoError(t, store.Set(ctx, "devsync_credentials", "{}"))

	keys, err := store.Keys(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"devsync_credentials", "selectedRepo"}, keys)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "oauth_github_tokens", `{"access_token":"gho_x"}`))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	val, ok, err := reopened.Get(ctx, "oauth_github_tokens")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"access_token":"gho_x"}`, val)
}

func TestStore_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, store.Set(ctx, fmt.Sprintf("key-%d", n), "v"))
		}(i)
	}
	wg.Wait()

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 10)
}

func TestStore_ClosedStoreErrors(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, _, err = store.Get(context.Background(), "k")
	assert.Error(t, err)
}

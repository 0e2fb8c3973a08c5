package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresDir(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestNew_CreatesPrivateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "devsync")

	store, err := New(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "store.json"), store.Path())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, ok, err := store.Get(ctx, "devsync_credentials")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "devsync_credentials", `{"github":{}}`))
	val, ok, err := store.Get(ctx, "devsync_credentials")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"github":{}}`, val)

	require.NoError(t, store.Delete(ctx, "devsync_credentials"))
	_, ok, err = store.Get(ctx, "devsync_credentials")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Delete(ctx, "missing"))
	assert.NoError(t, store.Close())
}

func TestStore_FilePermissions(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "k", "v"))

	info, err := os.Stat(store.Path())

	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStore_SharedAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writer, err := New(dir)
	require.NoError(t, err)
	reader, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, writer.Set(ctx, "selectedRepo", "octocat/Hello-World"))

	val, ok, err := reader.Get(ctx, "selectedRepo")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "octocat/Hello-World", val)
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0600))
	store, err := New(dir)
	require.NoError(t, err)

	_, _, err = store.Get(context.Background(), "k")

	assert.Error(t, err)
}

func TestStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), nil, 0600))
	store, err := New(dir)
	require.NoError(t, err)

	_, ok, err := store.Get(context.Background(), "k")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	require.NoError(t, err)

	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, k := range keys {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			assert.NoError(t, store.Set(ctx, key, key))
		}(k)
	}
	wg.Wait()

	for _, k := range keys {
		val, ok, err := store.Get(ctx, k)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, k, val)
	}
}

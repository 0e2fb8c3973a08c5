package driven

import "context"

// KeyValueStore persists small string values under well-known keys.
// It is the local equivalent of browser storage: credentials, UI settings,
// the last selected repository and OAuth tokens all live here as JSON.
type KeyValueStore interface {
	// Get returns the value for key.
	// The boolean is false when the key does not exist.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

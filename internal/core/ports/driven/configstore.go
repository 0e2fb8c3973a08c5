package driven

// ConfigStore reads and writes config.toml. Keys use dot notation, so
// "oauth.github.client_id" is client_id in the [oauth.github] table.
// Typed getters return the zero value when a key is missing or holds
// another type.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int

	// GetStringSlice also accepts a single string as a one-element list.
	GetStringSlice(key string) []string

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Path is the file backing the store.
	Path() string
}

package memory

import (
	"maps"
	"sync"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driven/config"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a driven.ConfigStore that never touches disk. Values
// are coerced the same way the TOML store coerces them.
type ConfigStore struct {
	mu     sync.RWMutex
	values config.Values
}

// NewConfigStore copies initial into a new store.
func NewConfigStore(initial map[string]any) *ConfigStore {
	values := make(config.Values, len(initial))
	maps.Copy(values, initial)
	return &ConfigStore{values: values}
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *ConfigStore) GetString(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.String(key)
}

func (s *ConfigStore) GetInt(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Int(key)
}

func (s *ConfigStore) GetStringSlice(key string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Strings(key)
}

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Path returns ":memory:".
func (s *ConfigStore) Path() string { return ":memory:" }

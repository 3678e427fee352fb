package memory

import (
	"maps"
	"sync"

	"github.com/custodia-labs/folio/internal/adapters/driven/config/values"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map. Tests use it in place of the TOML
// file, and Seed lets them start from a known configuration.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore returns an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: map[string]any{}}
}

// Seed copies kv into the store, overwriting existing keys.
func (s *ConfigStore) Seed(kv map[string]any) *ConfigStore {
	s.mu.Lock()
	maps.Copy(s.values, kv)
	s.mu.Unlock()
	return s
}

// Get returns the raw value stored under key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

func (s *ConfigStore) raw(key string) any {
	val, _ := s.Get(key)
	return val
}

// GetString returns key as a string.
func (s *ConfigStore) GetString(key string) string { return values.String(s.raw(key)) }

// GetInt returns key as an int.
func (s *ConfigStore) GetInt(key string) int { return values.Int(s.raw(key)) }

// GetFloat returns key as a float64.
func (s *ConfigStore) GetFloat(key string) float64 { return values.Float(s.raw(key)) }

// GetBool returns key as a bool.
func (s *ConfigStore) GetBool(key string) bool { return values.Bool(s.raw(key)) }

// GetStringSlice returns a copy of key as a string slice.
func (s *ConfigStore) GetStringSlice(key string) []string { return values.Strings(s.raw(key)) }

// Set stores value under key.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

// Save does nothing; there is nothing to persist to.
func (s *ConfigStore) Save() error { return nil }

// Load does nothing.
func (s *ConfigStore) Load() error { return nil }

// Path returns ":memory:".
func (s *ConfigStore) Path() string { return ":memory:" }

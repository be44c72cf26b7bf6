// Package memory provides a map-backed key-value store for tests and
// ephemeral sessions.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/bnema/startdash/internal/application/port"
)

// Store is a port.KeyValueStore that lives for the process lifetime.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ port.KeyValueStore = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of every stored entry.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

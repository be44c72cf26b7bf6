// Package layout persists window positions and sizes through a key-value store.
//
// Positions and sizes live in two independent JSON objects keyed by window id.
// Every save reads the whole map, updates one entry and writes it back
// immediately. Loads treat an unreadable or undecodable map as empty and a
// null entry as absent; saves refuse to write over a map they could not read.
package layout

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/bnema/startdash/internal/application/port"
	"github.com/bnema/startdash/internal/domain/entity"
	"github.com/bnema/startdash/internal/logging"
)

// Storage keys for the two layout maps.
const (
	PositionsKey = "component_positions"
	SizesKey     = "component_sizes"
)

// Store reads and writes window layout.
type Store struct {
	kv port.KeyValueStore
}

// NewStore creates a layout store over kv.
func NewStore(kv port.KeyValueStore) *Store {
	return &Store{kv: kv}
}

// LoadPosition returns the stored position for id; ok is false when none is stored.
func (s *Store) LoadPosition(ctx context.Context, id entity.WindowID) (entity.Position, bool) {
	pos, ok := loadMap[entity.Position](ctx, s.kv, PositionsKey)[id]
	return pos, ok
}

// SavePosition stores the position for id.
func (s *Store) SavePosition(ctx context.Context, id entity.WindowID, pos entity.Position) error {
	return updateEntry(ctx, s.kv, PositionsKey, func(m map[string]*entity.Position) {
		m[id] = &pos
	})
}

// ClearPosition removes the stored position for id.
func (s *Store) ClearPosition(ctx context.Context, id entity.WindowID) error {
	return updateEntry(ctx, s.kv, PositionsKey, func(m map[string]*entity.Position) {
		delete(m, id)
	})
}

// Positions returns every stored position.
func (s *Store) Positions(ctx context.Context) map[entity.WindowID]entity.Position {
	return loadMap[entity.Position](ctx, s.kv, PositionsKey)
}

// LoadSize returns the stored size for id; ok is false when none is stored.
func (s *Store) LoadSize(ctx context.Context, id entity.WindowID) (entity.Size, bool) {
	size, ok := loadMap[entity.Size](ctx, s.kv, SizesKey)[id]
	return size, ok
}

// SaveSize stores the size for id. Nil axes are stored as absent.
func (s *Store) SaveSize(ctx context.Context, id entity.WindowID, size entity.Size) error {
	return updateEntry(ctx, s.kv, SizesKey, func(m map[string]*entity.Size) {
		clone := size.Clone()
		m[id] = &clone
	})
}

// ClearSize removes the stored size for id.
func (s *Store) ClearSize(ctx context.Context, id entity.WindowID) error {
	return updateEntry(ctx, s.kv, SizesKey, func(m map[string]*entity.Size) {
		delete(m, id)
	})
}

// Sizes returns every stored size.
func (s *Store) Sizes(ctx context.Context) map[entity.WindowID]entity.Size {
	return loadMap[entity.Size](ctx, s.kv, SizesKey)
}

// Clear removes both the position and the size stored for id.
func (s *Store) Clear(ctx context.Context, id entity.WindowID) error {
	if err := s.ClearPosition(ctx, id); err != nil {
		return err
	}
	return s.ClearSize(ctx, id)
}

// ClearAll drops every stored position and size.
func (s *Store) ClearAll(ctx context.Context) error {
	for _, key := range []string{PositionsKey, SizesKey} {
		if err := s.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	return nil
}

// Layouts merges both maps into one entry per window id, sorted by id.
func (s *Store) Layouts(ctx context.Context) []entity.WindowLayout {
	positions := s.Positions(ctx)
	sizes := s.Sizes(ctx)

	ids := make([]string, 0, len(positions)+len(sizes))
	for id := range positions {
		ids = append(ids, id)
	}
	for id := range sizes {
		if _, dup := positions[id]; !dup {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	out := make([]entity.WindowLayout, 0, len(ids))
	for _, id := range ids {
		l := entity.WindowLayout{ID: id}
		if pos, ok := positions[id]; ok {
			l.Position = &pos
		}
		if size, ok := sizes[id]; ok {
			l.Size = &size
		}
		out = append(out, l)
	}
	return out
}

func loadMap[T any](ctx context.Context, kv port.KeyValueStore, key string) map[string]T {
	entries, err := readMap[T](ctx, kv, key)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("failed to read layout, using defaults")
	}

	out := make(map[string]T, len(entries))
	for id, v := range entries {
		out[id] = *v
	}
	return out
}

// readMap returns the entries stored under key, dropping null ones. A value
// that does not decode is logged and read as empty; only store failures are
// returned.
func readMap[T any](ctx context.Context, kv port.KeyValueStore, key string) (map[string]*T, error) {
	out := make(map[string]*T)

	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if !ok || raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("stored layout is corrupt, ignoring it")
		return make(map[string]*T), nil
	}
	if out == nil {
		return make(map[string]*T), nil
	}
	for id, v := range out {
		if v == nil {
			delete(out, id)
		}
	}
	return out, nil
}

// updateEntry rewrites the map under key. It never writes when the current
// map could not be read, so other windows' entries survive a failing store.
func updateEntry[T any](ctx context.Context, kv port.KeyValueStore, key string, mutate func(map[string]*T)) error {
	m, err := readMap[T](ctx, kv, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	mutate(m)

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

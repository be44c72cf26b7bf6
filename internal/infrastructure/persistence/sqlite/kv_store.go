package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/startdash/internal/application/port"
	"github.com/bnema/startdash/internal/logging"
)

const (
	getValueQuery = `SELECT value FROM kv_store WHERE key = ?`
	setValueQuery = `INSERT INTO kv_store (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	deleteValueQuery = `DELETE FROM kv_store WHERE key = ?`
)

type kvStore struct {
	provider port.DatabaseProvider
}

// NewKVStore creates a SQLite-backed key-value store. The connection is taken
// from provider on every call, so a LazyDB is only opened on first use.
func NewKVStore(provider port.DatabaseProvider) port.KeyValueStore {
	return &kvStore{provider: provider}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, bool, error) {
	db, err := s.provider.DB(ctx)
	if err != nil {
		return "", false, err
	}

	var value string
	err = db.QueryRowContext(ctx, getValueQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("key", key).Int("bytes", len(value)).Msg("writing value")

	db, err := s.provider.DB(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, setValueQuery, key, value); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	db, err := s.provider.DB(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, deleteValueQuery, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/startdash/internal/application/port"
	"github.com/bnema/startdash/internal/logging"
)

// ErrClosed is returned by DB once the provider has been closed.
var ErrClosed = errors.New("layout database closed")

// LazyDB implements port.DatabaseProvider. The file is opened and migrated on
// the first DB call, so commands that never touch layout never pay for the
// WASM runtime. An open failure is kept and returned by every later call.
type LazyDB struct {
	path string

	mu     sync.Mutex
	db     *sql.DB
	err    error
	closed bool
}

var _ port.DatabaseProvider = (*LazyDB)(nil)

// NewLazyDB returns a provider for the database at path without opening it.
func NewLazyDB(path string) *LazyDB {
	return &LazyDB{path: path}
}

// DB returns the shared connection, opening it on first use.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case l.closed:
		return nil, ErrClosed
	case l.db != nil:
		return l.db, nil
	case l.err != nil:
		return nil, l.err
	}

	log := logging.FromContext(ctx)
	db, err := NewConnection(ctx, l.path)
	if err != nil {
		l.err = fmt.Errorf("open layout database: %w", err)
		log.Error().Err(err).Str("path", l.path).Msg("layout database unavailable")
		return nil, l.err
	}
	l.db = db
	return db, nil
}

// Close closes the connection if one was opened. Later DB calls fail with ErrClosed.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// IsInitialized reports whether a connection is open.
func (l *LazyDB) IsInitialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db != nil
}

// Path returns the database file location.
func (l *LazyDB) Path() string {
	return l.path
}

package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/startdash/internal/domain/entity"
	"github.com/bnema/startdash/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/startdash/internal/layout"
	"github.com/bnema/startdash/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func TestKVStore_CRUD(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "startdash.db"))
	t.Cleanup(func() { _ = lazy.Close() })
	store := sqlite.NewKVStore(lazy)

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", `{"a":1}`))
	require.NoError(t, store.Set(ctx, "k", `{"a":2}`))

	v, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":2}`, v)

	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"))
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVStore_LayoutSurvivesReopen(t *testing.T) {
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "startdash.db")

	first := sqlite.NewLazyDB(dbPath)
	require.NoError(t, layout.NewStore(sqlite.NewKVStore(first)).
		SavePosition(ctx, "clock", entity.Position{X: 10, Y: 20}))
	require.NoError(t, first.Close())

	second := sqlite.NewLazyDB(dbPath)
	t.Cleanup(func() { _ = second.Close() })
	pos, ok := layout.NewStore(sqlite.NewKVStore(second)).LoadPosition(ctx, "clock")

	require.True(t, ok)
	assert.Equal(t, entity.Position{X: 10, Y: 20}, pos)
}

func TestKVStore_InitFailure(t *testing.T) {
	ctx := testCtx()
	store := sqlite.NewKVStore(sqlite.NewLazyDB(""))

	_, _, err := store.Get(ctx, "k")
	require.Error(t, err)
	assert.Error(t, store.Set(ctx, "k", "v"))
}

func TestSchemaVersion(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "startdash.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	version, err := sqlite.SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

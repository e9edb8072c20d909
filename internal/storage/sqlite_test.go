package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.RunMigrations("../../migrations"))

	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestSQLite_GetMissingKey(t *testing.T) {
	store := setupSQLite(t)

	_, err := store.Get(context.Background(), "cart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_SetAndGet(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart", `[{"id":1,"quantity":2}]`))

	value, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"quantity":2}]`, value)
}

func TestSQLite_SetOverwrites(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart", `[]`))
	require.NoError(t, store.Set(ctx, "cart", `[{"id":1,"quantity":1}]`))

	value, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"quantity":1}]`, value)
}

func TestSQLite_KeysAreIndependent(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart", `[]`))
	require.NoError(t, store.Set(ctx, "user", `{"id":7}`))

	cart, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	user, err := store.Get(ctx, "user")
	require.NoError(t, err)

	assert.Equal(t, `[]`, cart)
	assert.Equal(t, `{"id":7}`, user)
}

func TestSQLite_Remove(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user", `{"id":7}`))
	require.NoError(t, store.Remove(ctx, "user"))

	_, err := store.Get(ctx, "user")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_RemoveMissingKeyIsNoOp(t *testing.T) {
	store := setupSQLite(t)

	assert.NoError(t, store.Remove(context.Background(), "nonexistent"))
}

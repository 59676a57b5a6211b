package keystore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE keystore (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, []byte("abc")))

	v, err := r.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), v)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	v, err := r.Get(ctx, "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyUser, []byte("old")))
	require.NoError(t, r.Set(ctx, KeyUser, []byte("new")))

	v, err := r.Get(ctx, KeyUser)
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, []byte("x")))
	require.NoError(t, r.Delete(ctx, KeyToken))

	v, err := r.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, KeyToken))
}

func TestClear_RemovesAllKeys(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, []byte("t")))
	require.NoError(t, r.Set(ctx, KeyUser, []byte("u")))
	require.NoError(t, r.Clear(ctx))

	for _, k := range []string{KeyToken, KeyUser} {
		v, err := r.Get(ctx, k)
		require.NoError(t, err)
		require.Nil(t, v)
	}
}

func TestOpen_AppliesMigrations(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "healthdesk.db")
	ctx := context.Background()

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := NewSQLiteRepository(db)
	require.NoError(t, r.Set(ctx, KeyToken, []byte("migrated")))

	v, err := r.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("migrated"), v)
}

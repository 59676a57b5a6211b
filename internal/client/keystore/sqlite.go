package keystore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"healthdesk/internal/client/migrations"
	"healthdesk/internal/dbx"
)

type sqliteRepository struct {
	db dbx.DBTX
}

func (r *sqliteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM keystore WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get keystore[%s]: %w", key, err)
	}
	return value, nil
}

func (r *sqliteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO keystore (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set keystore[%s]: %w", key, err)
	}
	return nil
}

func (r *sqliteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM keystore WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete keystore[%s]: %w", key, err)
	}
	return nil
}

func (r *sqliteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM keystore`)
	if err != nil {
		return fmt.Errorf("failed to clear keystore: %w", err)
	}
	return nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Open opens (creating if needed) the local SQLite database at dsn and
// applies the embedded goose migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

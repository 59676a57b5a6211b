// Package keystore is the durable key/value store backing the session
// record. It plays the role the browser's localStorage plays for the web
// front end: a couple of independently keyed text entries that survive
// process restarts.
package keystore

import (
	"context"

	"healthdesk/internal/dbx"
)

// Well-known keys. The session record is split across two entries that must
// stay mutually consistent, so writers use a transaction.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Repository is a minimal key/value contract. Get returns (nil, nil) for an
// absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// NewSQLiteRepository binds a Repository to the given database handle, which
// may be a *sql.DB or an open transaction.
func NewSQLiteRepository(db dbx.DBTX) Repository {
	return &sqliteRepository{db: db}
}

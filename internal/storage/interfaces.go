// Package storage holds the string-keyed value stores the journal is
// persisted in. Every write replaces the whole value under a key.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type KVStore interface {
	// Returns value stored under key or errorvalues.ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Replaces value under key
	Set(ctx context.Context, key string, value []byte) error
	// Removes key. Removing a missing key is not an error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ExpiringStore is implemented by stores that can drop a value on their
// own once ttl has passed.
type ExpiringStore interface {
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
	SSLMode  string
}

func (pgcfg *PGCfg) ConnString() string {
	sslMode := pgcfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgresql://%s:%s@%s/%s?sslmode=%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB, sslMode)
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	_ "github.com/mattn/go-sqlite3" // sqlite
)

// SqliteStore keeps values in a local sqlite file.
type SqliteStore struct {
	db  *sql.DB
	dsn string
}

func NewSqliteStore(ctx context.Context, dsn string) (*SqliteStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn required")
	}
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0700); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: gets its own database.
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	s := &SqliteStore{db: db, dsn: dsn}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SqliteStore) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA journal_mode = wal;`); err != nil {
		return fmt.Errorf("enable wal: %w", err)
	}
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		expires_at INTEGER
	);`)
	if err != nil {
		return err
	}
	// Files created before values could expire lack the column
	var hasExpiry int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info('kv') WHERE name = 'expires_at';`).Scan(&hasExpiry)
	if err != nil {
		return fmt.Errorf("inspect kv: %w", err)
	}
	if hasExpiry == 0 {
		if _, err := s.db.ExecContext(ctx, `ALTER TABLE kv ADD COLUMN expires_at INTEGER;`); err != nil {
			return fmt.Errorf("add expires_at: %w", err)
		}
	}
	return nil
}

func (s *SqliteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ? AND (expires_at IS NULL OR expires_at > ?);`,
		key, time.Now().Unix()).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorvalues.ErrKeyNotFound
		}
		return nil, fmt.Errorf("getting value: %w", err)
	}
	return value, nil
}

func (s *SqliteStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at, expires_at) VALUES (?, ?, CURRENT_TIMESTAMP, NULL)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at, expires_at = NULL;`, key, value)
	if err != nil {
		return fmt.Errorf("setting value: %w", err)
	}
	return nil
}

// SetWithTTL stores value until ttl passes and purges keys that already expired.
func (s *SqliteStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if value == nil {
		value = []byte{}
	}
	now := time.Now()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE expires_at IS NOT NULL AND expires_at <= ?;`, now.Unix()); err != nil {
		return fmt.Errorf("purging expired values: %w", err)
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at, expires_at) VALUES (?, ?, CURRENT_TIMESTAMP, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at, expires_at = excluded.expires_at;`,
		key, value, now.Add(ttl).Unix())
	if err != nil {
		return fmt.Errorf("setting value: %w", err)
	}
	return nil
}

func (s *SqliteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?;`, key); err != nil {
		return fmt.Errorf("deleting value: %w", err)
	}
	return nil
}

func (s *SqliteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

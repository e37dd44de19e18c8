package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/pressly/goose"
)

type PostgresStore struct {
	conn PgConnection
}

func NewPostgresStore(ctx context.Context, cfg DBConfig) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, errors.New("creating pgxpool error: " + err.Error())
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.New("pinging pgxpool error: " + err.Error())
	}
	return &PostgresStore{
		conn: pool,
	}, nil
}

func NewPostgresStoreWithConn(conn PgConnection) *PostgresStore {
	return &PostgresStore{
		conn: conn,
	}
}

// MigratePostgres applies goose migrations from dir.
func MigratePostgres(cfg DBConfig, dir string) error {
	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		return errors.New("opening migration connection error: " + err.Error())
	}
	defer db.Close()
	if err = goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err = goose.Up(db, dir); err != nil {
		return errors.New("applying migrations error: " + err.Error())
	}
	return nil
}

func (ps *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	row := ps.conn.QueryRow(ctx, `SELECT value FROM kv WHERE key = $1 AND (expires_at IS NULL OR expires_at > NOW());`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrKeyNotFound
		}
		return nil, errors.New("getting value error: " + err.Error())
	}
	return value, nil
}

func (ps *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := ps.conn.Exec(ctx, `INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW(), expires_at = NULL;`, key, value)
	if err != nil {
		return errors.New("setting value error: " + err.Error())
	}
	return nil
}

// SetWithTTL stores value until ttl passes and purges keys that already expired.
func (ps *PostgresStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if _, err := ps.conn.Exec(ctx, `DELETE FROM kv WHERE expires_at <= NOW();`); err != nil {
		return errors.New("purging expired values error: " + err.Error())
	}
	_, err := ps.conn.Exec(ctx, `INSERT INTO kv (key, value, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW(), expires_at = EXCLUDED.expires_at;`,
		key, value, time.Now().Add(ttl).UTC())
	if err != nil {
		return errors.New("setting value error: " + err.Error())
	}
	return nil
}

func (ps *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := ps.conn.Exec(ctx, `DELETE FROM kv WHERE key = $1;`, key)
	if err != nil {
		return errors.New("deleting value error: " + err.Error())
	}
	return nil
}

func (ps *PostgresStore) Close() error {
	ps.conn.Close()
	return nil
}

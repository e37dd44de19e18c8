package storage_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/internal/storage"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPostgresStoreGet(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	store := storage.NewPostgresStoreWithConn(conn)
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT value FROM kv WHERE key = $1 AND (expires_at IS NULL OR expires_at > NOW());`)
	key := "gratuDiary_entries_1"
	t.Run("found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(key).
			WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))
		val, err := store.Get(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, []byte(`[]`), val)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(key).
			WillReturnError(pgx.ErrNoRows)
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, errorvalues.ErrKeyNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(key).
			WillReturnError(errors.New("db error"))
		_, err := store.Get(ctx, key)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, errorvalues.ErrKeyNotFound)
	})
	assert.NoError(t, conn.ExpectationsWereMet())
}

func TestPostgresStoreSet(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	store := storage.NewPostgresStoreWithConn(conn)
	ctx := context.Background()
	query := regexp.QuoteMeta(`INSERT INTO kv (key, value) VALUES ($1, $2)`)
	key := "gratuDiary_users"
	value := []byte(`[{"id":"1"}]`)
	t.Run("upserted", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(key, value).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		assert.NoError(t, store.Set(ctx, key, value))
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(key, value).
			WillReturnError(errors.New("db error"))
		assert.Error(t, store.Set(ctx, key, value))
	})
	assert.NoError(t, conn.ExpectationsWereMet())
}

func TestPostgresStoreSetWithTTL(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	store := storage.NewPostgresStoreWithConn(conn)
	ctx := context.Background()
	purge := regexp.QuoteMeta(`DELETE FROM kv WHERE expires_at <= NOW();`)
	upsert := regexp.QuoteMeta(`INSERT INTO kv (key, value, expires_at) VALUES ($1, $2, $3)`)
	key := "gratuDiary_currentUser_abc"
	value := []byte(`{"id":"u1"}`)
	t.Run("purged and upserted", func(t *testing.T) {
		conn.ExpectExec(purge).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))
		conn.ExpectExec(upsert).
			WithArgs(key, value, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		assert.NoError(t, store.SetWithTTL(ctx, key, value, time.Hour))
	})
	t.Run("purge error", func(t *testing.T) {
		conn.ExpectExec(purge).
			WillReturnError(errors.New("db error"))
		assert.Error(t, store.SetWithTTL(ctx, key, value, time.Hour))
	})
	t.Run("upsert error", func(t *testing.T) {
		conn.ExpectExec(purge).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		conn.ExpectExec(upsert).
			WithArgs(key, value, pgxmock.AnyArg()).
			WillReturnError(errors.New("db error"))
		assert.Error(t, store.SetWithTTL(ctx, key, value, time.Hour))
	})
	assert.NoError(t, conn.ExpectationsWereMet())
}

func TestPostgresStoreDelete(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	store := storage.NewPostgresStoreWithConn(conn)
	ctx := context.Background()
	query := regexp.QuoteMeta(`DELETE FROM kv WHERE key = $1;`)
	key := "gratuDiary_currentUser"
	t.Run("deleted", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(key).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		assert.NoError(t, store.Delete(ctx, key))
	})
	t.Run("missing key is fine", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(key).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		assert.NoError(t, store.Delete(ctx, key))
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(key).
			WillReturnError(errors.New("db error"))
		assert.Error(t, store.Delete(ctx, key))
	})
	assert.NoError(t, conn.ExpectationsWereMet())
}

type testPGConfig struct {
	connStr string
}

func (cfg *testPGConfig) ConnString() string {
	return cfg.connStr
}

func TestPostgresStoreIntegrational(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	cfg := setupKVTestDB(t)
	require.NoError(t, storage.MigratePostgres(cfg, "../../migrations"))
	store, err := storage.NewPostgresStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()
	runKVStoreSuite(t, store)
	runExpiringSuite(t, store)
}

func setupKVTestDB(t *testing.T) *testPGConfig {
	container, err := postgres.Run(context.Background(), "postgres:17",
		postgres.WithUsername("test_user"),
		postgres.WithDatabase("gratudiary"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatal("error running test container: " + err.Error())
	}
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})
	connStr, err := container.ConnectionString(context.Background(), "sslmode=disable")
	if err != nil {
		t.Fatal(err)
	}
	return &testPGConfig{
		connStr: connStr,
	}
}

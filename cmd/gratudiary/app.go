package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/internal/insights"
	"github.com/limbo/gratudiary/internal/repository"
	"github.com/limbo/gratudiary/internal/service"
	"github.com/limbo/gratudiary/internal/session"
	"github.com/limbo/gratudiary/internal/stats"
	"github.com/limbo/gratudiary/internal/storage"
	"github.com/limbo/gratudiary/pkg/config"
	"github.com/limbo/gratudiary/pkg/entity"
)

var errNotLoggedIn = errors.New("not logged in, run `gratudiary login` first")

// app holds what every command needs. It is filled in by open before
// any command runs.
type app struct {
	cfg *config.Config

	driver    string
	dbPath    string
	ephemeral bool

	store   storage.KVStore
	engine  *stats.Engine
	users   service.UserServiceI
	journal service.JournalServiceI
	session service.Session
}

func newApp(cfg *config.Config) *app {
	return &app{cfg: cfg}
}

func defaultDBPath(cfg *config.Config) string {
	if p := cfg.GetString("GRATUDIARY_DB"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "gratudiary.db")
	}
	return filepath.Join(home, ".gratudiary", "gratudiary.db")
}

func (a *app) open(ctx context.Context) error {
	opts := storage.Options{
		Driver:     a.driver,
		SqlitePath: a.dbPath,
		Postgres: &storage.PGCfg{
			Address:  a.cfg.GetString("POSTGRES_DB_ADDRESS"),
			Username: a.cfg.GetString("POSTGRES_USER"),
			Password: a.cfg.GetString("POSTGRES_PASSWORD"),
			DB:       a.cfg.GetString("POSTGRES_DB"),
			SSLMode:  a.cfg.GetString("POSTGRES_SSLMODE"),
		},
		MigrationsDir: a.cfg.GetString("MIGRATIONS_DIR"),
		RedisURI:      a.cfg.GetString("REDIS_URI"),
		MongoURI:      a.cfg.GetString("MONGODB_URI"),
		MongoDB:       a.cfg.GetStringOr("MONGODB_DB", "gratudiary"),
	}
	if a.ephemeral {
		opts.Driver = storage.DriverMemory
	}
	store, err := storage.Open(ctx, opts)
	if err != nil {
		return err
	}
	a.store = store

	hasher, err := service.NewPasswordHasher(a.cfg.GetString("PASSWORD_HASHER"))
	if err != nil {
		return err
	}
	a.engine = stats.NewEngine(time.Local, time.Now)
	provider, err := insights.NewDefault(ctx,
		a.cfg.GetString("GEMINI_API_KEY"),
		a.cfg.GetStringOr("GEMINI_MODEL", insights.DefaultModel),
		store,
		a.cfg.GetDuration("INSIGHTS_CACHE_TTL", 6*time.Hour),
	)
	if err != nil {
		slog.Warn("insights are disabled", slog.String("error", err.Error()))
	}
	a.users = service.NewUserService(repository.NewCredentialsRepo(store), hasher, a.cfg.GetDuration("AUTH_DELAY", 0))
	a.journal = service.NewJournalService(repository.NewEntriesRepo(store), a.engine, provider)
	a.session = session.NewManager(store, 0).Open("")
	return nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		slog.Error("closing storage error", slog.String("error", err.Error()))
	}
	a.store = nil
}

func (a *app) currentUser(ctx context.Context) (*entity.User, error) {
	user, err := a.users.Current(ctx, a.session)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoSession) {
			return nil, errNotLoggedIn
		}
		return nil, err
	}
	return user, nil
}

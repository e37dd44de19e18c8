// @title Gratitude journal API
// @description API for gratitude journal app "GratuDiary"
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/limbo/gratudiary/internal/api"
	"github.com/limbo/gratudiary/internal/insights"
	"github.com/limbo/gratudiary/internal/repository"
	"github.com/limbo/gratudiary/internal/service"
	"github.com/limbo/gratudiary/internal/session"
	"github.com/limbo/gratudiary/internal/stats"
	"github.com/limbo/gratudiary/internal/storage"
	"github.com/limbo/gratudiary/pkg/cleanup"
	"github.com/limbo/gratudiary/pkg/config"
	jwtservice "github.com/limbo/gratudiary/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	setupLogger(cfg)
	defer cleanup.CleanUp()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := storage.Open(ctx, storageOptions(cfg))
	cancel()
	if err != nil {
		log.Fatal("opening storage error: ", err)
	}
	cleanup.Register(&cleanup.Job{Name: "closing storage", F: store.Close})

	hasher, err := service.NewPasswordHasher(cfg.GetString("PASSWORD_HASHER"))
	if err != nil {
		log.Fatal(err)
	}
	loc := time.Local
	if tz := cfg.GetString("JOURNAL_TIMEZONE"); tz != "" {
		if loc, err = time.LoadLocation(tz); err != nil {
			log.Fatal("loading timezone error: ", err)
		}
	}

	userService := service.NewUserService(
		repository.NewCredentialsRepo(store),
		hasher,
		cfg.GetDuration("AUTH_DELAY", 500*time.Millisecond),
	)
	journalService := service.NewJournalService(
		repository.NewEntriesRepo(store),
		stats.NewEngine(loc, time.Now),
		summaryProvider(cfg, store),
	)
	limiter := api.NewLimiterStore(api.LimiterOptions{
		PerMinute:       cfg.GetInt("AUTH_RATE_PER_MINUTE", 10),
		Burst:           cfg.GetInt("AUTH_RATE_BURST", 5),
		CleanupInterval: cfg.GetDuration("AUTH_RATE_CLEANUP_INTERVAL", time.Minute),
		IdleTTL:         cfg.GetDuration("AUTH_RATE_IDLE_TTL", 10*time.Minute),
	})
	tokenTTL := cfg.GetDuration("TOKEN_TTL", jwtservice.DefaultTokenTTL)
	serv := api.New(&api.ServicesList{
		UserService:    userService,
		JournalService: journalService,
		Sessions:       session.NewManager(store, tokenTTL),
		JwtService:     jwtservice.New(cfg.GetString("JWT_SECRET"), tokenTTL),
		Limiter:        limiter,
		AllowedOrigins: cfg.GetList("CORS_ALLOWED_ORIGINS", nil),
	})
	err = serv.Run(cfg.GetStringOr("API_ADDRESS", ":8080"))
	if err != nil {
		slog.Error("server error", slog.String("error", err.Error()))
	}
}

func storageOptions(cfg *config.Config) storage.Options {
	return storage.Options{
		Driver:     cfg.GetStringOr("STORAGE_DRIVER", storage.DriverSqlite),
		SqlitePath: cfg.GetStringOr("SQLITE_PATH", "./data/gratudiary.db"),
		Postgres: &storage.PGCfg{
			Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
			Username: cfg.GetString("POSTGRES_USER"),
			Password: cfg.GetString("POSTGRES_PASSWORD"),
			DB:       cfg.GetString("POSTGRES_DB"),
			SSLMode:  cfg.GetString("POSTGRES_SSLMODE"),
		},
		MigrationsDir: cfg.GetStringOr("MIGRATIONS_DIR", "./migrations"),
		RedisURI:      cfg.GetString("REDIS_URI"),
		MongoURI:      cfg.GetString("MONGODB_URI"),
		MongoDB:       cfg.GetStringOr("MONGODB_DB", "gratudiary"),
	}
}

func summaryProvider(cfg *config.Config, store storage.KVStore) insights.SummaryProvider {
	provider, err := insights.NewDefault(
		context.Background(),
		cfg.GetString("GEMINI_API_KEY"),
		cfg.GetStringOr("GEMINI_MODEL", insights.DefaultModel),
		store,
		cfg.GetDuration("INSIGHTS_CACHE_TTL", 6*time.Hour),
	)
	if err != nil {
		slog.Error("creating insights provider error, insights are disabled", slog.String("error", err.Error()))
	}
	if _, ok := provider.(insights.Unavailable); ok {
		slog.Info("insights are disabled")
	}
	return provider
}

func setupLogger(cfg *config.Config) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.GetStringOr("LOG_LEVEL", "info"))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if strings.EqualFold(cfg.GetString("LOG_FORMAT"), "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

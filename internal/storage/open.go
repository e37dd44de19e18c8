package storage

import (
	"context"
	"fmt"
	"strings"
)

const (
	DriverMemory   = "memory"
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
)

type Options struct {
	Driver        string
	SqlitePath    string
	Postgres      DBConfig
	MigrationsDir string
	RedisURI      string
	MongoURI      string
	MongoDB       string
}

// Open builds the store selected by opts.Driver.
func Open(ctx context.Context, opts Options) (KVStore, error) {
	switch strings.ToLower(opts.Driver) {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSqlite, "":
		return NewSqliteStore(ctx, opts.SqlitePath)
	case DriverPostgres:
		if opts.Postgres == nil {
			return nil, fmt.Errorf("postgres config required")
		}
		if opts.MigrationsDir != "" {
			if err := MigratePostgres(opts.Postgres, opts.MigrationsDir); err != nil {
				return nil, err
			}
		}
		return NewPostgresStore(ctx, opts.Postgres)
	case DriverRedis:
		return NewRedisStore(ctx, opts.RedisURI)
	case DriverMongo:
		return NewMongoStore(ctx, opts.MongoURI, opts.MongoDB)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

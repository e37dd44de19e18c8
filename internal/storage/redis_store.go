package storage

import (
	"context"
	"errors"
	"time"

	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "gratudiary:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, redisURI string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURI)
	if err != nil {
		return nil, err
	}
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return NewRedisStoreWithClient(client), nil
}

func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errorvalues.ErrKeyNotFound
		}
		return nil, errors.New("redis get error: " + err.Error())
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return errors.New("redis set error: " + err.Error())
	}
	return nil
}

func (s *RedisStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, ttl).Err(); err != nil {
		return errors.New("redis set error: " + err.Error())
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return errors.New("redis del error: " + err.Error())
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

package store

import (
	"context"
	"errors"

	"github.com/SemBeacon/shortener/internal/shortener"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis implementation of shortener.KV. Records carry no
// expiry; they persist until removed out of band.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed key-value store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", shortener.ErrNotFound
		}

		return "", err
	}

	return value, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisStore) SetNX(ctx context.Context, key, value string) (bool, error) {
	return r.client.SetNX(ctx, key, value, 0).Result()
}

// Ping checks Redis connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Shutdown closes the underlying client.
func (r *RedisStore) Shutdown() error {
	return r.client.Close()
}

// Compile-time check.
var _ shortener.KV = (*RedisStore)(nil)

package adapter

import (
	"context"
	"errors"

	"class-companion/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStoreAdapter implements domain.Store using a Redis client.
type RedisStoreAdapter struct {
	client redis.Cmdable
}

// NewRedisStoreAdapter expects a connected client.
func NewRedisStoreAdapter(client redis.Cmdable) domain.Store {
	return &RedisStoreAdapter{client: client}
}

// Get translates redis.Nil to domain.ErrKeyNotFound.
func (r *RedisStoreAdapter) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrKeyNotFound
		}
		return "", err
	}
	return val, nil
}

// Set stores value without expiry.
func (r *RedisStoreAdapter) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisStoreAdapter) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Ping checks the health of the Redis server.
func (r *RedisStoreAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fridgechef/backend/internal/domain"
	"github.com/go-redis/redis/v8"
)

// RedisCache stores JSON-encoded values in redis
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisCache connects to redis using a URL such as redis://localhost:6379/0
// and verifies the connection with a ping.
func NewRedisCache(ctx context.Context, url, keyPrefix string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}

	return &RedisCache{client: client, keyPrefix: keyPrefix}, nil
}

func (c *RedisCache) key(key string) string {
	return c.keyPrefix + key
}

// Get retrieves a value from redis and decodes it into dest
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return json.Unmarshal(data, dest)
}

// Set stores a value in redis with TTL. A non-positive TTL keeps the key forever.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Delete removes a value from redis
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Exists checks if a key exists in redis
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return n > 0, nil
}

// Close releases the redis connection pool
func (c *RedisCache) Close() error {
	return c.client.Close()
}

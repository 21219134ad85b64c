package cache

import (
	"context"
	"time"

	rediscommon "github.com/apicus/roi-engine/common/redis"
)

// RedisCache backs the Cache interface with Redis so multiple API
// instances share one pricing-lookup cache.
type RedisCache struct {
	client *rediscommon.Client
}

// NewRedisCache creates a Redis-backed cache
func NewRedisCache(client *rediscommon.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get retrieves a value from cache
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, found, err := c.client.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	return []byte(val), true, nil
}

// Set stores a value in cache with TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.SetWithExpiry(ctx, key, string(value), ttl)
}

// Delete removes a value from cache
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Delete(ctx, key)
}

// Close closes the cache (connection lifetime is owned by the container)
func (c *RedisCache) Close() error {
	return nil
}

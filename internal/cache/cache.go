// Package cache provides a small Redis-backed JSON cache for hot catalog
// reads. A nil *Cache is valid and disables caching entirely, so callers
// never need to branch on whether Redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache wraps a Redis client with JSON marshaling.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection. An empty addr returns a
// nil cache, which every method treats as a no-op.
func New(addr, password string) (*Cache, error) {
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &Cache{client: client}, nil
}

// Get unmarshals the cached value at key into dest. Returns false on a miss
// or any cache error; cache errors are logged, never propagated.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("cache: get %q: %v", key, err)
		return false
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		log.Printf("cache: unmarshal %q: %v", key, err)
		return false
	}
	return true
}

// Set stores value at key for ttl. Failures are logged and swallowed.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: marshal %q: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("cache: set %q: %v", key, err)
	}
}

// Delete drops the given keys. Failures are logged and swallowed.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache: delete %v: %v", keys, err)
	}
}

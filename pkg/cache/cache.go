// Package cache stores JSON values in Redis. With no client installed every
// call is a miss or a no-op, so Redis stays optional for the service.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/sudoku/config"
	"github.com/shashiranjanraj/sudoku/pkg/metrics"
)

// RDB is the shared client; nil disables caching.
var RDB *redis.Client

const connectTimeout = 3 * time.Second

// Connect dials REDIS_ADDR and installs the client after a successful
// ping. On failure RDB is left nil and the error is returned for the
// caller to log.
func Connect() error {
	client := redis.NewClient(&redis.Options{
		Addr:        config.RedisAddr(),
		Password:    config.RedisPassword(),
		DialTimeout: connectTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		RDB = nil
		return fmt.Errorf("cache: redis ping %s: %w", config.RedisAddr(), err)
	}

	RDB = client
	return nil
}

// Use installs an already-configured client. nil disables the cache.
func Use(client *redis.Client) {
	RDB = client
}

func Close() error {
	if RDB == nil {
		return nil
	}
	err := RDB.Close()
	RDB = nil
	return err
}

// Get decodes the value under key into dest and reports whether it was
// found. Redis errors and undecodable values count as misses.
func Get(ctx context.Context, key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	raw, err := RDB.Get(ctx, key).Bytes()
	hit := err == nil && json.Unmarshal(raw, dest) == nil
	metrics.CacheLookup(hit)
	return hit
}

// Set stores value as JSON under key for ttl.
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return RDB.Set(ctx, key, raw, ttl).Err()
}

func Del(ctx context.Context, keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(ctx, keys...).Err()
}

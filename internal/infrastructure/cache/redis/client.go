// Package redis provides the Redis cache implementation.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unifiedui/chat-relay/internal/core/cache"
)

// scanBatch is the COUNT hint passed to SCAN when deleting by pattern.
const scanBatch = 100

// Config holds Redis connection configuration.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// incrementCappedScript increments KEYS[1] unless it already holds ARGV[1] or more.
// A counter created by the script gets ARGV[2] seconds of expiry; an existing
// counter keeps its expiry because INCR does not touch it.
var incrementCappedScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '-1')
local ceiling = tonumber(ARGV[1])
if current >= ceiling then
	return current
end
local value = redis.call('INCR', KEYS[1])
if current < 0 then
	redis.call('EXPIRE', KEYS[1], ARGV[2])
end
return value
`)

// Client implements cache.Client on top of go-redis.
type Client struct {
	rdb *redis.Client
}

var _ cache.Client = (*Client)(nil)

// NewClient connects to Redis and verifies the connection.
func NewClient(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Get returns the raw value of key, or nil if it does not exist.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

// SetNX stores value only if key is absent.
func (c *Client) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	stored, err := c.rdb.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set key %s if absent: %w", key, err)
	}
	return stored, nil
}

// IncrementCapped atomically increments a counter without passing ceiling.
func (c *Client) IncrementCapped(ctx context.Context, key string, ceiling int64, ttl time.Duration) (int64, error) {
	seconds := int64(ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	value, err := incrementCappedScript.Run(ctx, c.rdb, []string{key}, ceiling, seconds).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to increment key %s: %w", key, err)
	}
	return value, nil
}

// TTL returns the remaining time to live of key.
func (c *Client) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := c.rdb.TTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get ttl of key %s: %w", key, err)
	}
	return ttl, nil
}

// Delete removes key.
func (c *Client) Delete(ctx context.Context, key string) (bool, error) {
	removed, err := c.rdb.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return removed > 0, nil
}

// DeletePattern removes every key matching pattern.
// Keys are collected before deleting so removals do not shift the SCAN cursor.
func (c *Client) DeletePattern(ctx context.Context, pattern string) (int64, error) {
	var keys []string

	iter := c.rdb.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan keys with pattern %s: %w", pattern, err)
	}

	var deleted int64
	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		removed, err := c.rdb.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to delete keys: %w", err)
		}
		deleted += removed
	}

	return deleted, nil
}

// Ping checks if the Redis connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	if err := c.rdb.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection: %w", err)
	}
	return nil
}

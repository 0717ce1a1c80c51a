// Package cache defines the key-value store behind the visitor quotas.
package cache

import (
	"context"
	"time"
)

// Type represents the type of cache backend.
type Type string

// TypeRedis represents a Redis cache.
const TypeRedis Type = "redis"

// Client is the shared key-value store. Counters written through it must be
// safe against concurrent writers, so read-modify-write goes through
// SetNX and IncrementCapped rather than Get followed by a write.
type Client interface {
	// Get returns the raw value of key, or nil if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// SetNX stores value with a ttl only if key does not exist yet.
	// Returns true if the value was stored.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// IncrementCapped atomically increments an integer counter unless it already
	// reached ceiling. The ttl is applied only when the counter is created by this call.
	// Returns the counter value after the operation.
	IncrementCapped(ctx context.Context, key string, ceiling int64, ttl time.Duration) (int64, error)

	// TTL returns the remaining time to live of a key.
	// Returns a negative duration if the key does not exist or has no expiry.
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Delete removes a key. Returns false if it did not exist.
	Delete(ctx context.Context, key string) (bool, error)

	// DeletePattern removes all keys matching a glob pattern and returns how many were removed.
	DeletePattern(ctx context.Context, pattern string) (int64, error)

	// Ping checks if the connection is alive.
	Ping(ctx context.Context) error

	// Close releases the connection.
	Close() error
}

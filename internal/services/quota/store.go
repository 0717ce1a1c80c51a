// Package quota tracks how many messages a visitor sent in the current window.
package quota

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/unifiedui/chat-relay/internal/core/cache"
	"github.com/unifiedui/chat-relay/internal/domain/models"
)

const (
	// DefaultLimit is the number of messages allowed per window.
	DefaultLimit = 5

	// DefaultWindow is how long a window lasts after it is created.
	DefaultWindow = 24 * time.Hour

	keyPrefix = "chat_limit:"
)

// Store is the server-side authority on visitor quotas.
type Store interface {
	// Check reconciles the server copy with the client fallback and returns the current record.
	// fallback is nil when the client presented no usage cookie.
	Check(ctx context.Context, identity string, fallback *int) (*CheckResult, error)

	// Increment counts one more message for identity.
	Increment(ctx context.Context, identity string) (*models.QuotaRecord, error)

	// Reset forgets the quota of one identity.
	Reset(ctx context.Context, identity string) (bool, error)

	// ResetAll forgets every quota and returns how many were removed.
	ResetAll(ctx context.Context) (int64, error)

	// Limit returns the configured cap.
	Limit() int
}

// CheckResult is the outcome of a reconciled read.
type CheckResult struct {
	Record *models.QuotaRecord
	// SyncClient is set when the client copy disagrees with the server and must be rewritten.
	SyncClient bool
}

// Allowed reports whether another message may be sent.
func (r *CheckResult) Allowed() bool {
	return r.Record.Allowed()
}

// Config holds the configuration for the quota store.
type Config struct {
	CacheClient cache.Client
	Limit       int
	Window      time.Duration
	// FailOpen treats an unreachable cache as a zero count instead of an error.
	FailOpen bool
	// Now overrides the clock in tests.
	Now func() time.Time
}

// store implements the Store interface on top of the cache.
type store struct {
	cacheClient cache.Client
	limit       int
	window      time.Duration
	failOpen    bool
	now         func() time.Time
}

// NewStore creates a new quota store.
func NewStore(cfg *Config) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.CacheClient == nil {
		return nil, fmt.Errorf("cache client is required")
	}

	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	window := cfg.Window
	if window <= 0 {
		window = DefaultWindow
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &store{
		cacheClient: cfg.CacheClient,
		limit:       limit,
		window:      window,
		failOpen:    cfg.FailOpen,
		now:         now,
	}, nil
}

// Limit returns the configured cap.
func (s *store) Limit() int {
	return s.limit
}

// Check reconciles the server copy with the client fallback.
func (s *store) Check(ctx context.Context, identity string, fallback *int) (*CheckResult, error) {
	key := BuildKey(identity)

	count, found, err := s.read(ctx, key)
	if err != nil {
		return s.degraded(key, fallback, err)
	}

	if !found && fallback != nil {
		seed := s.clamp(*fallback)
		stored, err := s.cacheClient.SetNX(ctx, key, []byte(strconv.Itoa(seed)), s.window)
		if err != nil {
			return s.degraded(key, fallback, err)
		}
		if stored {
			log.Debug().Str("quota_key", key).Int("count", seed).Msg("quota reseeded from client cookie")
			return &CheckResult{Record: s.record(key, seed, s.now().Add(s.window))}, nil
		}

		// Another request seeded the key first; its value is authoritative.
		count, found, err = s.read(ctx, key)
		if err != nil {
			return s.degraded(key, fallback, err)
		}
	}

	if !found {
		return &CheckResult{Record: s.record(key, 0, time.Time{})}, nil
	}

	record := s.record(key, count, s.expiry(ctx, key))
	return &CheckResult{
		Record:     record,
		SyncClient: fallback == nil || *fallback != count,
	}, nil
}

// Increment counts one more message for identity without passing the cap.
func (s *store) Increment(ctx context.Context, identity string) (*models.QuotaRecord, error) {
	key := BuildKey(identity)

	count, err := s.cacheClient.IncrementCapped(ctx, key, int64(s.limit), s.window)
	if err != nil {
		return nil, fmt.Errorf("failed to increment quota: %w", err)
	}

	return s.record(key, int(count), s.expiry(ctx, key)), nil
}

// Reset forgets the quota of one identity.
func (s *store) Reset(ctx context.Context, identity string) (bool, error) {
	deleted, err := s.cacheClient.Delete(ctx, BuildKey(identity))
	if err != nil {
		return false, fmt.Errorf("failed to reset quota: %w", err)
	}
	return deleted, nil
}

// ResetAll forgets every quota.
func (s *store) ResetAll(ctx context.Context) (int64, error) {
	deleted, err := s.cacheClient.DeletePattern(ctx, keyPrefix+"*")
	if err != nil {
		return deleted, fmt.Errorf("failed to reset quotas: %w", err)
	}
	return deleted, nil
}

// read returns the stored count and whether a record exists.
func (s *store) read(ctx context.Context, key string) (int, bool, error) {
	raw, err := s.cacheClient.Get(ctx, key)
	if err != nil {
		return 0, false, err
	}
	if raw == nil {
		return 0, false, nil
	}

	count, err := strconv.Atoi(string(raw))
	if err != nil {
		// An unreadable counter is treated as absent and gets reseeded.
		log.Warn().Str("quota_key", key).Str("value", string(raw)).Msg("discarding malformed quota counter")
		_, _ = s.cacheClient.Delete(ctx, key)
		return 0, false, nil
	}
	return s.clamp(count), true, nil
}

// degraded applies the unavailability policy.
func (s *store) degraded(key string, fallback *int, err error) (*CheckResult, error) {
	if !s.failOpen {
		return nil, fmt.Errorf("quota store unavailable: %w", err)
	}

	log.Warn().Err(err).Str("quota_key", key).Msg("quota store unavailable, failing open")
	record := s.record(key, 0, time.Time{})
	record.Degraded = true
	return &CheckResult{Record: record}, nil
}

// expiry resolves the window end of an existing key; zero if unknown.
func (s *store) expiry(ctx context.Context, key string) time.Time {
	ttl, err := s.cacheClient.TTL(ctx, key)
	if err != nil || ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(ttl)
}

func (s *store) record(key string, count int, expiresAt time.Time) *models.QuotaRecord {
	return &models.QuotaRecord{
		IdentityKey: key,
		Count:       count,
		Limit:       s.limit,
		ExpiresAt:   expiresAt,
	}
}

func (s *store) clamp(count int) int {
	if count < 0 {
		return 0
	}
	if count > s.limit {
		return s.limit
	}
	return count
}

// BuildKey derives the cache key of a visitor identity.
func BuildKey(identity string) string {
	sum := sha256.Sum256([]byte(identity))
	return keyPrefix + hex.EncodeToString(sum[:])
}

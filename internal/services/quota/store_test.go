package quota_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	rediscache "github.com/unifiedui/chat-relay/internal/infrastructure/cache/redis"
	"github.com/unifiedui/chat-relay/internal/services/quota"
	"github.com/unifiedui/chat-relay/internal/testutil/mocks"
)

const visitor = "203.0.113.7"

func intPtr(v int) *int { return &v }

func setupStore(t *testing.T, failOpen bool) (*miniredis.Miniredis, quota.Store) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := rediscache.NewClient(rediscache.Config{
		Host: mr.Host(),
		Port: mr.Port(),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	store, err := quota.NewStore(&quota.Config{
		CacheClient: client,
		Limit:       5,
		Window:      24 * time.Hour,
		FailOpen:    failOpen,
	})
	require.NoError(t, err)

	return mr, store
}

func TestNewStore_Validation(t *testing.T) {
	_, err := quota.NewStore(nil)
	assert.EqualError(t, err, "config is required")

	_, err = quota.NewStore(&quota.Config{})
	assert.EqualError(t, err, "cache client is required")

	store, err := quota.NewStore(&quota.Config{CacheClient: mocks.NewMockCacheClient()})
	require.NoError(t, err)
	assert.Equal(t, quota.DefaultLimit, store.Limit())
}

func TestBuildKey(t *testing.T) {
	key := quota.BuildKey(visitor)

	assert.Equal(t, key, quota.BuildKey(visitor))
	assert.NotEqual(t, key, quota.BuildKey("198.51.100.1"))
	assert.NotContains(t, key, visitor)
	assert.Len(t, key, len("chat_limit:")+64)
}

func TestCheck_NewVisitor(t *testing.T) {
	mr, store := setupStore(t, true)

	result, err := store.Check(context.Background(), visitor, nil)
	require.NoError(t, err)

	assert.True(t, result.Allowed())
	assert.Equal(t, 0, result.Record.Count)
	assert.Equal(t, 5, result.Record.Remaining())
	assert.False(t, result.SyncClient)
	assert.False(t, mr.Exists(quota.BuildKey(visitor)))
}

func TestCheck_SixthMessageRejected(t *testing.T) {
	_, store := setupStore(t, true)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		result, err := store.Check(ctx, visitor, nil)
		require.NoError(t, err)
		require.True(t, result.Allowed(), "message %d should be allowed", i)

		record, err := store.Increment(ctx, visitor)
		require.NoError(t, err)
		assert.Equal(t, i, record.Count)
	}

	result, err := store.Check(ctx, visitor, nil)
	require.NoError(t, err)
	assert.False(t, result.Allowed())
	assert.Equal(t, 0, result.Record.Remaining())
}

func TestCheck_ReseedFromFallback(t *testing.T) {
	mr, store := setupStore(t, true)
	ctx := context.Background()

	result, err := store.Check(ctx, visitor, intPtr(3))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Record.Count)
	assert.False(t, result.SyncClient)
	assert.True(t, result.Allowed())

	value, err := mr.Get(quota.BuildKey(visitor))
	require.NoError(t, err)
	assert.Equal(t, "3", value)
	assert.Equal(t, 24*time.Hour, mr.TTL(quota.BuildKey(visitor)))
}

func TestCheck_ReseedClampsFallback(t *testing.T) {
	_, store := setupStore(t, true)
	ctx := context.Background()

	result, err := store.Check(ctx, visitor, intPtr(42))
	require.NoError(t, err)
	assert.Equal(t, 5, result.Record.Count)
	assert.False(t, result.Allowed())

	other, err := store.Check(ctx, "198.51.100.1", intPtr(-3))
	require.NoError(t, err)
	assert.Equal(t, 0, other.Record.Count)
}

func TestCheck_ServerWinsOverFallback(t *testing.T) {
	mr, store := setupStore(t, true)
	ctx := context.Background()

	require.NoError(t, mr.Set(quota.BuildKey(visitor), "4"))

	result, err := store.Check(ctx, visitor, intPtr(1))
	require.NoError(t, err)
	assert.Equal(t, 4, result.Record.Count)
	assert.True(t, result.SyncClient)

	result, err = store.Check(ctx, visitor, intPtr(4))
	require.NoError(t, err)
	assert.False(t, result.SyncClient)

	result, err = store.Check(ctx, visitor, nil)
	require.NoError(t, err)
	assert.True(t, result.SyncClient)
}

func TestCheck_MalformedCounterIsReseeded(t *testing.T) {
	mr, store := setupStore(t, true)
	key := quota.BuildKey(visitor)
	require.NoError(t, mr.Set(key, "not-a-number"))

	result, err := store.Check(context.Background(), visitor, intPtr(2))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Record.Count)

	value, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "2", value)
}

func TestIncrement_StopsAtCap(t *testing.T) {
	mr, store := setupStore(t, true)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		record, err := store.Increment(ctx, visitor)
		require.NoError(t, err)
		assert.LessOrEqual(t, record.Count, 5)
	}

	value, err := mr.Get(quota.BuildKey(visitor))
	require.NoError(t, err)
	assert.Equal(t, "5", value)
}

func TestIncrement_StartsWindow(t *testing.T) {
	mr, store := setupStore(t, true)
	ctx := context.Background()

	record, err := store.Increment(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, 1, record.Count)
	assert.False(t, record.ExpiresAt.IsZero())
	assert.Equal(t, 24*time.Hour, mr.TTL(quota.BuildKey(visitor)))

	mr.FastForward(time.Hour)
	_, err = store.Increment(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, 23*time.Hour, mr.TTL(quota.BuildKey(visitor)))
}

func TestCheck_WindowExpiry(t *testing.T) {
	mr, store := setupStore(t, true)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Increment(ctx, visitor)
		require.NoError(t, err)
	}

	result, err := store.Check(ctx, visitor, nil)
	require.NoError(t, err)
	require.False(t, result.Allowed())

	mr.FastForward(24*time.Hour + time.Second)

	result, err = store.Check(ctx, visitor, nil)
	require.NoError(t, err)
	assert.True(t, result.Allowed())
	assert.Equal(t, 0, result.Record.Count)
}

func TestReset(t *testing.T) {
	mr, store := setupStore(t, true)
	ctx := context.Background()

	_, err := store.Increment(ctx, visitor)
	require.NoError(t, err)
	_, err = store.Increment(ctx, "198.51.100.1")
	require.NoError(t, err)

	deleted, err := store.Reset(ctx, visitor)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, mr.Exists(quota.BuildKey(visitor)))
	assert.True(t, mr.Exists(quota.BuildKey("198.51.100.1")))

	require.NoError(t, mr.Set("unrelated", "keep"))

	removed, err := store.ResetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.True(t, mr.Exists("unrelated"))
}

func TestCheck_StoreUnavailable(t *testing.T) {
	unavailable := errors.New("connection refused")

	t.Run("fail open", func(t *testing.T) {
		cacheClient := mocks.NewMockCacheClient()
		cacheClient.On("Get", mock.Anything, quota.BuildKey(visitor)).Return(nil, unavailable)

		store, err := quota.NewStore(&quota.Config{CacheClient: cacheClient, FailOpen: true})
		require.NoError(t, err)

		result, err := store.Check(context.Background(), visitor, intPtr(5))
		require.NoError(t, err)
		assert.True(t, result.Allowed())
		assert.True(t, result.Record.Degraded)
		assert.Equal(t, 0, result.Record.Count)
		cacheClient.AssertExpectations(t)
	})

	t.Run("fail closed", func(t *testing.T) {
		cacheClient := mocks.NewMockCacheClient()
		cacheClient.On("Get", mock.Anything, quota.BuildKey(visitor)).Return(nil, unavailable)

		store, err := quota.NewStore(&quota.Config{CacheClient: cacheClient, FailOpen: false})
		require.NoError(t, err)

		result, err := store.Check(context.Background(), visitor, nil)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, unavailable)
		assert.Contains(t, err.Error(), "quota store unavailable")
	})

	t.Run("lost seed race re-reads", func(t *testing.T) {
		key := quota.BuildKey(visitor)
		cacheClient := mocks.NewMockCacheClient()
		cacheClient.On("Get", mock.Anything, key).Return(nil, nil).Once()
		cacheClient.On("SetNX", mock.Anything, key, []byte("1"), quota.DefaultWindow).Return(false, nil)
		cacheClient.On("Get", mock.Anything, key).Return([]byte("3"), nil).Once()
		cacheClient.On("TTL", mock.Anything, key).Return(time.Hour, nil)

		store, err := quota.NewStore(&quota.Config{CacheClient: cacheClient})
		require.NoError(t, err)

		result, err := store.Check(context.Background(), visitor, intPtr(1))
		require.NoError(t, err)
		assert.Equal(t, 3, result.Record.Count)
		assert.True(t, result.SyncClient)
		cacheClient.AssertExpectations(t)
	})
}

func TestIncrement_Concurrent(t *testing.T) {
	tests := []struct {
		name      string
		callers   int
		wantCount int
	}{
		{name: "below cap", callers: 3, wantCount: 3},
		{name: "at cap", callers: 5, wantCount: 5},
		{name: "past cap", callers: 20, wantCount: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, store := setupStore(t, false)
			ctx := context.Background()

			var (
				wg     sync.WaitGroup
				mu     sync.Mutex
				counts []int
				errs   []error
			)
			for i := 0; i < tt.callers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					record, err := store.Increment(ctx, visitor)

					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						errs = append(errs, err)
						return
					}
					counts = append(counts, record.Count)
				}()
			}
			wg.Wait()

			require.Empty(t, errs)

			result, err := store.Check(ctx, visitor, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, result.Record.Count)

			// Every increment below the cap observed a distinct count.
			sort.Ints(counts)
			for i := 0; i < tt.wantCount; i++ {
				assert.Equal(t, i+1, counts[i])
			}
			for _, count := range counts[tt.wantCount:] {
				assert.Equal(t, tt.wantCount, count)
			}
		})
	}
}

package handlers_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/chat-relay/internal/api/handlers"
	rediscache "github.com/unifiedui/chat-relay/internal/infrastructure/cache/redis"
	"github.com/unifiedui/chat-relay/internal/services/quota"
)

const (
	sessionCookie = "openai_chat_session"
	usageCookie   = "openai_chat_usage"
	remoteAddr    = "203.0.113.7:51234"
	visitorIP     = "203.0.113.7"
)

func testCookies() handlers.CookieConfig {
	return handlers.CookieConfig{
		SessionName: sessionCookie,
		UsageName:   usageCookie,
		TTL:         24 * time.Hour,
	}
}

func setupQuotaStore(t *testing.T) (*miniredis.Miniredis, quota.Store) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := rediscache.NewClient(rediscache.Config{Host: mr.Host(), Port: mr.Port()})
	require.NoError(t, err)
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	store, err := quota.NewStore(&quota.Config{CacheClient: client, Limit: 5, Window: 24 * time.Hour})
	require.NoError(t, err)

	return mr, store
}

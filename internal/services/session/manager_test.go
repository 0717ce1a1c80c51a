package session_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/chat-relay/internal/pkg/encryption"
	"github.com/unifiedui/chat-relay/internal/services/session"
)

type failingSealer struct{}

func (failingSealer) Seal(string) (string, error) { return "", errors.New("entropy exhausted") }
func (failingSealer) Open(string) (string, error) { return "", errors.New("bad token") }

func newSealer(t *testing.T) encryption.Sealer {
	t.Helper()

	key, err := encryption.GenerateKey()
	require.NoError(t, err)
	sealer, err := encryption.NewAESSealer(key)
	require.NoError(t, err)
	return sealer
}

func TestNewManager_Defaults(t *testing.T) {
	mgr := session.NewManager(nil)

	assert.Equal(t, session.DefaultTTL, mgr.TTL())
}

func TestGetOrCreate_MintsWhenAbsent(t *testing.T) {
	// Arrange
	mgr := session.NewManager(&session.Config{TTL: time.Hour})

	// Act
	sess, err := mgr.GetOrCreate("")

	// Assert
	require.NoError(t, err)
	assert.True(t, sess.Issued)
	assert.Equal(t, sess.ID, sess.CookieValue)
	_, parseErr := uuid.Parse(sess.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, time.Hour, mgr.TTL())
}

func TestGetOrCreate_ReusesPresentedVerbatim(t *testing.T) {
	mgr := session.NewManager(nil)

	sess, err := mgr.GetOrCreate("anything-the-client-sent")

	require.NoError(t, err)
	assert.False(t, sess.Issued)
	assert.Equal(t, "anything-the-client-sent", sess.ID)
	assert.Equal(t, "anything-the-client-sent", sess.CookieValue)
}

func TestGetOrCreate_BlankIsAbsent(t *testing.T) {
	mgr := session.NewManager(&session.Config{NewID: func() string { return "fresh" }})

	sess, err := mgr.GetOrCreate("   ")

	require.NoError(t, err)
	assert.True(t, sess.Issued)
	assert.Equal(t, "fresh", sess.ID)
}

func TestGetOrCreate_Sealed(t *testing.T) {
	sealer := newSealer(t)
	mgr := session.NewManager(&session.Config{Sealer: sealer})

	issued, err := mgr.GetOrCreate("")
	require.NoError(t, err)
	assert.True(t, issued.Issued)
	assert.NotEqual(t, issued.ID, issued.CookieValue)

	reused, err := mgr.GetOrCreate(issued.CookieValue)
	require.NoError(t, err)
	assert.False(t, reused.Issued)
	assert.Equal(t, issued.ID, reused.ID)
	assert.Equal(t, issued.CookieValue, reused.CookieValue)
}

func TestGetOrCreate_SealedRejectsForgedCookie(t *testing.T) {
	mgr := session.NewManager(&session.Config{
		Sealer: newSealer(t),
		NewID:  func() string { return "minted" },
	})

	sess, err := mgr.GetOrCreate("forged-session-id")

	require.NoError(t, err)
	assert.True(t, sess.Issued)
	assert.Equal(t, "minted", sess.ID)
}

func TestGetOrCreate_SealFailure(t *testing.T) {
	mgr := session.NewManager(&session.Config{Sealer: failingSealer{}})

	sess, err := mgr.GetOrCreate("")

	assert.Nil(t, sess)
	assert.ErrorContains(t, err, "failed to seal session id")
}

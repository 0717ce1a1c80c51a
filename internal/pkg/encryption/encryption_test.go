package encryption_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/chat-relay/internal/pkg/encryption"
)

func newTestSealer(t *testing.T) *encryption.AESSealer {
	t.Helper()

	key, err := encryption.GenerateKey()
	require.NoError(t, err)

	sealer, err := encryption.NewAESSealer(key)
	require.NoError(t, err)
	return sealer
}

func TestNewAESSealer_RawKey(t *testing.T) {
	sealer, err := encryption.NewAESSealer(strings.Repeat("k", 32))

	require.NoError(t, err)
	assert.NotNil(t, sealer)
}

func TestNewAESSealer_RawKeyOfBase64Alphabet(t *testing.T) {
	// Valid base64 that decodes to 24 bytes, so it is used as 32 raw bytes.
	key := "abcdefghijklmnopqrstuvwxyz012345"

	sealer, err := encryption.NewAESSealer(key)
	require.NoError(t, err)

	token, err := sealer.Seal("session")
	require.NoError(t, err)

	again, err := encryption.NewAESSealer(key)
	require.NoError(t, err)
	plaintext, err := again.Open(token)
	require.NoError(t, err)
	assert.Equal(t, "session", plaintext)
}

func TestNewAESSealer_Base64Key(t *testing.T) {
	key, err := encryption.GenerateKey()
	require.NoError(t, err)
	assert.Len(t, key, 44)

	sealer, err := encryption.NewAESSealer(key)
	require.NoError(t, err)
	assert.NotNil(t, sealer)
}

func TestNewAESSealer_InvalidKeyLength(t *testing.T) {
	sealer, err := encryption.NewAESSealer("tooshort!!!")

	assert.Error(t, err)
	assert.Nil(t, sealer)
	assert.Contains(t, err.Error(), "must be 32 bytes")
}

func TestAESSealer_SealOpen(t *testing.T) {
	sealer := newTestSealer(t)

	token, err := sealer.Seal("3f1c2b8e-session")
	require.NoError(t, err)
	assert.NotContains(t, token, "3f1c2b8e")
	assert.NotContains(t, token, "=")
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")

	plaintext, err := sealer.Open(token)
	require.NoError(t, err)
	assert.Equal(t, "3f1c2b8e-session", plaintext)
}

func TestAESSealer_SealIsRandomized(t *testing.T) {
	sealer := newTestSealer(t)

	first, err := sealer.Seal("same")
	require.NoError(t, err)
	second, err := sealer.Seal("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestAESSealer_OpenRejectsForeignTokens(t *testing.T) {
	sealer := newTestSealer(t)
	other := newTestSealer(t)

	token, err := other.Seal("session")
	require.NoError(t, err)

	_, err = sealer.Open(token)
	assert.Error(t, err)

	_, err = sealer.Open("not base64 !!")
	assert.Error(t, err)

	_, err = sealer.Open("abc")
	assert.Error(t, err)
}

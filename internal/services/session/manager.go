// Package session issues the conversation session identifier kept in the visitor's cookie.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/unifiedui/chat-relay/internal/pkg/encryption"
)

// DefaultTTL is how long the client keeps the session cookie.
const DefaultTTL = 24 * time.Hour

// Session is the resolved conversation session of one request.
type Session struct {
	// ID is the session identifier written to the audit log.
	ID string
	// CookieValue is what the client stores; equal to ID unless sealing is enabled.
	CookieValue string
	// Issued is set when ID was minted by this request and the cookie must be written.
	Issued bool
}

// Manager resolves the session of a request.
type Manager interface {
	// GetOrCreate reuses the presented cookie value or mints a new session.
	GetOrCreate(presented string) (*Session, error)

	// TTL returns the cookie lifetime.
	TTL() time.Duration
}

// Config holds the configuration for the session manager.
type Config struct {
	// Sealer, when set, makes the cookie an encrypted token instead of the raw id.
	Sealer encryption.Sealer
	TTL    time.Duration
	// NewID overrides id generation in tests.
	NewID func() string
}

type manager struct {
	sealer encryption.Sealer
	ttl    time.Duration
	newID  func() string
}

// NewManager creates a new session manager.
func NewManager(cfg *Config) Manager {
	if cfg == nil {
		cfg = &Config{}
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	newID := cfg.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	return &manager{
		sealer: cfg.Sealer,
		ttl:    ttl,
		newID:  newID,
	}
}

// TTL returns the cookie lifetime.
func (m *manager) TTL() time.Duration {
	return m.ttl
}

// GetOrCreate reuses the presented cookie value or mints a new session.
func (m *manager) GetOrCreate(presented string) (*Session, error) {
	presented = strings.TrimSpace(presented)

	if presented != "" {
		if m.sealer == nil {
			return &Session{ID: presented, CookieValue: presented}, nil
		}

		id, err := m.sealer.Open(presented)
		if err == nil && id != "" {
			return &Session{ID: id, CookieValue: presented}, nil
		}
		log.Debug().Err(err).Msg("discarding session cookie that does not open")
	}

	return m.issue()
}

func (m *manager) issue() (*Session, error) {
	id := m.newID()

	if m.sealer == nil {
		return &Session{ID: id, CookieValue: id, Issued: true}, nil
	}

	token, err := m.sealer.Seal(id)
	if err != nil {
		return nil, fmt.Errorf("failed to seal session id: %w", err)
	}
	return &Session{ID: id, CookieValue: token, Issued: true}, nil
}

// Package audit records every relayed message pair.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/unifiedui/chat-relay/internal/core/docdb"
	"github.com/unifiedui/chat-relay/internal/domain/models"
)

const (
	// DefaultPageSize is the page size of the admin listing.
	DefaultPageSize = 20

	// MaxPageSize bounds a single listing page.
	MaxPageSize = 100

	defaultWriteTimeout = 5 * time.Second
)

// ListOptions selects one page of entries.
type ListOptions struct {
	Page      int
	Limit     int
	SessionID string
}

// Page is one page of entries, newest first.
type Page struct {
	Entries []*models.AuditEntry
	Page    int
	Limit   int
	Total   int64
}

// TotalPages returns the number of pages at the current limit.
func (p *Page) TotalPages() int {
	if p.Limit <= 0 || p.Total == 0 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}

// Log is the append-only audit log.
type Log interface {
	// Append records one entry. Failures are logged, never returned.
	Append(ctx context.Context, entry *models.AuditEntry)

	// List returns one page of entries for operators.
	List(ctx context.Context, opts *ListOptions) (*Page, error)
}

// Config holds the configuration for the audit log.
type Config struct {
	Collection   docdb.AuditCollection
	WriteTimeout time.Duration
}

type auditLog struct {
	collection   docdb.AuditCollection
	writeTimeout time.Duration
}

// NewLog creates a new audit log.
func NewLog(cfg *Config) (Log, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Collection == nil {
		return nil, fmt.Errorf("audit collection is required")
	}

	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	return &auditLog{
		collection:   cfg.Collection,
		writeTimeout: writeTimeout,
	}, nil
}

// Append records one entry. The write outlives a cancelled request context.
func (l *auditLog) Append(ctx context.Context, entry *models.AuditEntry) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.writeTimeout)
	defer cancel()

	if err := l.collection.Insert(writeCtx, entry); err != nil {
		log.Error().
			Err(err).
			Str("session_id", entry.SessionID).
			Str("assistant", entry.AssistantName).
			Msg("failed to store message pair")
		return
	}

	log.Debug().Str("audit_id", entry.ID).Bool("failed", entry.Failed).Msg("message pair stored")
}

// List returns one page of entries for operators.
func (l *auditLog) List(ctx context.Context, opts *ListOptions) (*Page, error) {
	page, limit, sessionID := 1, DefaultPageSize, ""
	if opts != nil {
		if opts.Page > 0 {
			page = opts.Page
		}
		if opts.Limit > 0 {
			limit = opts.Limit
		}
		sessionID = opts.SessionID
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	query := &docdb.ListAuditOptions{
		SessionID: sessionID,
		Limit:     int64(limit),
		Skip:      int64((page - 1) * limit),
	}

	total, err := l.collection.Count(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count message pairs: %w", err)
	}

	entries, err := l.collection.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list message pairs: %w", err)
	}

	return &Page{
		Entries: entries,
		Page:    page,
		Limit:   limit,
		Total:   total,
	}, nil
}

// Package docdb provides the audit collection interface.
package docdb

import (
	"context"

	"github.com/unifiedui/chat-relay/internal/domain/models"
)

// ListAuditOptions contains options for listing audit entries.
type ListAuditOptions struct {
	SessionID       string
	VisitorIdentity string
	Limit           int64
	Skip            int64
}

// AuditCollection defines the append-only audit log operations.
type AuditCollection interface {
	// Insert appends one entry.
	Insert(ctx context.Context, entry *models.AuditEntry) error

	// List returns entries newest first.
	List(ctx context.Context, opts *ListAuditOptions) ([]*models.AuditEntry, error)

	// Count returns the number of entries matching the filter part of opts.
	Count(ctx context.Context, opts *ListAuditOptions) (int64, error)

	// EnsureIndexes creates necessary indexes for the collection.
	EnsureIndexes(ctx context.Context) error
}

package mocks

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/chat-relay/internal/core/docdb"
	"github.com/unifiedui/chat-relay/internal/domain/models"
)

// MockAuditCollection is a mock implementation of docdb.AuditCollection.
type MockAuditCollection struct {
	mock.Mock
}

// Insert appends one entry.
func (m *MockAuditCollection) Insert(ctx context.Context, entry *models.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// List returns entries.
func (m *MockAuditCollection) List(ctx context.Context, opts *docdb.ListAuditOptions) ([]*models.AuditEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AuditEntry), args.Error(1)
}

// Count counts entries.
func (m *MockAuditCollection) Count(ctx context.Context, opts *docdb.ListAuditOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}

// EnsureIndexes creates indexes.
func (m *MockAuditCollection) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockDocDBClient is a mock implementation of docdb.Client.
type MockDocDBClient struct {
	mock.Mock
	audit *MockAuditCollection
}

// NewMockDocDBClient creates a new MockDocDBClient.
func NewMockDocDBClient() *MockDocDBClient {
	return &MockDocDBClient{audit: &MockAuditCollection{}}
}

// AuditEntries returns the mock audit collection.
func (m *MockDocDBClient) AuditEntries() docdb.AuditCollection {
	return m.audit
}

// GetMockAuditCollection returns the typed mock audit collection for setting expectations.
func (m *MockDocDBClient) GetMockAuditCollection() *MockAuditCollection {
	return m.audit
}

// EnsureIndexes creates indexes.
func (m *MockDocDBClient) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Ping checks the connection.
func (m *MockDocDBClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the connection.
func (m *MockDocDBClient) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MemoryAuditCollection is an in-memory docdb.AuditCollection for tests that
// assert on what was recorded rather than on calls.
type MemoryAuditCollection struct {
	mu      sync.Mutex
	entries []*models.AuditEntry
}

// Insert appends one entry.
func (c *MemoryAuditCollection) Insert(ctx context.Context, entry *models.AuditEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
	return nil
}

// List returns entries newest first, honoring filters and paging.
func (c *MemoryAuditCollection) List(ctx context.Context, opts *docdb.ListAuditOptions) ([]*models.AuditEntry, error) {
	matched := c.filter(opts)
	if opts != nil && opts.Skip > 0 {
		if opts.Skip >= int64(len(matched)) {
			return []*models.AuditEntry{}, nil
		}
		matched = matched[opts.Skip:]
	}
	if opts != nil && opts.Limit > 0 && int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

// Count counts matching entries.
func (c *MemoryAuditCollection) Count(ctx context.Context, opts *docdb.ListAuditOptions) (int64, error) {
	return int64(len(c.filter(opts))), nil
}

// EnsureIndexes is a no-op.
func (c *MemoryAuditCollection) EnsureIndexes(ctx context.Context) error {
	return nil
}

// Entries returns a copy of all entries in insertion order.
func (c *MemoryAuditCollection) Entries() []*models.AuditEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*models.AuditEntry(nil), c.entries...)
}

func (c *MemoryAuditCollection) filter(opts *docdb.ListAuditOptions) []*models.AuditEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	matched := make([]*models.AuditEntry, 0, len(c.entries))
	for i := len(c.entries) - 1; i >= 0; i-- {
		entry := c.entries[i]
		if opts != nil && opts.SessionID != "" && entry.SessionID != opts.SessionID {
			continue
		}
		if opts != nil && opts.VisitorIdentity != "" && entry.VisitorIdentity != opts.VisitorIdentity {
			continue
		}
		matched = append(matched, entry)
	}
	return matched
}

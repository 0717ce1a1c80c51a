package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unifiedui/chat-relay/internal/core/docdb"
	"github.com/unifiedui/chat-relay/internal/domain/models"
)

// AuditCollectionName is the default name of the message pair collection.
const AuditCollectionName = "chat_messages"

// AuditCollection implements the docdb.AuditCollection interface for MongoDB.
type AuditCollection struct {
	collection *mongo.Collection
}

// NewAuditCollection wraps the named collection of db.
func NewAuditCollection(db *mongo.Database, name string) *AuditCollection {
	return &AuditCollection{
		collection: db.Collection(name),
	}
}

// Insert appends one entry.
func (c *AuditCollection) Insert(ctx context.Context, entry *models.AuditEntry) error {
	if entry == nil {
		return fmt.Errorf("audit entry is required")
	}
	if entry.ID == "" {
		return fmt.Errorf("audit entry ID is required")
	}

	if _, err := c.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// List returns entries newest first.
func (c *AuditCollection) List(ctx context.Context, opts *docdb.ListAuditOptions) ([]*models.AuditEntry, error) {
	cursor, err := c.collection.Find(ctx, buildAuditFilter(opts), buildAuditFindOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]*models.AuditEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}

	return entries, nil
}

// Count returns the number of entries matching the filter part of opts.
func (c *AuditCollection) Count(ctx context.Context, opts *docdb.ListAuditOptions) (int64, error) {
	count, err := c.collection.CountDocuments(ctx, buildAuditFilter(opts))
	if err != nil {
		return 0, fmt.Errorf("failed to count audit entries: %w", err)
	}
	return count, nil
}

// EnsureIndexes creates necessary indexes for the audit collection.
func (c *AuditCollection) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
		{
			Keys: bson.D{
				{Key: "sessionId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("idx_session_created"),
		},
		{
			Keys: bson.D{
				{Key: "ipAddress", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("idx_ip_created"),
		},
	}

	if _, err := c.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create audit indexes: %w", err)
	}
	return nil
}

// buildAuditFilter creates a MongoDB filter from list options.
func buildAuditFilter(opts *docdb.ListAuditOptions) bson.M {
	filter := bson.M{}

	if opts == nil {
		return filter
	}

	if opts.SessionID != "" {
		filter["sessionId"] = opts.SessionID
	}
	if opts.VisitorIdentity != "" {
		filter["ipAddress"] = opts.VisitorIdentity
	}

	return filter
}

// buildAuditFindOptions creates MongoDB find options from list options.
func buildAuditFindOptions(opts *docdb.ListAuditOptions) *options.FindOptions {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	if opts == nil {
		return findOpts
	}

	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}

	return findOpts
}

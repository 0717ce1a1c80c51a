// Package mongodb stores the relay's message pairs in MongoDB or Cosmos DB (MongoDB API).
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/unifiedui/chat-relay/internal/core/docdb"
)

const (
	appName               = "chat-relay"
	defaultConnectTimeout = 10 * time.Second
)

// ClientConfig holds MongoDB connection configuration.
type ClientConfig struct {
	URI          string
	DatabaseName string

	// AuditCollection defaults to AuditCollectionName.
	AuditCollection string
	ConnectTimeout  time.Duration
}

// Client implements docdb.Client for MongoDB.
type Client struct {
	client *mongo.Client
	audit  *AuditCollection
}

var _ docdb.Client = (*Client)(nil)

// NewClient connects to MongoDB and verifies the primary is reachable.
func NewClient(ctx context.Context, config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.URI == "" {
		return nil, fmt.Errorf("mongodb URI is required")
	}
	if config.DatabaseName == "" {
		return nil, fmt.Errorf("database name is required")
	}

	timeout := config.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	collection := config.AuditCollection
	if collection == "" {
		collection = AuditCollectionName
	}

	clientOpts := options.Client().
		ApplyURI(config.URI).
		SetAppName(appName).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Client{
		client: client,
		audit:  NewAuditCollection(client.Database(config.DatabaseName), collection),
	}, nil
}

// AuditEntries returns the message pair collection.
func (c *Client) AuditEntries() docdb.AuditCollection {
	return c.audit
}

// EnsureIndexes creates the indexes of the message pair collection.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	return c.audit.EnsureIndexes(ctx)
}

// Ping verifies the primary is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}

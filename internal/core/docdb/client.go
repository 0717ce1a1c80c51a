// Package docdb defines the document database client interface.
package docdb

import (
	"context"
)

// Type represents the type of document database.
type Type string

const (
	// TypeMongoDB represents a MongoDB database.
	TypeMongoDB Type = "mongodb"
	// TypeCosmosDB represents an Azure Cosmos DB database (MongoDB API).
	TypeCosmosDB Type = "cosmosdb"
)

// Client defines the interface for a document database client.
type Client interface {
	// AuditEntries returns the audit log collection.
	AuditEntries() AuditCollection

	// EnsureIndexes creates the indexes of all collections.
	EnsureIndexes(ctx context.Context) error

	// Ping verifies the database connection.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close(ctx context.Context) error
}

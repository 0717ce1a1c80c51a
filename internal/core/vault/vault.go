// Package vault defines the read-only secret source of the relay.
package vault

import (
	"context"
	"errors"
	"fmt"
)

// Type represents the type of vault.
type Type string

// TypeDotEnv represents a vault backed by environment variables and dotenv files.
const TypeDotEnv Type = "dotenv"

// ErrSecretNotFound is returned when a vault holds no value for a URI.
var ErrSecretNotFound = errors.New("secret not found")

// Vault resolves secret references such as "dotenv://OPENAI_API_KEY".
type Vault interface {
	// GetSecret retrieves a secret by URI.
	// Returns an error wrapping ErrSecretNotFound if there is no value.
	GetSecret(ctx context.Context, uri string) (string, error)

	// Ping checks if the vault is reachable.
	Ping(ctx context.Context) error

	// Close releases the vault.
	Close() error
}

// Resolve returns direct when set, otherwise the secret stored under uri.
// A missing secret resolves to an empty string; other vault errors are returned.
func Resolve(ctx context.Context, v Vault, direct, uri string) (string, error) {
	if direct != "" || uri == "" {
		return direct, nil
	}

	value, err := v.GetSecret(ctx, uri)
	if errors.Is(err, ErrSecretNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve secret %s: %w", uri, err)
	}
	return value, nil
}

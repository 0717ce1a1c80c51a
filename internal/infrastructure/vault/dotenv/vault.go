// Package dotenv provides a vault backed by the environment and dotenv files.
package dotenv

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/unifiedui/chat-relay/internal/core/vault"
)

const scheme = "dotenv://"

// Vault resolves "dotenv://NAME" references.
// The process environment wins over values read from secrets files.
type Vault struct {
	fileSecrets map[string]string
}

var _ vault.Vault = (*Vault)(nil)

// NewVault creates a vault. Each file is parsed with godotenv but never
// exported, so its secrets stay out of the process environment.
func NewVault(files ...string) (*Vault, error) {
	secrets := make(map[string]string)
	for _, file := range files {
		if file == "" {
			continue
		}

		values, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read secrets file %s: %w", file, err)
		}
		for key, value := range values {
			secrets[key] = value
		}
	}

	return &Vault{fileSecrets: secrets}, nil
}

// GetSecret resolves a reference of the form "dotenv://NAME".
func (v *Vault) GetSecret(ctx context.Context, uri string) (string, error) {
	name, ok := strings.CutPrefix(strings.TrimSpace(uri), scheme)
	if !ok || name == "" {
		return "", fmt.Errorf("invalid dotenv secret reference %q", uri)
	}

	if value := os.Getenv(name); value != "" {
		return value, nil
	}
	if value, ok := v.fileSecrets[name]; ok && value != "" {
		return value, nil
	}

	return "", fmt.Errorf("%w: %s", vault.ErrSecretNotFound, name)
}

// Ping always succeeds; there is nothing to connect to.
func (v *Vault) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (v *Vault) Close() error {
	return nil
}

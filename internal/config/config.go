// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server     ServerConfig
	Cache      CacheConfig
	DocDB      DocDBConfig
	Vault      VaultConfig
	Provider   ProviderConfig
	Assistants AssistantsConfig
	Quota      QuotaConfig
	Session    SessionConfig
	Admin      AdminConfig
	CORS       CORSConfig
	Log        LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host    string
	Port    int
	GinMode string

	// TrustedProxies are the proxies whose forwarding headers identify the visitor.
	TrustedProxies []string

	// RequestTimeout bounds a whole relay request, including the poll loop.
	RequestTimeout time.Duration
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheConfig holds cache-related configuration.
type CacheConfig struct {
	Type     string
	Host     string
	Port     string
	Password string
	DB       int
}

// DocDBConfig holds document database configuration.
type DocDBConfig struct {
	Type     string
	URI      string
	Database string

	// AuditCollection is the collection holding the stored message pairs.
	AuditCollection string
	ConnectTimeout  time.Duration
}

// VaultConfig holds vault configuration.
type VaultConfig struct {
	Type string

	// SecretsFile is an optional dotenv file read by the vault without exporting it to the environment.
	SecretsFile string

	// APIKeyURI references the provider credential inside the vault.
	APIKeyURI string

	// SessionSecretURI references the optional session sealing key.
	SessionSecretURI string
}

// ProviderConfig holds assistant provider configuration.
type ProviderConfig struct {
	BaseURL         string
	APIKey          string
	BetaHeader      string
	RequestTimeout  time.Duration
	PollInterval    time.Duration
	PollMaxAttempts int
}

// AssistantsConfig holds the provider assistant ids of the coach profiles.
type AssistantsConfig struct {
	HellenID string
	GeorgeID string
}

// QuotaConfig holds per-visitor message quota configuration.
type QuotaConfig struct {
	Limit     int
	Window    time.Duration
	FailOpen  bool
	UpsellURL string
}

// SessionConfig holds visitor cookie configuration.
type SessionConfig struct {
	CookieName      string
	UsageCookieName string
	TTL             time.Duration
	CookieDomain    string
	CookieSecure    bool
	Secret          string
}

// AdminConfig holds configuration for the operator endpoints.
type AdminConfig struct {
	Token string
}

// CORSConfig holds the origins allowed to embed the chat widget.
type CORSConfig struct {
	AllowOrigins []string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			GinMode:        getEnv("GIN_MODE", "debug"),
			TrustedProxies: getEnvAsList("TRUSTED_PROXIES", nil),
			RequestTimeout: time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 90)) * time.Second,
		},
		Cache: CacheConfig{
			Type:     getEnv("CACHE_TYPE", "redis"),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		DocDB: DocDBConfig{
			Type:     getEnv("DOCDB_TYPE", "mongodb"),
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "chat_relay"),

			AuditCollection: getEnv("MONGODB_AUDIT_COLLECTION", "chat_messages"),
			ConnectTimeout:  time.Duration(getEnvAsInt("MONGODB_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Vault: VaultConfig{
			Type:             getEnv("VAULT_TYPE", "dotenv"),
			SecretsFile:      getEnv("VAULT_DOTENV_FILE", ""),
			APIKeyURI:        getEnv("OPENAI_API_KEY_URI", "dotenv://OPENAI_API_KEY"),
			SessionSecretURI: getEnv("SESSION_SECRET_URI", "dotenv://SESSION_SECRET"),
		},
		Provider: ProviderConfig{
			BaseURL:         getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			APIKey:          getEnv("OPENAI_API_KEY", ""),
			BetaHeader:      getEnv("OPENAI_BETA_HEADER", "assistants=v2"),
			RequestTimeout:  time.Duration(getEnvAsInt("OPENAI_TIMEOUT_SECONDS", 30)) * time.Second,
			PollInterval:    time.Duration(getEnvAsInt("OPENAI_POLL_INTERVAL_MS", 1000)) * time.Millisecond,
			PollMaxAttempts: getEnvAsInt("OPENAI_POLL_MAX_ATTEMPTS", 60),
		},
		Assistants: AssistantsConfig{
			HellenID: getEnv("ASSISTANT_ID_HELLEN", ""),
			GeorgeID: getEnv("ASSISTANT_ID_GEORGE", ""),
		},
		Quota: QuotaConfig{
			Limit:     getEnvAsInt("QUOTA_LIMIT", 5),
			Window:    time.Duration(getEnvAsInt("QUOTA_WINDOW_HOURS", 24)) * time.Hour,
			FailOpen:  getEnvAsBool("QUOTA_FAIL_OPEN", true),
			UpsellURL: getEnv("QUOTA_UPSELL_URL", "https://wai.waiheke.ai"),
		},
		Session: SessionConfig{
			CookieName:      getEnv("SESSION_COOKIE_NAME", "openai_chat_session"),
			UsageCookieName: getEnv("USAGE_COOKIE_NAME", "openai_chat_usage"),
			TTL:             time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 24)) * time.Hour,
			CookieDomain:    getEnv("COOKIE_DOMAIN", ""),
			CookieSecure:    getEnvAsBool("COOKIE_SECURE", false),
			Secret:          getEnv("SESSION_SECRET", ""),
		},
		Admin: AdminConfig{
			Token: getEnv("ADMIN_TOKEN", ""),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.Quota.Limit <= 0 {
		return nil, fmt.Errorf("QUOTA_LIMIT must be positive, got %d", cfg.Quota.Limit)
	}
	if cfg.Provider.PollMaxAttempts <= 0 {
		return nil, fmt.Errorf("OPENAI_POLL_MAX_ATTEMPTS must be positive, got %d", cfg.Provider.PollMaxAttempts)
	}

	return cfg, nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as a boolean with a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsList gets a comma-separated environment variable as a list.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

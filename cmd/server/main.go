// Package main is the entry point for the Coach Chat Relay.
// @title Coach Chat Relay API
// @version 1.0
// @description Quota-gated relay between an embedded coach chat widget and the OpenAI Assistants API.

// @contact.name API Support
// @contact.url https://github.com/unifiedui/chat-relay

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token for the admin endpoints (ADMIN_TOKEN)
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/unifiedui/chat-relay/docs"
	"github.com/unifiedui/chat-relay/internal/api/handlers"
	"github.com/unifiedui/chat-relay/internal/api/middleware"
	"github.com/unifiedui/chat-relay/internal/api/routes"
	"github.com/unifiedui/chat-relay/internal/config"
	"github.com/unifiedui/chat-relay/internal/core/cache"
	"github.com/unifiedui/chat-relay/internal/core/docdb"
	"github.com/unifiedui/chat-relay/internal/core/vault"
	rediscache "github.com/unifiedui/chat-relay/internal/infrastructure/cache/redis"
	"github.com/unifiedui/chat-relay/internal/infrastructure/docdb/mongodb"
	dotenvvault "github.com/unifiedui/chat-relay/internal/infrastructure/vault/dotenv"
	"github.com/unifiedui/chat-relay/internal/pkg/encryption"
	"github.com/unifiedui/chat-relay/internal/services/assistants/openai"
	"github.com/unifiedui/chat-relay/internal/services/audit"
	"github.com/unifiedui/chat-relay/internal/services/quota"
	"github.com/unifiedui/chat-relay/internal/services/relay"
	"github.com/unifiedui/chat-relay/internal/services/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogger(cfg.Log)

	ctx := context.Background()

	// Initialize vault client using factory pattern
	vaultClient, err := createVault(cfg.Vault)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize vault")
	}
	defer vaultClient.Close()

	// Initialize cache client using factory pattern
	cacheClient, err := createCacheClient(cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize cache client")
	}
	defer cacheClient.Close()

	// Initialize document db client using factory pattern
	docDBClient, err := createDocDBClient(ctx, cfg.DocDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize document db client")
	}
	defer docDBClient.Close(ctx)

	if err := docDBClient.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	apiKey, err := vault.Resolve(ctx, vaultClient, cfg.Provider.APIKey, cfg.Vault.APIKeyURI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve provider API key")
	}
	if apiKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set, chat requests will fail with a configuration error")
	}

	sealer, err := createSealer(ctx, cfg, vaultClient)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session sealer")
	}

	quotaStore, err := quota.NewStore(&quota.Config{
		CacheClient: cacheClient,
		Limit:       cfg.Quota.Limit,
		Window:      cfg.Quota.Window,
		FailOpen:    cfg.Quota.FailOpen,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize quota store")
	}

	auditLog, err := audit.NewLog(&audit.Config{Collection: docDBClient.AuditEntries()})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize audit log")
	}

	assistantClient, err := openai.NewClient(&openai.ClientConfig{
		BaseURL:         cfg.Provider.BaseURL,
		APIKey:          apiKey,
		BetaHeader:      cfg.Provider.BetaHeader,
		RequestTimeout:  cfg.Provider.RequestTimeout,
		PollInterval:    cfg.Provider.PollInterval,
		PollMaxAttempts: cfg.Provider.PollMaxAttempts,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize assistant client")
	}

	orchestrator, err := relay.NewOrchestrator(&relay.Config{
		Profiles:     relay.NewProfiles(cfg.Assistants.HellenID, cfg.Assistants.GeorgeID),
		Assistants:   assistantClient,
		Quota:        quotaStore,
		Sessions:     session.NewManager(&session.Config{Sealer: sealer, TTL: cfg.Session.TTL}),
		Audit:        auditLog,
		PollAttempts: assistantClient.PollMaxAttempts(),
		UpsellURL:    cfg.Quota.UpsellURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize relay")
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	router, err := setupRouter(cfg, cacheClient, docDBClient, orchestrator, quotaStore, auditLog)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up router")
	}

	// The write timeout has to outlive the poll loop of the chat endpoint.
	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.RequestTimeout + 10*time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// In-flight chats may still be polling, so give them the full request timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// setupLogger configures the global zerolog logger.
func setupLogger(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if strings.EqualFold(cfg.Format, "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// createVault creates a vault based on the configuration.
func createVault(cfg config.VaultConfig) (vault.Vault, error) {
	switch vault.Type(cfg.Type) {
	case vault.TypeDotEnv:
		v, err := dotenvvault.NewVault(cfg.SecretsFile)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported vault type: %s", cfg.Type)
	}
}

// createCacheClient creates a cache client based on the configuration.
func createCacheClient(cfg config.CacheConfig) (cache.Client, error) {
	switch cache.Type(cfg.Type) {
	case cache.TypeRedis:
		client, err := rediscache.NewClient(rediscache.Config{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}

// createDocDBClient creates a document database client based on the configuration.
func createDocDBClient(ctx context.Context, cfg config.DocDBConfig) (docdb.Client, error) {
	switch docdb.Type(cfg.Type) {
	case docdb.TypeMongoDB, docdb.TypeCosmosDB:
		// CosmosDB uses MongoDB protocol, so we can use the same client
		client, err := mongodb.NewClient(ctx, &mongodb.ClientConfig{
			URI:             cfg.URI,
			DatabaseName:    cfg.Database,
			AuditCollection: cfg.AuditCollection,
			ConnectTimeout:  cfg.ConnectTimeout,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported docdb type: %s", cfg.Type)
	}
}

// createSealer returns the session cookie sealer, or nil when no secret is configured.
func createSealer(ctx context.Context, cfg *config.Config, vaultClient vault.Vault) (encryption.Sealer, error) {
	secret, err := vault.Resolve(ctx, vaultClient, cfg.Session.Secret, cfg.Vault.SessionSecretURI)
	if err != nil {
		return nil, err
	}
	if secret == "" {
		log.Info().Msg("SESSION_SECRET not set, session cookies are stored as plain ids")
		return nil, nil
	}

	return encryption.NewAESSealer(secret)
}

// setupRouter creates and configures the Gin router.
func setupRouter(cfg *config.Config, cacheClient cache.Client, docDBClient docdb.Client, orchestrator *relay.Orchestrator, quotaStore quota.Store, auditLog audit.Log) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	cookies := handlers.CookieConfig{
		SessionName: cfg.Session.CookieName,
		UsageName:   cfg.Session.UsageCookieName,
		TTL:         cfg.Session.TTL,
		Domain:      cfg.Session.CookieDomain,
		Secure:      cfg.Session.CookieSecure,
	}

	routesCfg := &routes.Config{
		HealthHandler: handlers.NewHealthHandler(
			handlers.HealthCheck{Name: "cache", Check: cacheClient.Ping, Optional: cfg.Quota.FailOpen},
			// Audit writes never fail a chat, so the document store is never required.
			handlers.HealthCheck{Name: "docdb", Check: docDBClient.Ping, Optional: true},
		),
		ChatHandler:       handlers.NewChatHandler(orchestrator, cookies),
		QuotaHandler:      handlers.NewQuotaHandler(quotaStore, cookies),
		AssistantsHandler: handlers.NewAssistantsHandler(orchestrator.Profiles()),
		AdminHandler:      handlers.NewAdminHandler(auditLog, quotaStore),
		AuthMiddleware:    middleware.NewAuthMiddleware(cfg.Admin.Token),
		RequestTimeout:    cfg.Server.RequestTimeout,
		EnableSwagger:     cfg.Server.GinMode != gin.ReleaseMode,
	}

	routes.SetupWithMiddleware(router, routesCfg,
		middleware.NewLoggingMiddleware().Quiet(routes.BasePath+"/live", routes.BasePath+"/ready"),
		middleware.NewErrorMiddleware(),
		middleware.DefaultCORSConfig(cfg.CORS.AllowOrigins))

	return router, nil
}

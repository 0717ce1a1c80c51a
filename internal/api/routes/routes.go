// Package routes defines the HTTP routes of the chat relay.
package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/unifiedui/chat-relay/internal/api/handlers"
	"github.com/unifiedui/chat-relay/internal/api/middleware"
)

// BasePath is the prefix of every API route.
const BasePath = "/api/v1/chat-relay"

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler     *handlers.HealthHandler
	ChatHandler       *handlers.ChatHandler
	QuotaHandler      *handlers.QuotaHandler
	AssistantsHandler *handlers.AssistantsHandler
	AdminHandler      *handlers.AdminHandler
	AuthMiddleware    *middleware.AuthMiddleware
	// RequestTimeout bounds the chat endpoint, which waits for the assistant.
	RequestTimeout time.Duration
	// EnableSwagger serves the API docs under /docs.
	EnableSwagger bool
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	if cfg.EnableSwagger {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group(BasePath)
	{
		// Health check routes
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		// Visitor routes, identified by address and cookies
		v1.POST("/talk", middleware.Timeout(cfg.RequestTimeout), cfg.ChatHandler.Talk)
		v1.GET("/quota", cfg.QuotaHandler.GetQuota)
		v1.GET("/assistants", cfg.AssistantsHandler.ListAssistants)
		v1.GET("/assistants/:key", cfg.AssistantsHandler.GetAssistant)

		admin := v1.Group("/admin")
		admin.Use(cfg.AuthMiddleware.Authenticate())
		{
			admin.GET("/messages", cfg.AdminHandler.ListMessages)
			admin.DELETE("/quotas", cfg.AdminHandler.ResetAllQuotas)
			admin.DELETE("/quotas/:ip", cfg.AdminHandler.ResetQuota)
		}
	}
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware, cors middleware.CORSConfig) {
	r.Use(loggingMw.RequestLogger())
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())
	r.Use(middleware.NewCORSMiddleware(cors))

	middleware.SetupCORSRoutes(r, cors)
	r.NoRoute(middleware.NotFound())
	r.NoMethod(middleware.MethodNotAllowed())

	Setup(r, cfg)
}

// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/unifiedui/chat-relay/internal/domain/errors"
)

// AuthMiddleware guards the operator endpoints with a static bearer token.
type AuthMiddleware struct {
	token string
}

// NewAuthMiddleware creates a new AuthMiddleware. An empty token disables the guarded routes.
func NewAuthMiddleware(token string) *AuthMiddleware {
	return &AuthMiddleware{
		token: token,
	}
}

// Authenticate returns a gin middleware that validates the Bearer token.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.token == "" {
			abortWithError(c, http.StatusServiceUnavailable, domainerrors.ErrCodeServiceUnavailable, "admin access is not configured", "")
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, domainerrors.ErrCodeUnauthorized, "missing authorization header", "")
			return
		}

		// Extract Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortWithError(c, http.StatusUnauthorized, domainerrors.ErrCodeUnauthorized, "invalid authorization header format", "")
			return
		}

		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(parts[1])), []byte(m.token)) != 1 {
			abortWithError(c, http.StatusUnauthorized, domainerrors.ErrCodeUnauthorized, "invalid token", "")
			return
		}

		c.Next()
	}
}

// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/unifiedui/chat-relay/internal/api/dto"
	domainerrors "github.com/unifiedui/chat-relay/internal/domain/errors"
)

// ErrorMiddleware turns panics into the JSON error envelope.
type ErrorMiddleware struct{}

// NewErrorMiddleware creates a new ErrorMiddleware.
func NewErrorMiddleware() *ErrorMiddleware {
	return &ErrorMiddleware{}
}

// Recovery returns a gin middleware that recovers from panics.
// The widget always expects JSON, so a panic is answered like any other internal error.
func (m *ErrorMiddleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				zerolog.Ctx(c.Request.Context()).Error().
					Interface("panic", recovered).
					Str("path", c.Request.URL.Path).
					Str("method", c.Request.Method).
					Msg("panic recovered")

				abortWithError(c, http.StatusInternalServerError, domainerrors.ErrCodeInternal, "internal server error", "")
			}
		}()
		c.Next()
	}
}

// HandleError writes err as a JSON error response and aborts the chain.
// Domain errors keep their status and code; anything else becomes a 500.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	logger := zerolog.Ctx(c.Request.Context())

	domainErr, ok := domainerrors.GetDomainError(err)
	if !ok {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
		abortWithError(c, http.StatusInternalServerError, domainerrors.ErrCodeInternal, "internal server error", "")
		return
	}

	if domainErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	} else {
		logger.Debug().Str("code", domainErr.Code).Str("path", c.Request.URL.Path).Msg("request rejected")
	}

	abortWithError(c, domainErr.HTTPStatus, domainErr.Code, domainErr.Message, domainErr.Details)
}

// NotFound returns a 404 handler.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, domainerrors.ErrCodeNotFound, "resource not found", c.Request.URL.Path)
	}
}

// MethodNotAllowed returns a 405 handler.
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		abortWithError(c, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", c.Request.Method)
	}
}

func abortWithError(c *gin.Context, status int, code, message, details string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/chat-relay/internal/api/dto"
	"github.com/unifiedui/chat-relay/internal/api/middleware"
	domainerrors "github.com/unifiedui/chat-relay/internal/domain/errors"
	"github.com/unifiedui/chat-relay/internal/services/quota"
)

// QuotaHandler exposes the visitor's own quota.
type QuotaHandler struct {
	store   quota.Store
	cookies CookieConfig
}

// NewQuotaHandler creates a new QuotaHandler.
func NewQuotaHandler(store quota.Store, cookies CookieConfig) *QuotaHandler {
	return &QuotaHandler{
		store:   store,
		cookies: cookies,
	}
}

// GetQuota handles GET /quota
// @Summary Get the visitor's quota
// @Description Reconciles the usage cookie with the server count and rewrites the cookie when they differ.
// @Tags Chat
// @Produce json
// @Success 200 {object} dto.QuotaResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/chat-relay/quota [get]
func (h *QuotaHandler) GetQuota(c *gin.Context) {
	result, err := h.store.Check(c.Request.Context(), c.ClientIP(), h.cookies.readUsage(c))
	if err != nil {
		middleware.HandleError(c, domainerrors.NewServiceUnavailableError("quota store", err))
		return
	}

	if result.SyncClient {
		h.cookies.setUsage(c, result.Record.Count)
	}

	c.JSON(http.StatusOK, dto.NewQuotaResponse(result.Record))
}

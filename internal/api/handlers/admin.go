package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/unifiedui/chat-relay/internal/api/dto"
	"github.com/unifiedui/chat-relay/internal/api/middleware"
	domainerrors "github.com/unifiedui/chat-relay/internal/domain/errors"
	"github.com/unifiedui/chat-relay/internal/services/audit"
	"github.com/unifiedui/chat-relay/internal/services/quota"
)

// AdminHandler handles the operator endpoints.
type AdminHandler struct {
	auditLog audit.Log
	store    quota.Store
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(auditLog audit.Log, store quota.Store) *AdminHandler {
	return &AdminHandler{
		auditLog: auditLog,
		store:    store,
	}
}

// ListMessages handles GET /admin/messages
// @Summary List stored message pairs
// @Description Returns stored message pairs newest first.
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Page size" default(20) minimum(1) maximum(100)
// @Param sessionId query string false "Filter by session"
// @Success 200 {object} dto.ListMessagesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/chat-relay/admin/messages [get]
func (h *AdminHandler) ListMessages(c *gin.Context) {
	var query dto.ListMessagesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid query parameters", err.Error()))
		return
	}

	page, err := h.auditLog.List(c.Request.Context(), &audit.ListOptions{
		Page:      valueOrZero(query.Page),
		Limit:     valueOrZero(query.Limit),
		SessionID: query.SessionID,
	})
	if err != nil {
		middleware.HandleError(c, domainerrors.NewInternalError("failed to list messages", err))
		return
	}

	c.JSON(http.StatusOK, dto.ListMessagesResponse{
		Messages:   page.Entries,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages(),
	})
}

// ResetQuota handles DELETE /admin/quotas/{ip}
// @Summary Reset one visitor's quota
// @Tags Admin
// @Produce json
// @Param ip path string true "Visitor address"
// @Success 200 {object} dto.ResetQuotaResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/chat-relay/admin/quotas/{ip} [delete]
func (h *AdminHandler) ResetQuota(c *gin.Context) {
	identity := strings.TrimSpace(c.Param("ip"))
	if identity == "" {
		middleware.HandleError(c, domainerrors.NewValidationError("visitor address is required", ""))
		return
	}

	deleted, err := h.store.Reset(c.Request.Context(), identity)
	if err != nil {
		middleware.HandleError(c, domainerrors.NewServiceUnavailableError("quota store", err))
		return
	}

	resp := dto.ResetQuotaResponse{}
	if deleted {
		resp.Deleted = 1
	}
	log.Info().Str("visitor", identity).Bool("deleted", deleted).Msg("quota reset")

	c.JSON(http.StatusOK, resp)
}

// ResetAllQuotas handles DELETE /admin/quotas
// @Summary Reset every visitor's quota
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.ResetQuotaResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/chat-relay/admin/quotas [delete]
func (h *AdminHandler) ResetAllQuotas(c *gin.Context) {
	deleted, err := h.store.ResetAll(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, domainerrors.NewServiceUnavailableError("quota store", err))
		return
	}

	log.Info().Int64("deleted", deleted).Msg("all quotas reset")
	c.JSON(http.StatusOK, dto.ResetQuotaResponse{Deleted: deleted})
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

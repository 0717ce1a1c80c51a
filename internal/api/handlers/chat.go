// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/chat-relay/internal/api/dto"
	"github.com/unifiedui/chat-relay/internal/api/middleware"
	domainerrors "github.com/unifiedui/chat-relay/internal/domain/errors"
	"github.com/unifiedui/chat-relay/internal/services/relay"
)

// ChatHandler handles the chat relay endpoint.
type ChatHandler struct {
	relay   relay.Service
	cookies CookieConfig
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(relayService relay.Service, cookies CookieConfig) *ChatHandler {
	return &ChatHandler{
		relay:   relayService,
		cookies: cookies,
	}
}

// Talk handles POST /talk
// @Summary Send a message to a coach
// @Description Relays one visitor message to the selected coach and returns the reply.
// @Description Reads and refreshes the usage and session cookies.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ChatResponse "Message limit reached"
// @Failure 502 {object} dto.ChatResponse "Assistant provider failure"
// @Failure 503 {object} dto.ChatResponse "Relay not configured"
// @Failure 504 {object} dto.ChatResponse "Assistant timeout"
// @Router /api/v1/chat-relay/talk [post]
func (h *ChatHandler) Talk(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result := h.relay.HandleChat(c.Request.Context(), &relay.ChatRequest{
		Message:         sanitizeText(req.Message),
		AssistantKey:    sanitizeText(req.Assistant),
		VisitorIdentity: c.ClientIP(),
		SessionCookie:   h.cookies.readSession(c),
		QuotaCookie:     h.cookies.readUsage(c),
	})

	if result.Session != nil && result.Session.Issued {
		h.cookies.setSession(c, result.Session.CookieValue)
	}
	if result.Quota != nil && result.SyncQuotaCookie {
		h.cookies.setUsage(c, result.Quota.Count)
	}

	resp := dto.ChatResponse{
		OK:        result.OK,
		Assistant: result.Profile.Name,
		Quota:     dto.NewQuotaResponse(result.Quota),
	}

	if result.OK {
		resp.Reply = result.Reply
		c.JSON(http.StatusOK, resp)
		return
	}

	resp.Code = result.Error.Code
	resp.Message = result.Error.Message
	if result.Error.Code == domainerrors.ErrCodeQuotaExceeded {
		resp.UpsellURL = result.Error.Details
	}
	c.JSON(result.Error.HTTPStatus, resp)
}

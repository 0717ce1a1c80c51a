package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/chat-relay/internal/api/dto"
	"github.com/unifiedui/chat-relay/internal/api/middleware"
	domainerrors "github.com/unifiedui/chat-relay/internal/domain/errors"
	"github.com/unifiedui/chat-relay/internal/services/relay"
)

// AssistantsHandler lists the coach profiles.
type AssistantsHandler struct {
	profiles *relay.Profiles
}

// NewAssistantsHandler creates a new AssistantsHandler.
func NewAssistantsHandler(profiles *relay.Profiles) *AssistantsHandler {
	return &AssistantsHandler{
		profiles: profiles,
	}
}

// ListAssistants handles GET /assistants
// @Summary List coaches
// @Tags Assistants
// @Produce json
// @Success 200 {object} dto.ListAssistantsResponse
// @Router /api/v1/chat-relay/assistants [get]
func (h *AssistantsHandler) ListAssistants(c *gin.Context) {
	profiles := h.profiles.All()

	resp := dto.ListAssistantsResponse{
		Assistants: make([]dto.AssistantResponse, 0, len(profiles)),
	}
	for _, profile := range profiles {
		resp.Assistants = append(resp.Assistants, dto.NewAssistantResponse(profile))
	}

	c.JSON(http.StatusOK, resp)
}

// GetAssistant handles GET /assistants/{key}
// @Summary Get a coach
// @Tags Assistants
// @Produce json
// @Param key path string true "Coach key"
// @Success 200 {object} dto.AssistantResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/chat-relay/assistants/{key} [get]
func (h *AssistantsHandler) GetAssistant(c *gin.Context) {
	key := c.Param("key")

	profile, ok := h.profiles.Lookup(key)
	if !ok {
		middleware.HandleError(c, domainerrors.NewNotFoundError("assistant", key))
		return
	}

	c.JSON(http.StatusOK, dto.NewAssistantResponse(profile))
}

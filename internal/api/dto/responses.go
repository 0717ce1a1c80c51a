package dto

import (
	"time"

	"github.com/unifiedui/chat-relay/internal/domain/models"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// ChatResponse represents the outcome of a chat message.
type ChatResponse struct {
	OK      bool   `json:"ok"`
	Reply   string `json:"reply,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	// UpsellURL is set when the quota is used up.
	UpsellURL string         `json:"upsellUrl,omitempty"`
	Assistant string         `json:"assistant,omitempty"`
	Quota     *QuotaResponse `json:"quota,omitempty"`
}

// QuotaResponse represents the visitor's message allowance.
type QuotaResponse struct {
	Count        int        `json:"count"`
	Limit        int        `json:"limit"`
	Remaining    int        `json:"remaining"`
	LimitReached bool       `json:"limitReached"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

// NewQuotaResponse converts a quota record.
func NewQuotaResponse(record *models.QuotaRecord) *QuotaResponse {
	if record == nil {
		return nil
	}

	resp := &QuotaResponse{
		Count:        record.Count,
		Limit:        record.Limit,
		Remaining:    record.Remaining(),
		LimitReached: !record.Allowed(),
	}
	if !record.ExpiresAt.IsZero() {
		expiresAt := record.ExpiresAt.UTC()
		resp.ExpiresAt = &expiresAt
	}
	return resp
}

// AssistantResponse represents a coach profile.
type AssistantResponse struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	Title      string `json:"title,omitempty"`
	Configured bool   `json:"configured"`
}

// NewAssistantResponse converts a coach profile without its provider id.
func NewAssistantResponse(profile models.AssistantProfile) AssistantResponse {
	return AssistantResponse{
		Key:        profile.Key,
		Name:       profile.Name,
		Title:      profile.Title,
		Configured: profile.Configured(),
	}
}

// ListAssistantsResponse represents the list of coach profiles.
type ListAssistantsResponse struct {
	Assistants []AssistantResponse `json:"assistants"`
}

// ListMessagesResponse represents one page of stored message pairs.
type ListMessagesResponse struct {
	Messages   []*models.AuditEntry `json:"messages"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	Total      int64                `json:"total"`
	TotalPages int                  `json:"totalPages"`
}

// ResetQuotaResponse represents the outcome of a quota reset.
type ResetQuotaResponse struct {
	Deleted int64 `json:"deleted"`
}

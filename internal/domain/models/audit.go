// Package models contains domain models for the chat relay.
package models

import (
	"time"

	"github.com/google/uuid"
)

// EmptyAssistantMessage is stored when a pair is recorded without assistant text.
const EmptyAssistantMessage = "No response received from assistant."

// AuditEntry is one persisted user/assistant message pair.
// Failed requests store the error text as the assistant message.
type AuditEntry struct {
	ID               string    `json:"id" bson:"_id"`
	VisitorIdentity  string    `json:"visitorIdentity" bson:"ipAddress"`
	SessionID        string    `json:"sessionId" bson:"sessionId"`
	AssistantName    string    `json:"assistantName" bson:"assistantName"`
	UserMessage      string    `json:"userMessage" bson:"userMessage"`
	AssistantMessage string    `json:"assistantMessage" bson:"assistantMessage"`
	Failed           bool      `json:"failed" bson:"failed"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
}

// NewAuditEntry creates an audit entry with a fresh ID and timestamp.
func NewAuditEntry(visitorIdentity, sessionID, assistantName, userMessage, assistantMessage string, failed bool) *AuditEntry {
	if assistantMessage == "" {
		assistantMessage = EmptyAssistantMessage
	}
	return &AuditEntry{
		ID:               uuid.NewString(),
		VisitorIdentity:  visitorIdentity,
		SessionID:        sessionID,
		AssistantName:    assistantName,
		UserMessage:      userMessage,
		AssistantMessage: assistantMessage,
		Failed:           failed,
		CreatedAt:        time.Now().UTC(),
	}
}

package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/chat-relay/internal/domain/models"
)

func TestThreadMessage_UnmarshalJSON_Blocks(t *testing.T) {
	payload := `{
		"id": "msg_1",
		"role": "assistant",
		"content": [
			{"type": "text", "text": {"value": "Hi", "annotations": []}},
			{"type": "image_file", "image_file": {"file_id": "file_9"}},
			{"type": "refusal", "refusal": "no"},
			{"text": {"value": "typeless"}},
			"garbage",
			{"type": "text"}
		]
	}`

	var msg models.ThreadMessage
	require.NoError(t, json.Unmarshal([]byte(payload), &msg))

	assert.Equal(t, "msg_1", msg.ID)
	assert.Equal(t, models.RoleAssistant, msg.Role)
	assert.Equal(t, []models.ContentBlock{
		models.TextBlock{Value: "Hi"},
		models.ImageFileBlock{FileID: "file_9"},
		models.UnsupportedBlock{Type: "refusal"},
		models.TextBlock{},
	}, msg.Content)
}

func TestThreadMessage_UnmarshalJSON_NoContent(t *testing.T) {
	var msg models.ThreadMessage
	require.NoError(t, json.Unmarshal([]byte(`{"id":"m","role":"user"}`), &msg))

	assert.Equal(t, models.RoleUser, msg.Role)
	assert.Empty(t, msg.Content)
}

func TestRunStatus_Failed(t *testing.T) {
	for _, status := range []models.RunStatus{models.RunStatusFailed, models.RunStatusCancelled, models.RunStatusExpired} {
		assert.True(t, status.Failed(), status)
	}
	for _, status := range []models.RunStatus{models.RunStatusQueued, models.RunStatusInProgress, models.RunStatusCompleted, "unknown"} {
		assert.False(t, status.Failed(), status)
	}
}

func TestQuotaRecord_Allowance(t *testing.T) {
	record := &models.QuotaRecord{Count: 4, Limit: 5}
	assert.True(t, record.Allowed())
	assert.Equal(t, 1, record.Remaining())

	record.Count = 5
	assert.False(t, record.Allowed())
	assert.Equal(t, 0, record.Remaining())
}

func TestNewAuditEntry_DefaultsEmptyAssistantMessage(t *testing.T) {
	entry := models.NewAuditEntry("10.0.0.1", "sess", "Hellen", "hello", "", false)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, models.EmptyAssistantMessage, entry.AssistantMessage)
	assert.False(t, entry.CreatedAt.IsZero())
}

package reply_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/chat-relay/internal/domain/models"
	"github.com/unifiedui/chat-relay/internal/services/reply"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		messages []models.ThreadMessage
		expected string
		found    bool
	}{
		{
			name: "text then image",
			messages: []models.ThreadMessage{{
				Role:    models.RoleAssistant,
				Content: []models.ContentBlock{models.TextBlock{Value: "Hi"}, models.ImageFileBlock{}},
			}},
			expected: "Hi[Image response received, but cannot display images in this chat.]",
			found:    true,
		},
		{
			name:     "no content blocks",
			messages: []models.ThreadMessage{{Role: models.RoleAssistant}},
			expected: "No response content found.",
			found:    true,
		},
		{
			name: "empty text",
			messages: []models.ThreadMessage{{
				Role:    models.RoleAssistant,
				Content: []models.ContentBlock{models.TextBlock{}},
			}},
			expected: "No response content found.",
			found:    true,
		},
		{
			name: "unsupported block",
			messages: []models.ThreadMessage{{
				Role:    models.RoleAssistant,
				Content: []models.ContentBlock{models.UnsupportedBlock{Type: "image_url"}},
			}},
			expected: "[Unsupported content type: image_url]",
			found:    true,
		},
		{
			name: "first assistant message only",
			messages: []models.ThreadMessage{
				{Role: models.RoleUser, Content: []models.ContentBlock{models.TextBlock{Value: "question"}}},
				{Role: models.RoleAssistant, Content: []models.ContentBlock{models.TextBlock{Value: "latest"}}},
				{Role: models.RoleAssistant, Content: []models.ContentBlock{models.TextBlock{Value: "older"}}},
			},
			expected: "latest",
			found:    true,
		},
		{
			name: "no assistant message",
			messages: []models.ThreadMessage{
				{Role: models.RoleUser, Content: []models.ContentBlock{models.TextBlock{Value: "question"}}},
			},
			found: false,
		},
		{
			name:  "no messages",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, found := reply.Extract(tt.messages)

			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestExtract_FromProviderPayload(t *testing.T) {
	payload := `[{"id":"msg_1","role":"assistant","content":[
		{"type":"text","text":{"value":"Step one. "}},
		{"text":{"value":"ignored, no type"}},
		{"type":"image_file","image_file":{"file_id":"file_1"}},
		{"type":"refusal"}
	]}]`

	var messages []models.ThreadMessage
	require.NoError(t, json.Unmarshal([]byte(payload), &messages))

	text, found := reply.Extract(messages)

	assert.True(t, found)
	assert.Equal(t, "Step one. [Image response received, but cannot display images in this chat.][Unsupported content type: refusal]", text)
}

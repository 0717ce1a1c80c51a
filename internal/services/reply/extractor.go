// Package reply turns fetched thread messages into the text shown to the visitor.
package reply

import (
	"fmt"
	"strings"

	"github.com/unifiedui/chat-relay/internal/domain/models"
)

const (
	// ImagePlaceholder replaces image blocks the chat cannot render.
	ImagePlaceholder = "[Image response received, but cannot display images in this chat.]"

	// EmptyPlaceholder is returned when the assistant message has no usable content.
	EmptyPlaceholder = "No response content found."

	unsupportedFormat = "[Unsupported content type: %s]"
)

// Extract renders the first assistant message of messages.
// The second result is false when no assistant message exists.
func Extract(messages []models.ThreadMessage) (string, bool) {
	for _, message := range messages {
		if message.Role != models.RoleAssistant {
			continue
		}

		var b strings.Builder
		for _, block := range message.Content {
			b.WriteString(Render(block))
		}

		if b.Len() == 0 {
			return EmptyPlaceholder, true
		}
		return b.String(), true
	}

	return "", false
}

// Render returns the visitor-facing text of one content block.
func Render(block models.ContentBlock) string {
	switch b := block.(type) {
	case models.TextBlock:
		return b.Value
	case models.ImageFileBlock:
		return ImagePlaceholder
	case models.UnsupportedBlock:
		return fmt.Sprintf(unsupportedFormat, b.Type)
	default:
		return ""
	}
}

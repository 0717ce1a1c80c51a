package models

import (
	"encoding/json"
	"fmt"
)

// MessageRole represents the role of a message sender.
type MessageRole string

const (
	// RoleUser represents a message from the visitor.
	RoleUser MessageRole = "user"
	// RoleAssistant represents a message from the assistant.
	RoleAssistant MessageRole = "assistant"
)

// RunStatus is the provider-side status of an assistant run.
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusExpired        RunStatus = "expired"
)

// Failed reports whether the status ends the run without a reply.
func (s RunStatus) Failed() bool {
	switch s {
	case RunStatusFailed, RunStatusCancelled, RunStatusExpired:
		return true
	}
	return false
}

// RunError is the error detail a provider attaches to a failed run.
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Run is one assistant processing attempt on a thread.
type Run struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	Status    RunStatus `json:"status"`
	LastError *RunError `json:"last_error,omitempty"`
}

// ContentBlock is one piece of a thread message: TextBlock, ImageFileBlock or UnsupportedBlock.
type ContentBlock interface {
	contentBlock()
}

// TextBlock carries assistant text.
type TextBlock struct {
	Value string
}

// ImageFileBlock references a generated image file.
type ImageFileBlock struct {
	FileID string
}

// UnsupportedBlock is any block type the relay cannot render.
type UnsupportedBlock struct {
	Type string
}

func (TextBlock) contentBlock()        {}
func (ImageFileBlock) contentBlock()   {}
func (UnsupportedBlock) contentBlock() {}

// ThreadMessage is a message fetched from a provider thread.
type ThreadMessage struct {
	ID      string
	Role    MessageRole
	Content []ContentBlock
}

type rawContentBlock struct {
	Type string `json:"type"`
	Text *struct {
		Value string `json:"value"`
	} `json:"text"`
	ImageFile *struct {
		FileID string `json:"file_id"`
	} `json:"image_file"`
}

// UnmarshalJSON decodes the provider message shape into typed content blocks.
// Blocks without a type are dropped.
func (m *ThreadMessage) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      string            `json:"id"`
		Role    MessageRole       `json:"role"`
		Content []json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode thread message: %w", err)
	}

	m.ID = raw.ID
	m.Role = raw.Role
	m.Content = make([]ContentBlock, 0, len(raw.Content))

	for _, item := range raw.Content {
		var block rawContentBlock
		// A block that is not an object is skipped like a block with no type.
		if err := json.Unmarshal(item, &block); err != nil || block.Type == "" {
			continue
		}

		switch block.Type {
		case "text":
			text := TextBlock{}
			if block.Text != nil {
				text.Value = block.Text.Value
			}
			m.Content = append(m.Content, text)
		case "image_file":
			image := ImageFileBlock{}
			if block.ImageFile != nil {
				image.FileID = block.ImageFile.FileID
			}
			m.Content = append(m.Content, image)
		default:
			m.Content = append(m.Content, UnsupportedBlock{Type: block.Type})
		}
	}

	return nil
}

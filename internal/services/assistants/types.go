// Package assistants defines the assistant provider client used by the relay.
package assistants

import (
	"context"
	"fmt"

	domainerrors "github.com/unifiedui/chat-relay/internal/domain/errors"
	"github.com/unifiedui/chat-relay/internal/domain/models"
)

// Client drives one conversation turn against an assistant provider.
// Every method returns a *domainerrors.DomainError on failure.
type Client interface {
	// Configured reports whether the client holds a provider credential.
	Configured() bool

	// CreateThread creates an empty thread and returns its id.
	CreateThread(ctx context.Context) (string, error)

	// PostMessage appends the visitor's text to the thread as a user message.
	PostMessage(ctx context.Context, threadID, content string) error

	// StartRun asks the assistant to process the thread and returns the run id.
	StartRun(ctx context.Context, threadID, assistantID string) (string, error)

	// PollRun waits until the run completes and returns it.
	PollRun(ctx context.Context, threadID, runID string) (*models.Run, error)

	// ListMessages returns the thread messages, newest first.
	ListMessages(ctx context.Context, threadID string) ([]models.ThreadMessage, error)
}

// NewRunTimeoutError is returned when no reply arrived within attempts status checks.
func NewRunTimeoutError(attempts int) *domainerrors.DomainError {
	return domainerrors.NewProviderError(domainerrors.ErrCodeRunTimeout,
		fmt.Sprintf("Assistant took too long to respond or no response was found after %d seconds.", attempts), nil)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/chat-relay/internal/domain/models"
)

// MockAssistantClient is a mock implementation of assistants.Client.
type MockAssistantClient struct {
	mock.Mock
	// Unconfigured makes Configured report a missing credential.
	Unconfigured bool
}

// Configured reports whether the client holds a credential.
func (m *MockAssistantClient) Configured() bool {
	return !m.Unconfigured
}

// CreateThread creates a thread.
func (m *MockAssistantClient) CreateThread(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// PostMessage posts a user message.
func (m *MockAssistantClient) PostMessage(ctx context.Context, threadID, content string) error {
	args := m.Called(ctx, threadID, content)
	return args.Error(0)
}

// StartRun starts a run.
func (m *MockAssistantClient) StartRun(ctx context.Context, threadID, assistantID string) (string, error) {
	args := m.Called(ctx, threadID, assistantID)
	return args.String(0), args.Error(1)
}

// PollRun polls a run.
func (m *MockAssistantClient) PollRun(ctx context.Context, threadID, runID string) (*models.Run, error) {
	args := m.Called(ctx, threadID, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Run), args.Error(1)
}

// ListMessages lists thread messages.
func (m *MockAssistantClient) ListMessages(ctx context.Context, threadID string) ([]models.ThreadMessage, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ThreadMessage), args.Error(1)
}

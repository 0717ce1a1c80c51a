package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/chat-relay/internal/services/relay"
)

// MockRelayService is a mock implementation of relay.Service.
type MockRelayService struct {
	mock.Mock
}

// HandleChat relays a chat request.
func (m *MockRelayService) HandleChat(ctx context.Context, req *relay.ChatRequest) *relay.ChatResult {
	args := m.Called(ctx, req)
	return args.Get(0).(*relay.ChatResult)
}

package openai

import (
	"context"
	"net/http"
	"time"

	"github.com/unifiedui/chat-relay/internal/domain/models"
)

const (
	// DefaultBaseURL is the public OpenAI API endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultBetaHeader selects the Assistants v2 API.
	DefaultBetaHeader = "assistants=v2"

	// DefaultRequestTimeout bounds every single API call.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultPollInterval is the fixed delay between run status checks.
	DefaultPollInterval = time.Second

	// DefaultPollMaxAttempts is the number of run status checks before giving up.
	DefaultPollMaxAttempts = 60
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ClientConfig holds the configuration for the OpenAI Assistants client.
type ClientConfig struct {
	BaseURL         string
	APIKey          string
	BetaHeader      string
	HTTPClient      *http.Client
	RequestTimeout  time.Duration
	PollInterval    time.Duration
	PollMaxAttempts int
	// Sleep overrides the wait between status checks in tests.
	Sleep SleepFunc
}

// apiError is the error envelope of the OpenAI API.
type apiError struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (e apiError) message() string {
	if e.Error == nil || e.Error.Message == "" {
		return "Unknown error"
	}
	return e.Error.Message
}

type createThreadResponse struct {
	apiError
	ID string `json:"id"`
}

type postMessageRequest struct {
	Role    models.MessageRole `json:"role"`
	Content string             `json:"content"`
}

type startRunRequest struct {
	AssistantID string `json:"assistant_id"`
}

type startRunResponse struct {
	apiError
	ID string `json:"id"`
}

type listMessagesResponse struct {
	Object string                 `json:"object"`
	Data   []models.ThreadMessage `json:"data"`
}

// Package openai provides the OpenAI Assistants v2 client implementation.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	domainerrors "github.com/unifiedui/chat-relay/internal/domain/errors"
	"github.com/unifiedui/chat-relay/internal/domain/models"
	"github.com/unifiedui/chat-relay/internal/services/assistants"
)

// Client implements assistants.Client for the OpenAI Assistants API.
type Client struct {
	baseURL         string
	apiKey          string
	betaHeader      string
	httpClient      *http.Client
	pollInterval    time.Duration
	pollMaxAttempts int
	sleep           SleepFunc
}

var _ assistants.Client = (*Client)(nil)

// NewClient creates a new OpenAI Assistants client.
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	betaHeader := config.BetaHeader
	if betaHeader == "" {
		betaHeader = DefaultBetaHeader
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.RequestTimeout
		if timeout <= 0 {
			timeout = DefaultRequestTimeout
		}
		httpClient = &http.Client{
			Timeout: timeout,
		}
	}

	pollInterval := config.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	pollMaxAttempts := config.PollMaxAttempts
	if pollMaxAttempts <= 0 {
		pollMaxAttempts = DefaultPollMaxAttempts
	}
	sleep := config.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	return &Client{
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		apiKey:          config.APIKey,
		betaHeader:      betaHeader,
		httpClient:      httpClient,
		pollInterval:    pollInterval,
		pollMaxAttempts: pollMaxAttempts,
		sleep:           sleep,
	}, nil
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// PollMaxAttempts returns the number of status checks made before timing out.
func (c *Client) PollMaxAttempts() int {
	return c.pollMaxAttempts
}

// CreateThread creates an empty thread and returns its id.
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/threads", struct{}{})
	if err != nil {
		return "", domainerrors.NewProviderError(domainerrors.ErrCodeThreadCreationFailed,
			"Failed to create thread: "+err.Error(), err)
	}

	var resp createThreadResponse
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		log.Error().Str("body", truncate(body)).Msg("thread creation returned no id")
		return "", domainerrors.NewProviderError(domainerrors.ErrCodeThreadCreationFailed,
			"Failed to initialize conversation: "+resp.message(), nil)
	}

	log.Debug().Str("thread_id", resp.ID).Msg("thread created")
	return resp.ID, nil
}

// PostMessage appends the visitor's text to the thread.
// Only a transport failure is an error; the response body is not inspected.
func (c *Client) PostMessage(ctx context.Context, threadID, content string) error {
	path := fmt.Sprintf("/threads/%s/messages", threadID)

	body, err := c.do(ctx, http.MethodPost, path, &postMessageRequest{
		Role:    models.RoleUser,
		Content: content,
	})
	if err != nil {
		return domainerrors.NewProviderError(domainerrors.ErrCodeMessageSendFailed,
			"Failed to send message: "+err.Error(), err)
	}

	log.Debug().Str("thread_id", threadID).Str("body", truncate(body)).Msg("message posted")
	return nil
}

// StartRun asks the assistant to process the thread and returns the run id.
func (c *Client) StartRun(ctx context.Context, threadID, assistantID string) (string, error) {
	path := fmt.Sprintf("/threads/%s/runs", threadID)

	body, err := c.do(ctx, http.MethodPost, path, &startRunRequest{AssistantID: assistantID})
	if err != nil {
		return "", domainerrors.NewProviderError(domainerrors.ErrCodeRunCreationFailed,
			"Failed to process assistant response: "+err.Error(), err)
	}

	var resp startRunResponse
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		log.Error().Str("thread_id", threadID).Str("body", truncate(body)).Msg("run creation returned no id")
		return "", domainerrors.NewProviderError(domainerrors.ErrCodeRunCreationFailed,
			"Failed to process your request: "+resp.message(), nil)
	}

	log.Debug().Str("thread_id", threadID).Str("run_id", resp.ID).Msg("run started")
	return resp.ID, nil
}

// PollRun checks the run status on a fixed interval until it completes, fails or
// the attempts run out. No wait follows the final attempt.
func (c *Client) PollRun(ctx context.Context, threadID, runID string) (*models.Run, error) {
	path := fmt.Sprintf("/threads/%s/runs/%s", threadID, runID)

	for attempt := 1; attempt <= c.pollMaxAttempts; attempt++ {
		body, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			return nil, domainerrors.NewProviderError(domainerrors.ErrCodeRunFailed,
				"Failed to check run status: "+err.Error(), err)
		}

		var run models.Run
		_ = json.Unmarshal(body, &run)

		log.Debug().
			Str("thread_id", threadID).
			Str("run_id", runID).
			Int("attempt", attempt).
			Str("status", string(run.Status)).
			Msg("run status checked")

		if run.Status == models.RunStatusCompleted {
			return &run, nil
		}
		if run.Status.Failed() {
			message := fmt.Sprintf("run failed with status: %s", run.Status)
			if run.LastError != nil && run.LastError.Message != "" {
				message = run.LastError.Message
			}
			return nil, domainerrors.NewProviderError(domainerrors.ErrCodeRunFailed,
				"Assistant run failed: "+message, nil).WithDetails(message)
		}

		if attempt == c.pollMaxAttempts {
			break
		}
		if err := c.sleep(ctx, c.pollInterval); err != nil {
			break
		}
	}

	log.Warn().Str("thread_id", threadID).Str("run_id", runID).Msg("run did not complete in time")
	return nil, assistants.NewRunTimeoutError(c.pollMaxAttempts)
}

// ListMessages returns the thread messages, newest first.
func (c *Client) ListMessages(ctx context.Context, threadID string) ([]models.ThreadMessage, error) {
	path := fmt.Sprintf("/threads/%s/messages", threadID)

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, domainerrors.NewProviderError(domainerrors.ErrCodeMessagesFetchFailed,
			"Failed to retrieve messages: "+err.Error(), err)
	}

	var resp listMessagesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Warn().Err(err).Str("thread_id", threadID).Msg("failed to decode thread messages")
		return []models.ThreadMessage{}, nil
	}

	return resp.Data, nil
}

// do sends one API request and returns the raw response body.
// Only transport failures are errors; non-2xx bodies are returned for the caller to inspect.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, payload != nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		log.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("assistant provider returned an error status")
	}

	return body, nil
}

// setHeaders sets the required headers for OpenAI API requests.
func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("OpenAI-Beta", c.betaHeader)
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func truncate(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}

// Package relay drives one visitor message through quota, provider and audit.
package relay

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	domainerrors "github.com/unifiedui/chat-relay/internal/domain/errors"
	"github.com/unifiedui/chat-relay/internal/domain/models"
	"github.com/unifiedui/chat-relay/internal/services/assistants"
	"github.com/unifiedui/chat-relay/internal/services/audit"
	"github.com/unifiedui/chat-relay/internal/services/quota"
	"github.com/unifiedui/chat-relay/internal/services/reply"
	"github.com/unifiedui/chat-relay/internal/services/session"
)

const (
	// DefaultUpsellURL is where visitors without quota are sent.
	DefaultUpsellURL = "https://wai.waiheke.ai"

	errAPIKeyMissing      = "API key not configured."
	errAssistantIDMissing = "Assistant ID not configured for the selected coach."
	errMessageRequired    = "Message is required."
	quotaExceededFormat   = "You have used the %d messages available for today. Continue with a free trial to keep exploring, or come back tomorrow for %d more messages."
)

// ChatRequest is one visitor message.
type ChatRequest struct {
	Message         string
	AssistantKey    string
	VisitorIdentity string
	// SessionCookie is the presented session cookie value, empty if none.
	SessionCookie string
	// QuotaCookie is the presented usage count, nil if none.
	QuotaCookie *int
}

// ChatResult is the outcome of a chat request. Exactly one of Reply and Error is meaningful.
type ChatResult struct {
	OK    bool
	Reply string
	Error *domainerrors.DomainError

	Profile models.AssistantProfile
	// Session is nil when the request was rejected before a session was resolved.
	Session *session.Session
	// Quota is the latest known quota of the visitor, nil if it was never read.
	Quota *models.QuotaRecord
	// SyncQuotaCookie is set when the usage cookie must be rewritten from Quota.
	SyncQuotaCookie bool
}

// Service handles chat requests.
type Service interface {
	HandleChat(ctx context.Context, req *ChatRequest) *ChatResult
}

// Config holds the dependencies of the orchestrator.
type Config struct {
	Profiles   *Profiles
	// Assistants fails every request with a config error while it reports no credential.
	Assistants assistants.Client
	Quota      quota.Store
	Sessions   session.Manager
	Audit      audit.Log
	// PollAttempts is reported in the no-reply timeout message.
	PollAttempts int
	UpsellURL    string
}

// Orchestrator implements Service.
type Orchestrator struct {
	profiles     *Profiles
	assistants   assistants.Client
	quota        quota.Store
	sessions     session.Manager
	audit        audit.Log
	pollAttempts int
	upsellURL    string
}

var _ Service = (*Orchestrator)(nil)

// NewOrchestrator creates a new relay orchestrator.
func NewOrchestrator(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Profiles == nil {
		return nil, fmt.Errorf("profiles are required")
	}
	if cfg.Assistants == nil {
		return nil, fmt.Errorf("assistant client is required")
	}
	if cfg.Quota == nil {
		return nil, fmt.Errorf("quota store is required")
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if cfg.Audit == nil {
		return nil, fmt.Errorf("audit log is required")
	}

	pollAttempts := cfg.PollAttempts
	if pollAttempts <= 0 {
		pollAttempts = 60
	}
	upsellURL := cfg.UpsellURL
	if upsellURL == "" {
		upsellURL = DefaultUpsellURL
	}

	return &Orchestrator{
		profiles:     cfg.Profiles,
		assistants:   cfg.Assistants,
		quota:        cfg.Quota,
		sessions:     cfg.Sessions,
		audit:        cfg.Audit,
		pollAttempts: pollAttempts,
		upsellURL:    upsellURL,
	}, nil
}

// Profiles returns the configured coach profiles.
func (o *Orchestrator) Profiles() *Profiles {
	return o.profiles
}

// HandleChat relays one visitor message. It never returns a raw provider payload.
func (o *Orchestrator) HandleChat(ctx context.Context, req *ChatRequest) *ChatResult {
	result := &ChatResult{}
	message := strings.TrimSpace(req.Message)

	if message == "" {
		return result.fail(domainerrors.NewValidationError(errMessageRequired, ""))
	}

	if !o.assistants.Configured() {
		log.Error().Msg("provider API key not configured")
		return result.fail(domainerrors.NewConfigError(errAPIKeyMissing))
	}

	result.Profile = o.profiles.Select(req.AssistantKey)
	if !result.Profile.Configured() {
		log.Error().Str("assistant", result.Profile.Key).Msg("assistant id not configured")
		return result.fail(domainerrors.NewConfigError(errAssistantIDMissing))
	}

	logger := log.With().Str("assistant", result.Profile.Name).Logger()

	check, err := o.quota.Check(ctx, req.VisitorIdentity, req.QuotaCookie)
	if err != nil {
		logger.Error().Err(err).Msg("quota check failed")
		return result.fail(domainerrors.NewServiceUnavailableError("quota store", err))
	}
	result.Quota = check.Record
	result.SyncQuotaCookie = check.SyncClient

	if !check.Allowed() {
		logger.Info().Int("count", check.Record.Count).Msg("message limit reached")
		quotaErr := domainerrors.NewQuotaExceededError(fmt.Sprintf(quotaExceededFormat, check.Record.Limit, check.Record.Limit))
		quotaErr.Details = o.upsellURL
		return result.fail(quotaErr)
	}

	sess, err := o.sessions.GetOrCreate(req.SessionCookie)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve session")
		return result.fail(domainerrors.NewInternalError("failed to resolve session", err))
	}
	result.Session = sess
	logger = logger.With().Str("session_id", sess.ID).Logger()

	text, err := o.converse(logger.WithContext(ctx), result.Profile, message)
	if err != nil {
		domainErr, ok := domainerrors.GetDomainError(err)
		if !ok {
			domainErr = domainerrors.NewInternalError("unexpected assistant failure", err)
		}
		logger.Error().Err(err).Str("code", domainErr.Code).Msg("relay failed")

		o.audit.Append(ctx, models.NewAuditEntry(req.VisitorIdentity, sess.ID, result.Profile.Name, message,
			"Error: "+domainErr.Message, true))
		return result.fail(domainErr)
	}

	o.audit.Append(ctx, models.NewAuditEntry(req.VisitorIdentity, sess.ID, result.Profile.Name, message, text, false))

	record, err := o.quota.Increment(ctx, req.VisitorIdentity)
	if err != nil {
		logger.Error().Err(err).Msg("failed to increment quota")
	} else {
		result.Quota = record
		result.SyncQuotaCookie = true
	}

	result.OK = true
	result.Reply = text
	return result
}

// converse runs the provider exchange from thread creation to reply extraction.
func (o *Orchestrator) converse(ctx context.Context, profile models.AssistantProfile, message string) (string, error) {
	logger := log.Ctx(ctx)

	threadID, err := o.assistants.CreateThread(ctx)
	if err != nil {
		return "", err
	}
	logger.Debug().Str("thread_id", threadID).Msg("thread created")

	if err := o.assistants.PostMessage(ctx, threadID, message); err != nil {
		return "", err
	}

	runID, err := o.assistants.StartRun(ctx, threadID, profile.ProviderAssistantID)
	if err != nil {
		return "", err
	}
	logger.Debug().Str("thread_id", threadID).Str("run_id", runID).Msg("run started")

	if _, err := o.assistants.PollRun(ctx, threadID, runID); err != nil {
		return "", err
	}

	messages, err := o.assistants.ListMessages(ctx, threadID)
	if err != nil {
		return "", err
	}

	text, found := reply.Extract(messages)
	if !found {
		logger.Warn().Str("thread_id", threadID).Int("messages", len(messages)).Msg("completed run has no assistant message")
		return "", assistants.NewRunTimeoutError(o.pollAttempts)
	}

	return text, nil
}

func (r *ChatResult) fail(err *domainerrors.DomainError) *ChatResult {
	r.OK = false
	r.Error = err
	return r
}

package testutil

import (
	"time"

	"github.com/unifiedui/chat-relay/internal/domain/models"
)

// Test constants
const (
	TestVisitorIP    = "203.0.113.7"
	TestSessionID    = "sess-test-123"
	TestAssistantID  = "asst_test_hellen"
	TestAssistantID2 = "asst_test_george"
	TestThreadID     = "thread_test_abc"
	TestRunID        = "run_test_def"
)

// NewTestAuditEntry creates a completed message pair with default values.
func NewTestAuditEntry() *models.AuditEntry {
	entry := models.NewAuditEntry(TestVisitorIP, TestSessionID, "Hellen", "Hello", "Hi, how can I help?", false)
	entry.CreatedAt = time.Now().UTC()
	return entry
}

// NewTestQuotaRecord creates a quota record with the default cap.
func NewTestQuotaRecord(count int) *models.QuotaRecord {
	return &models.QuotaRecord{
		IdentityKey: "chat_limit:test",
		Count:       count,
		Limit:       5,
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	}
}

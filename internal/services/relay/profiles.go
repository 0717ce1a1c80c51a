package relay

import (
	"strings"

	"github.com/unifiedui/chat-relay/internal/domain/models"
)

// Profile keys accepted from the client.
const (
	ProfileHellen = "hellen"
	ProfileGeorge = "george"
)

// Profiles is the fixed set of coach personas in priority order.
type Profiles struct {
	ordered []models.AssistantProfile
}

// NewProfiles binds the coach personas to their provider assistant ids.
func NewProfiles(hellenID, georgeID string) *Profiles {
	return &Profiles{
		ordered: []models.AssistantProfile{
			{Key: ProfileHellen, Name: "Hellen", Title: "Vocational Coach", ProviderAssistantID: strings.TrimSpace(hellenID)},
			{Key: ProfileGeorge, Name: "George", Title: "Goal's Coach", ProviderAssistantID: strings.TrimSpace(georgeID)},
		},
	}
}

// All returns every profile in priority order.
func (p *Profiles) All() []models.AssistantProfile {
	return append([]models.AssistantProfile(nil), p.ordered...)
}

// Lookup returns the profile with the given key, ignoring case.
func (p *Profiles) Lookup(key string) (models.AssistantProfile, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, profile := range p.ordered {
		if profile.Key == key {
			return profile, true
		}
	}
	return models.AssistantProfile{}, false
}

// Select resolves the profile a chat request talks to.
// Unknown and empty keys fall back to the first configured profile in priority order,
// or to the first profile when none is configured.
func (p *Profiles) Select(key string) models.AssistantProfile {
	if profile, ok := p.Lookup(key); ok {
		return profile
	}
	for _, profile := range p.ordered {
		if profile.Configured() {
			return profile
		}
	}
	return p.ordered[0]
}

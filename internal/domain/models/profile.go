package models

// AssistantProfile is a named coach persona bound to a provider assistant.
type AssistantProfile struct {
	// Key is the client-facing selector, e.g. "hellen".
	Key  string `json:"key"`
	Name string `json:"name"`
	// Title is the human description shown next to the name.
	Title               string `json:"title,omitempty"`
	ProviderAssistantID string `json:"-"`
}

// Configured reports whether the profile has a provider assistant id.
func (p AssistantProfile) Configured() bool {
	return p.ProviderAssistantID != ""
}

package models

import "time"

// QuotaRecord is the reconciled view of a visitor's message allowance.
type QuotaRecord struct {
	IdentityKey string    `json:"-"`
	Count       int       `json:"count"`
	Limit       int       `json:"limit"`
	ExpiresAt   time.Time `json:"expiresAt,omitempty"`
	// Degraded is set when the store could not be read and a policy default was applied.
	Degraded bool `json:"-"`
}

// Allowed reports whether another message may be sent in the current window.
func (q *QuotaRecord) Allowed() bool {
	return q.Count < q.Limit
}

// Remaining returns how many messages are left in the current window.
func (q *QuotaRecord) Remaining() int {
	if q.Count >= q.Limit {
		return 0
	}
	return q.Limit - q.Count
}

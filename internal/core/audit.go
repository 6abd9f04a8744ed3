package core

import "time"

// AuditRecord is an append-only record of one evaluated authorization
// request. The resource field is recorded as received; redaction is the
// caller's concern, not the engine's.
type AuditRecord struct {
	// ID is the unique request ID (X-Correlation-ID)
	ID string `json:"id"`

	// Time is the timestamp of the decision
	Time time.Time `json:"time"`

	Principal string `json:"principal"`
	Action    string `json:"action"`
	Resource  string `json:"resource"`

	// Decision details
	Allow       bool   `json:"allow"`
	Reason      string `json:"reason"`
	MatchedRule string `json:"policy_rule,omitempty"`
	MandateID   string `json:"mandate_id,omitempty"`

	// IntentHash is the caller-side replay/integrity token, if any.
	IntentHash string `json:"intent_hash,omitempty"`

	// Duration is how long the evaluation took.
	Duration time.Duration `json:"duration"`
}

type Auditor interface {
	Log(record AuditRecord) error
	Close() error
}

// AuditReader is implemented by auditors that can be queried back, used
// by the admin audit endpoints.
type AuditReader interface {
	GetRecent(limit int) ([]AuditRecord, error)
	Find(filter func(record AuditRecord) bool, limit int) ([]AuditRecord, error)
}

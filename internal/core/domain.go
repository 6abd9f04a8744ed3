package core

// Effect is the outcome a rule produces when it matches.
type Effect string

const (
	EffectAllow Effect = "allow"
	EffectDeny  Effect = "deny"
)

// Valid reports whether the effect is one of the two known variants.
func (e Effect) Valid() bool {
	return e == EffectAllow || e == EffectDeny
}

// Rule is one ordered allow/deny entry in a policy document.
type Rule struct {
	// Name is a unique identifier for logs, audit records and traces.
	Name string `yaml:"name" json:"name"`

	// Effect decides what happens when the rule matches.
	Effect Effect `yaml:"effect" json:"effect"`

	// Principals, Actions and Resources are ordered glob pattern lists.
	// A rule matches a request when at least one pattern from each list
	// matches the corresponding request field.
	Principals []string `yaml:"principals" json:"principals"`
	Actions    []string `yaml:"actions" json:"actions"`
	Resources  []string `yaml:"resources" json:"resources"`

	// RequiredLabels must all be present on the request for an allow
	// rule to fire. Deny rules ignore this field.
	RequiredLabels []string `yaml:"required_labels,omitempty" json:"required_labels,omitempty"`

	// MaxDelegationDepth is reserved/advisory metadata. It is surfaced
	// on decisions but never enforced by the evaluator.
	MaxDelegationDepth *int `yaml:"max_delegation_depth,omitempty" json:"max_delegation_depth,omitempty"`
}

// PolicyDocument is an ordered, immutable rule set. Rule order is
// evaluation order and is preserved from the source document.
// Documents are constructed by the policy package and swapped whole;
// nothing mutates a document in place after validation.
type PolicyDocument struct {
	Version string `yaml:"version" json:"version"`
	Rules   []Rule `yaml:"rules" json:"rules"`
}

// AuthorizationRequest describes one action a principal wants to take.
type AuthorizationRequest struct {
	Principal string `json:"principal"`
	Action    string `json:"action"`
	Resource  string `json:"resource"`

	// Labels are caller-supplied context labels checked against a
	// matching allow rule's required_labels.
	Labels []string `json:"labels,omitempty"`

	// IntentHash correlates the decision with the caller's side for
	// replay/integrity checks. It participates in no matching logic.
	IntentHash string `json:"intent_hash,omitempty"`
}

// HasLabel reports whether the request carries the given label.
func (r *AuthorizationRequest) HasLabel(label string) bool {
	for _, l := range r.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// AuthorizationDecision is the result of evaluating a request.
type AuthorizationDecision struct {
	Allow  bool   `json:"allow"`
	Reason string `json:"reason"`

	// MatchedRule is the name of the rule that produced the decision,
	// empty for the default deny.
	MatchedRule string `json:"policy_rule,omitempty"`

	// MandateID is an opaque per-decision correlation token, set only
	// when Allow is true.
	MandateID string `json:"mandate_id,omitempty"`

	// MaxDelegationDepth carries the matched allow rule's advisory
	// delegation limit, if any.
	MaxDelegationDepth *int `json:"max_delegation_depth,omitempty"`
}

// Decision reason prefixes and the default-deny reason.
const (
	ReasonDeniedPrefix  = "denied_by_policy:"
	ReasonAllowedPrefix = "allowed_by_policy:"
	ReasonDefaultDeny   = "no_matching_allow_rule"
)

package core

// EvaluationTrace captures the detailed trace of a decision evaluation.
type EvaluationTrace struct {
	// CorrelationID is the unique identifier for the evaluation request.
	CorrelationID string `yaml:"correlation_id" json:"correlation_id"`

	// Request being evaluated.
	Request AuthorizationRequest `yaml:"request" json:"request"`

	// RuleResults contains the result of every rule evaluated, in the
	// order the evaluator visited them (denies first, then allows).
	RuleResults []RuleResult `yaml:"rule_results" json:"rule_results"`

	// Decision is the final decision the document produced.
	Decision AuthorizationDecision `yaml:"decision" json:"decision"`
}

// RuleResult captures why a specific rule matched or failed.
type RuleResult struct {
	RuleName     string        `yaml:"rule_name" json:"rule_name"`
	Effect       Effect        `yaml:"effect" json:"effect"`
	Matched      bool          `yaml:"matched" json:"matched"`
	FieldResults []FieldResult `yaml:"field_results,omitempty" json:"field_results,omitempty"`
}

// FieldResult is the outcome of matching one request field (or the
// label set) against a rule.
type FieldResult struct {
	Field   string `yaml:"field" json:"field"`
	Matched bool   `yaml:"matched" json:"matched"`
	Reason  string `yaml:"reason,omitempty" json:"reason,omitempty"`
}

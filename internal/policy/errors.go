package policy

import "fmt"

// ErrorKind classifies why a policy document was rejected.
type ErrorKind string

const (
	KindDuplicateRuleName ErrorKind = "DuplicateRuleName"
	KindEmptyPatternList  ErrorKind = "EmptyPatternList"
	KindInvalidEffect     ErrorKind = "InvalidEffect"
	KindMalformedPattern  ErrorKind = "MalformedPattern"
	KindMalformedDocument ErrorKind = "MalformedDocument"
)

// ValidationError is returned when a policy document fails to parse or
// validate. Rule names the offending rule when one is known, so
// operators can fix the policy source directly.
type ValidationError struct {
	Kind ErrorKind
	Rule string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("%s: rule %q: %v", e.Kind, e.Rule, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

package policy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/PredicateSystems/secureclaw/internal/core"
)

// Format selects the wire serialization of a policy document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath guesses the document format from a file extension,
// defaulting to YAML (the human-editable serialization).
func FormatForPath(path string) Format {
	if bytes.HasSuffix([]byte(path), []byte(".json")) {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes and validates a policy document. It returns either a
// fully validated, immutable document or a *ValidationError; a document
// is never partially applied.
func Parse(raw []byte, format Format) (*core.PolicyDocument, error) {
	var doc core.PolicyDocument

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, &ValidationError{Kind: KindMalformedDocument, Err: err}
		}
	case FormatYAML:
		if err := yaml.UnmarshalWithOptions(raw, &doc, yaml.Strict()); err != nil {
			return nil, &ValidationError{Kind: KindMalformedDocument, Err: err}
		}
	default:
		return nil, &ValidationError{Kind: KindMalformedDocument, Err: fmt.Errorf("unknown format %q", format)}
	}

	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the document invariants: unique non-empty rule names,
// a known effect and non-empty, well-formed pattern lists per rule.
func Validate(doc *core.PolicyDocument) error {
	seenNames := make(map[string]struct{}, len(doc.Rules))

	for i, rule := range doc.Rules {
		if rule.Name == "" {
			return &ValidationError{
				Kind: KindMalformedDocument,
				Err:  fmt.Errorf("rule #%d missing name", i),
			}
		}
		if _, exists := seenNames[rule.Name]; exists {
			return &ValidationError{
				Kind: KindDuplicateRuleName,
				Rule: rule.Name,
				Err:  fmt.Errorf("rule name %q is not unique", rule.Name),
			}
		}
		seenNames[rule.Name] = struct{}{}

		if !rule.Effect.Valid() {
			return &ValidationError{
				Kind: KindInvalidEffect,
				Rule: rule.Name,
				Err:  fmt.Errorf("unknown effect %q", rule.Effect),
			}
		}

		for _, pl := range []struct {
			field    string
			patterns []string
		}{
			{"principals", rule.Principals},
			{"actions", rule.Actions},
			{"resources", rule.Resources},
		} {
			if len(pl.patterns) == 0 {
				return &ValidationError{
					Kind: KindEmptyPatternList,
					Rule: rule.Name,
					Err:  fmt.Errorf("%s must not be empty", pl.field),
				}
			}
			for _, pattern := range pl.patterns {
				if err := core.ValidatePattern(pattern); err != nil {
					return &ValidationError{
						Kind: KindMalformedPattern,
						Rule: rule.Name,
						Err:  fmt.Errorf("%s pattern %q: %w", pl.field, pattern, err),
					}
				}
			}
		}

		if rule.MaxDelegationDepth != nil && *rule.MaxDelegationDepth < 0 {
			return &ValidationError{
				Kind: KindMalformedDocument,
				Rule: rule.Name,
				Err:  errors.New("max_delegation_depth must not be negative"),
			}
		}
	}

	return nil
}

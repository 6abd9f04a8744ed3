package policy

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/PredicateSystems/secureclaw/internal/core"
)

func TestParse_JSON(t *testing.T) {
	raw := []byte(`{
		"version": "1.0",
		"rules": [
			{
				"name": "deny-aws",
				"effect": "deny",
				"principals": ["*"],
				"actions": ["fs.read", "fs.write"],
				"resources": ["*/.aws/*"]
			},
			{
				"name": "allow-read",
				"effect": "allow",
				"principals": ["agent:*"],
				"actions": ["fs.read"],
				"resources": ["*"],
				"required_labels": ["reviewed"],
				"max_delegation_depth": 3
			}
		]
	}`)

	doc, err := Parse(raw, FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	depth := 3
	want := &core.PolicyDocument{
		Version: "1.0",
		Rules: []core.Rule{
			{
				Name:       "deny-aws",
				Effect:     core.EffectDeny,
				Principals: []string{"*"},
				Actions:    []string{"fs.read", "fs.write"},
				Resources:  []string{"*/.aws/*"},
			},
			{
				Name:               "allow-read",
				Effect:             core.EffectAllow,
				Principals:         []string{"agent:*"},
				Actions:            []string{"fs.read"},
				Resources:          []string{"*"},
				RequiredLabels:     []string{"reviewed"},
				MaxDelegationDepth: &depth,
			},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_YAML(t *testing.T) {
	raw := []byte(`
version: "1.0"
rules:
  - name: allow-all-reads
    effect: allow
    principals: ["*"]
    actions: ["fs.read"]
    resources: ["*"]
`)
	doc, err := Parse(raw, FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(doc.Rules) != 1 || doc.Rules[0].Name != "allow-all-reads" {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestParse_ValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind ErrorKind
		wantRule string
	}{
		{
			name:     "Malformed JSON",
			raw:      `{"version": "1.0", "rules": [`,
			wantKind: KindMalformedDocument,
		},
		{
			name: "Unknown Field",
			raw: `{"version": "1.0", "rules": [
				{"name": "r", "effect": "allow", "principals": ["*"], "actions": ["*"], "resources": ["*"], "bogus": 1}
			]}`,
			wantKind: KindMalformedDocument,
		},
		{
			name: "Duplicate Rule Name",
			raw: `{"version": "1.0", "rules": [
				{"name": "r", "effect": "allow", "principals": ["*"], "actions": ["*"], "resources": ["*"]},
				{"name": "r", "effect": "deny", "principals": ["*"], "actions": ["*"], "resources": ["*"]}
			]}`,
			wantKind: KindDuplicateRuleName,
			wantRule: "r",
		},
		{
			name: "Unknown Effect",
			raw: `{"version": "1.0", "rules": [
				{"name": "r", "effect": "audit", "principals": ["*"], "actions": ["*"], "resources": ["*"]}
			]}`,
			wantKind: KindInvalidEffect,
			wantRule: "r",
		},
		{
			name: "Empty Pattern List",
			raw: `{"version": "1.0", "rules": [
				{"name": "r", "effect": "allow", "principals": ["*"], "actions": [], "resources": ["*"]}
			]}`,
			wantKind: KindEmptyPatternList,
			wantRule: "r",
		},
		{
			name: "Empty Pattern",
			raw: `{"version": "1.0", "rules": [
				{"name": "r", "effect": "allow", "principals": ["*"], "actions": [""], "resources": ["*"]}
			]}`,
			wantKind: KindMalformedPattern,
			wantRule: "r",
		},
		{
			name: "Missing Rule Name",
			raw: `{"version": "1.0", "rules": [
				{"effect": "allow", "principals": ["*"], "actions": ["*"], "resources": ["*"]}
			]}`,
			wantKind: KindMalformedDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw), FormatJSON)
			if err == nil {
				t.Fatalf("Parse() expected error, got nil")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Parse() error = %T, want *ValidationError", err)
			}
			if verr.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", verr.Kind, tt.wantKind)
			}
			if verr.Rule != tt.wantRule {
				t.Errorf("Rule = %q, want %q", verr.Rule, tt.wantRule)
			}
		})
	}
}

func TestParse_ZeroRulesIsValid(t *testing.T) {
	doc, err := Parse([]byte(`{"version": "1.0", "rules": []}`), FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(doc.Rules) != 0 {
		t.Errorf("expected zero rules")
	}
}

func TestFormatForPath(t *testing.T) {
	if got := FormatForPath("policy.json"); got != FormatJSON {
		t.Errorf("FormatForPath(policy.json) = %s", got)
	}
	if got := FormatForPath("policy.yaml"); got != FormatYAML {
		t.Errorf("FormatForPath(policy.yaml) = %s", got)
	}
}

package engine

import (
	"testing"

	"github.com/PredicateSystems/secureclaw/internal/core"
)

func TestEngine_Trace(t *testing.T) {
	doc := &core.PolicyDocument{
		Version: "1.0",
		Rules: []core.Rule{
			{
				Name:       "allow-read",
				Effect:     core.EffectAllow,
				Principals: []string{"agent:*"},
				Actions:    []string{"fs.read"},
				Resources:  []string{"*"},
			},
			{
				Name:       "deny-tmp",
				Effect:     core.EffectDeny,
				Principals: []string{"*"},
				Actions:    []string{"*"},
				Resources:  []string{"/tmp/**"},
			},
		},
	}
	eng := New(doc)

	req := core.AuthorizationRequest{Principal: "agent:a", Action: "fs.read", Resource: "/src/main.go"}
	trace := eng.Trace(&req)

	if len(trace.RuleResults) != 2 {
		t.Fatalf("expected 2 rule results, got %d", len(trace.RuleResults))
	}

	// denies are visited first, matching the evaluation order
	if trace.RuleResults[0].RuleName != "deny-tmp" {
		t.Errorf("first visited rule = %q, want deny-tmp", trace.RuleResults[0].RuleName)
	}
	if trace.RuleResults[0].Matched {
		t.Errorf("deny-tmp must not match /src/main.go")
	}
	if trace.RuleResults[1].RuleName != "allow-read" || !trace.RuleResults[1].Matched {
		t.Errorf("allow-read should match: %+v", trace.RuleResults[1])
	}

	if !trace.Decision.Allow || trace.Decision.MatchedRule != "allow-read" {
		t.Errorf("unexpected decision: %+v", trace.Decision)
	}
}

func TestEngine_TraceLabelResults(t *testing.T) {
	doc := &core.PolicyDocument{
		Version: "1.0",
		Rules: []core.Rule{
			{
				Name:           "allow-exec",
				Effect:         core.EffectAllow,
				Principals:     []string{"*"},
				Actions:        []string{"shell.exec"},
				Resources:      []string{"*"},
				RequiredLabels: []string{"supervised"},
			},
		},
	}
	eng := New(doc)

	req := core.AuthorizationRequest{Principal: "agent:a", Action: "shell.exec", Resource: "make"}
	trace := eng.Trace(&req)

	res := trace.RuleResults[0]
	if res.Matched {
		t.Errorf("rule must not match without the label")
	}

	var labelResult *core.FieldResult
	for i := range res.FieldResults {
		if res.FieldResults[i].Field == "label:supervised" {
			labelResult = &res.FieldResults[i]
		}
	}
	if labelResult == nil {
		t.Fatalf("expected a field result for the missing label, got %+v", res.FieldResults)
	}
	if labelResult.Matched {
		t.Errorf("label result must be a mismatch")
	}
}

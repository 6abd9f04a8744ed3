package engine

import (
	"testing"

	"github.com/PredicateSystems/secureclaw/internal/core"
)

func TestEngine_Evaluate(t *testing.T) {
	depth := 3
	doc := &core.PolicyDocument{
		Version: "1.0",
		Rules: []core.Rule{
			{
				Name:       "allow-everything", // broad allow placed before the deny on purpose
				Effect:     core.EffectAllow,
				Principals: []string{"*"},
				Actions:    []string{"*"},
				Resources:  []string{"*"},
			},
			{
				Name:       "deny-secrets",
				Effect:     core.EffectDeny,
				Principals: []string{"*"},
				Actions:    []string{"fs.*"},
				Resources:  []string{"*/secrets/**"},
			},
			{
				Name:           "allow-labeled-exec",
				Effect:         core.EffectAllow,
				Principals:     []string{"agent:*"},
				Actions:        []string{"shell.exec"},
				Resources:      []string{"*"},
				RequiredLabels: []string{"supervised"},
			},
			{
				Name:               "allow-delegated",
				Effect:             core.EffectAllow,
				Principals:         []string{"agent:parent"},
				Actions:            []string{"task.delegate"},
				Resources:          []string{"*"},
				MaxDelegationDepth: &depth,
			},
		},
	}
	eng := New(doc)

	tests := []struct {
		name        string
		req         core.AuthorizationRequest
		wantAllow   bool
		wantReason  string
		wantRule    string
		wantMandate bool
		wantDepth   *int
	}{
		{
			name:        "Broad Allow",
			req:         core.AuthorizationRequest{Principal: "user:a", Action: "http.request", Resource: "https://example.com"},
			wantAllow:   true,
			wantReason:  "allowed_by_policy:allow-everything",
			wantRule:    "allow-everything",
			wantMandate: true,
		},
		{
			name:       "Deny Wins Over Earlier Allow",
			req:        core.AuthorizationRequest{Principal: "user:a", Action: "fs.read", Resource: "/etc/secrets/db.pem"},
			wantAllow:  false,
			wantReason: "denied_by_policy:deny-secrets",
			wantRule:   "deny-secrets",
		},
		{
			name: "Label Gated Allow With Label",
			req: core.AuthorizationRequest{
				Principal: "agent:bot-1", Action: "shell.exec", Resource: "ls -la",
				Labels: []string{"supervised", "extra"},
			},
			wantAllow:   true,
			wantReason:  "allowed_by_policy:allow-everything", // earlier allow also matches
			wantRule:    "allow-everything",
			wantMandate: true,
		},
		{
			name:      "Advisory Delegation Depth Surfaced",
			req:       core.AuthorizationRequest{Principal: "agent:parent", Action: "task.delegate", Resource: "subtask"},
			wantAllow: true,
			// allow-everything matches first and carries no depth
			wantReason:  "allowed_by_policy:allow-everything",
			wantRule:    "allow-everything",
			wantMandate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eng.Evaluate(&tt.req)
			if got.Allow != tt.wantAllow {
				t.Errorf("Allow = %v, want %v", got.Allow, tt.wantAllow)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
			if got.MatchedRule != tt.wantRule {
				t.Errorf("MatchedRule = %q, want %q", got.MatchedRule, tt.wantRule)
			}
			if tt.wantMandate && got.MandateID == "" {
				t.Errorf("expected a mandate ID on allow")
			}
			if !tt.wantAllow && got.MandateID != "" {
				t.Errorf("mandate ID must only be set on allow, got %q", got.MandateID)
			}
		})
	}
}

func TestEngine_LabelGating(t *testing.T) {
	doc := &core.PolicyDocument{
		Version: "1.0",
		Rules: []core.Rule{
			{
				Name:           "allow-exec",
				Effect:         core.EffectAllow,
				Principals:     []string{"*"},
				Actions:        []string{"shell.exec"},
				Resources:      []string{"*"},
				RequiredLabels: []string{"x"},
			},
		},
	}
	eng := New(doc)

	req := core.AuthorizationRequest{Principal: "agent:a", Action: "shell.exec", Resource: "make"}
	if got := eng.Evaluate(&req); got.Allow {
		t.Errorf("rule must not match a request missing label \"x\": %+v", got)
	} else if got.Reason != core.ReasonDefaultDeny {
		t.Errorf("Reason = %q, want %q", got.Reason, core.ReasonDefaultDeny)
	}

	req.Labels = []string{"x"}
	if got := eng.Evaluate(&req); !got.Allow {
		t.Errorf("rule must match once the label is present: %+v", got)
	}
}

func TestEngine_DefaultDeny(t *testing.T) {
	eng := New(&core.PolicyDocument{Version: "1.0"})

	requests := []core.AuthorizationRequest{
		{Principal: "user:a", Action: "fs.read", Resource: "/tmp/x"},
		{Principal: "", Action: "", Resource: ""},
		{Principal: "agent:b", Action: "http.request", Resource: "https://example.com"},
	}
	for _, req := range requests {
		got := eng.Evaluate(&req)
		if got.Allow {
			t.Errorf("zero-rule document must deny %+v", req)
		}
		if got.Reason != core.ReasonDefaultDeny {
			t.Errorf("Reason = %q, want %q", got.Reason, core.ReasonDefaultDeny)
		}
		if got.MatchedRule != "" {
			t.Errorf("MatchedRule = %q, want empty", got.MatchedRule)
		}
	}
}

func TestEngine_DenyIgnoresLabels(t *testing.T) {
	doc := &core.PolicyDocument{
		Version: "1.0",
		Rules: []core.Rule{
			{
				Name:           "deny-writes",
				Effect:         core.EffectDeny,
				Principals:     []string{"*"},
				Actions:        []string{"fs.write"},
				Resources:      []string{"*"},
				RequiredLabels: []string{"never-present"},
			},
		},
	}
	eng := New(doc)

	req := core.AuthorizationRequest{Principal: "agent:a", Action: "fs.write", Resource: "/tmp/x"}
	got := eng.Evaluate(&req)
	if got.Allow || got.MatchedRule != "deny-writes" {
		t.Errorf("deny must fire regardless of required_labels: %+v", got)
	}
}

func TestEngine_FirstAllowWins(t *testing.T) {
	doc := &core.PolicyDocument{
		Version: "1.0",
		Rules: []core.Rule{
			{Name: "allow-first", Effect: core.EffectAllow, Principals: []string{"*"}, Actions: []string{"fs.read"}, Resources: []string{"*"}},
			{Name: "allow-second", Effect: core.EffectAllow, Principals: []string{"*"}, Actions: []string{"*"}, Resources: []string{"*"}},
		},
	}
	eng := New(doc)

	req := core.AuthorizationRequest{Principal: "agent:a", Action: "fs.read", Resource: "/tmp/x"}
	if got := eng.Evaluate(&req); got.MatchedRule != "allow-first" {
		t.Errorf("MatchedRule = %q, want allow-first", got.MatchedRule)
	}
}

func TestEngine_Determinism(t *testing.T) {
	doc := &core.PolicyDocument{
		Version: "1.0",
		Rules: []core.Rule{
			{Name: "allow-read", Effect: core.EffectAllow, Principals: []string{"*"}, Actions: []string{"fs.read"}, Resources: []string{"*"}},
		},
	}
	eng := New(doc)
	req := core.AuthorizationRequest{Principal: "agent:x", Action: "fs.read", Resource: "/src/index.ts"}

	first := eng.Evaluate(&req)
	for i := 0; i < 100; i++ {
		got := eng.Evaluate(&req)
		// mandate IDs are freshly generated and excluded from equality
		got.MandateID = first.MandateID
		if got != first {
			t.Fatalf("evaluation #%d differs: %+v vs %+v", i, got, first)
		}
	}
}

// End-to-end scenarios from the operator documentation.

func TestEngine_DenyAWSCredentials(t *testing.T) {
	doc := &core.PolicyDocument{
		Version: "1.0",
		Rules: []core.Rule{
			{
				Name:       "deny-aws",
				Effect:     core.EffectDeny,
				Principals: []string{"*"},
				Actions:    []string{"fs.read", "fs.write"},
				Resources:  []string{"*/.aws/*"},
			},
		},
	}
	eng := New(doc)

	req := core.AuthorizationRequest{Principal: "agent:x", Action: "fs.read", Resource: "/home/u/.aws/credentials"}
	got := eng.Evaluate(&req)
	if got.Allow {
		t.Errorf("expected deny")
	}
	if got.Reason != "denied_by_policy:deny-aws" {
		t.Errorf("Reason = %q", got.Reason)
	}
	if got.MatchedRule != "deny-aws" {
		t.Errorf("MatchedRule = %q", got.MatchedRule)
	}
}

func TestEngine_AllowRead(t *testing.T) {
	doc := &core.PolicyDocument{
		Version: "1.0",
		Rules: []core.Rule{
			{
				Name:       "allow-read",
				Effect:     core.EffectAllow,
				Principals: []string{"*"},
				Actions:    []string{"fs.read"},
				Resources:  []string{"*"},
			},
		},
	}
	eng := New(doc)

	req := core.AuthorizationRequest{Principal: "agent:x", Action: "fs.read", Resource: "/src/index.ts"}
	got := eng.Evaluate(&req)
	if !got.Allow {
		t.Fatalf("expected allow, got %+v", got)
	}
	if got.Reason != "allowed_by_policy:allow-read" {
		t.Errorf("Reason = %q", got.Reason)
	}
	if got.MatchedRule != "allow-read" {
		t.Errorf("MatchedRule = %q", got.MatchedRule)
	}
	if got.MandateID == "" {
		t.Errorf("expected a non-empty mandate ID")
	}
}

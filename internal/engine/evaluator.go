package engine

import (
	"fmt"

	"github.com/PredicateSystems/secureclaw/internal/core"
)

// Trace evaluates the request like Evaluate does, but records the
// outcome of every rule visited, for the explain endpoint and the
// `check` command. The trace's final decision is the same decision
// Evaluate would return (the mandate ID is minted independently).
func (e *Engine) Trace(req *core.AuthorizationRequest) core.EvaluationTrace {
	trace := core.EvaluationTrace{
		Request: *req,
	}

	for _, rule := range e.doc.Rules {
		if rule.Effect != core.EffectDeny {
			continue
		}
		trace.RuleResults = append(trace.RuleResults, checkRule(&rule, req))
	}
	for _, rule := range e.doc.Rules {
		if rule.Effect != core.EffectAllow {
			continue
		}
		trace.RuleResults = append(trace.RuleResults, checkRule(&rule, req))
	}

	trace.Decision = e.Evaluate(req)
	return trace
}

// checkRule evaluates a single rule against the request, recording a
// per-field result even for fields after the first mismatch.
func checkRule(rule *core.Rule, req *core.AuthorizationRequest) core.RuleResult {
	result := core.RuleResult{
		RuleName: rule.Name,
		Effect:   rule.Effect,
		Matched:  true, // fail on any mismatch
	}

	addResult := func(field string, passed bool, reason string) {
		result.FieldResults = append(result.FieldResults, core.FieldResult{
			Field:   field,
			Matched: passed,
			Reason:  reason,
		})
		if !passed {
			result.Matched = false
		}
	}

	checkField := func(field string, patterns []string, candidate string) {
		if core.MatchAny(patterns, candidate) {
			addResult(field, true, "")
			return
		}
		addResult(field, false, fmt.Sprintf("%q matches none of %v", candidate, patterns))
	}

	checkField("principal", rule.Principals, req.Principal)
	checkField("action", rule.Actions, req.Action)
	checkField("resource", rule.Resources, req.Resource)

	// deny rules fire regardless of labels
	if rule.Effect == core.EffectAllow {
		for _, label := range rule.RequiredLabels {
			if req.HasLabel(label) {
				addResult("label:"+label, true, "")
			} else {
				addResult("label:"+label, false, fmt.Sprintf("request is missing label %q", label))
			}
		}
	}

	return result
}

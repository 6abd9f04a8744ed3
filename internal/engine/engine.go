package engine

import (
	"github.com/rs/xid"

	"github.com/PredicateSystems/secureclaw/internal/core"
)

// Engine evaluates authorization requests against one immutable policy
// document. It holds no other state; for a fixed document and request
// the decision is deterministic apart from the freshly minted mandate
// ID.
type Engine struct {
	doc *core.PolicyDocument
}

// New creates an Engine over the given validated document.
func New(doc *core.PolicyDocument) *Engine {
	return &Engine{doc: doc}
}

// Document returns the document this engine evaluates against.
func (e *Engine) Document() *core.PolicyDocument {
	return e.doc
}

// Evaluate runs the two-pass decision algorithm:
//
//  1. Deny pass: the first deny rule whose principal, action and
//     resource patterns all match wins, regardless of labels.
//  2. Allow pass: the first allow rule whose patterns all match and
//     whose required labels are all present on the request wins.
//  3. Default deny.
//
// Running every deny before any allow means a broad allow placed ahead
// of a narrow deny can never grant access the deny intends to block.
func (e *Engine) Evaluate(req *core.AuthorizationRequest) core.AuthorizationDecision {
	for _, rule := range e.doc.Rules {
		if rule.Effect != core.EffectDeny {
			continue
		}
		if structuralMatch(&rule, req) {
			return core.AuthorizationDecision{
				Allow:       false,
				Reason:      core.ReasonDeniedPrefix + rule.Name,
				MatchedRule: rule.Name,
			}
		}
	}

	for _, rule := range e.doc.Rules {
		if rule.Effect != core.EffectAllow {
			continue
		}
		if !structuralMatch(&rule, req) {
			continue
		}
		if !labelsSatisfied(&rule, req) {
			continue
		}
		return core.AuthorizationDecision{
			Allow:              true,
			Reason:             core.ReasonAllowedPrefix + rule.Name,
			MatchedRule:        rule.Name,
			MandateID:          xid.New().String(),
			MaxDelegationDepth: rule.MaxDelegationDepth,
		}
	}

	return core.AuthorizationDecision{
		Allow:  false,
		Reason: core.ReasonDefaultDeny,
	}
}

// structuralMatch reports whether the request's principal, action and
// resource each match at least one pattern of the rule.
func structuralMatch(rule *core.Rule, req *core.AuthorizationRequest) bool {
	return core.MatchAny(rule.Principals, req.Principal) &&
		core.MatchAny(rule.Actions, req.Action) &&
		core.MatchAny(rule.Resources, req.Resource)
}

// labelsSatisfied reports whether every required label of the rule is
// present on the request.
func labelsSatisfied(rule *core.Rule, req *core.AuthorizationRequest) bool {
	for _, label := range rule.RequiredLabels {
		if !req.HasLabel(label) {
			return false
		}
	}
	return true
}

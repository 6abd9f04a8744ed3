package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/PredicateSystems/secureclaw/internal/core"
	"github.com/PredicateSystems/secureclaw/internal/engine"
	"github.com/PredicateSystems/secureclaw/internal/policy"
)

// AuthorizationService ties the policy store, the evaluator and the
// audit sink together. It owns audit emission: every evaluated request
// produces exactly one record, and emission can neither block nor fail
// the decision path (the auditor behind it is expected to be
// asynchronous).
type AuthorizationService struct {
	policyManager *engine.PolicyManager
	auditor       core.Auditor
}

func NewAuthorizationService(policyManager *engine.PolicyManager, auditor core.Auditor) *AuthorizationService {
	return &AuthorizationService{
		policyManager: policyManager,
		auditor:       auditor,
	}
}

// Authorize validates the request shape, evaluates it against the
// current document snapshot and emits the audit record. Denies are
// successful evaluations, not errors; the error return is reserved for
// malformed requests (BadRequest) and internal faults.
func (s *AuthorizationService) Authorize(ctx context.Context, req *core.AuthorizationRequest) (core.AuthorizationDecision, error) {
	logger := log.Ctx(ctx)
	reqID, _ := ctx.Value("correlation_id").(string)

	if err := validateRequest(req); err != nil {
		// no decision was produced; a bad-request log line is enough
		logger.Warn().Err(err).Msg("rejecting malformed authorization request")
		return core.AuthorizationDecision{}, httpError(http.StatusBadRequest, err)
	}

	start := time.Now()
	decision := s.policyManager.GetEngine().Evaluate(req)
	duration := time.Since(start)

	record := core.AuditRecord{
		ID:          reqID,
		Time:        time.Now(),
		Principal:   req.Principal,
		Action:      req.Action,
		Resource:    req.Resource,
		Allow:       decision.Allow,
		Reason:      decision.Reason,
		MatchedRule: decision.MatchedRule,
		MandateID:   decision.MandateID,
		IntentHash:  req.IntentHash,
		Duration:    duration,
	}
	if err := s.auditor.Log(record); err != nil {
		logger.Error().Err(err).Msg("failed to write audit record")
	}

	logger.Info().
		Str("principal", req.Principal).
		Str("action", req.Action).
		Bool("allow", decision.Allow).
		Str("reason", decision.Reason).
		Dur("eval_duration", duration).
		Msg("authorization decided")

	return decision, nil
}

// Reload validates the raw document and swaps it in atomically. On a
// validation error the prior document stays active; nothing is ever
// partially applied.
func (s *AuthorizationService) Reload(ctx context.Context, raw []byte, format policy.Format) error {
	logger := log.Ctx(ctx)

	doc, err := policy.Parse(raw, format)
	if err != nil {
		logger.Warn().Err(err).Msg("rejecting policy reload")
		return httpError(http.StatusBadRequest, err)
	}

	s.policyManager.Swap(doc)
	logger.Info().
		Str("version", doc.Version).
		Int("rules", len(doc.Rules)).
		Msg("policy document reloaded")
	return nil
}

// Explain runs a traced evaluation for the admin explain endpoint and
// the check command. Traced evaluations are not audited; they are
// operator diagnostics, not authorization decisions.
func (s *AuthorizationService) Explain(ctx context.Context, req *core.AuthorizationRequest) (*core.EvaluationTrace, error) {
	reqID, _ := ctx.Value("correlation_id").(string)

	if err := validateRequest(req); err != nil {
		return nil, httpError(http.StatusBadRequest, err)
	}

	trace := s.policyManager.GetEngine().Trace(req)
	trace.CorrelationID = reqID
	return &trace, nil
}

// CurrentDocument exposes the active document snapshot (health and
// admin surfaces).
func (s *AuthorizationService) CurrentDocument() *core.PolicyDocument {
	return s.policyManager.Current()
}

func validateRequest(req *core.AuthorizationRequest) error {
	if req.Principal == "" {
		return fmt.Errorf("principal is required")
	}
	if req.Action == "" {
		return fmt.Errorf("action is required")
	}
	if req.Resource == "" {
		return fmt.Errorf("resource is required")
	}
	return nil
}

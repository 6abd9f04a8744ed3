package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/PredicateSystems/secureclaw/internal/api"
	"github.com/PredicateSystems/secureclaw/internal/core"
)

type ListAuditsOpts struct {
	Limit uint

	CorrelationID string
	Principal     string
	Rule          string
}

// ListAudits retrieves the latest audit records from the server,
// newest first, filtered by the given options.
func (c *Client) ListAudits(ctx context.Context, opts ListAuditsOpts) ([]core.AuditRecord, string, error) {
	ub := c.url().setPath(api.ListAuditsRoute)
	if opts.Limit > 0 {
		ub = ub.addQueryParam("limit", opts.Limit)
	}
	if opts.CorrelationID != "" {
		ub = ub.addQueryParam("correlation_id", opts.CorrelationID)
	}
	if opts.Principal != "" {
		ub = ub.addQueryParam("principal", opts.Principal)
	}
	if opts.Rule != "" {
		ub = ub.addQueryParam("rule", opts.Rule)
	}
	var resp []core.AuditRecord
	correlation, err := c.get(ctx, ub.build(), &resp)
	return resp, correlation, err
}

// Explain runs a traced evaluation on the server without emitting an
// audit record.
func (c *Client) Explain(
	ctx context.Context,
	req *core.AuthorizationRequest,
) (*core.EvaluationTrace, string, error) {
	var trace core.EvaluationTrace
	correlation, err := c.post(ctx, c.url().
		setPath(api.ExplainRoute).
		build(), req, &trace)
	if err != nil {
		return nil, correlation, err
	}
	return &trace, correlation, nil
}

// ReloadPolicy posts a raw policy document for validation and
// hot-swap. The contentType must be "application/json",
// "application/yaml" or "text/yaml".
func (c *Client) ReloadPolicy(
	ctx context.Context,
	document []byte,
	contentType string,
) (*api.ReloadResponse, string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.url().
		setPath(api.ReloadPolicyRoute).
		build(), bytes.NewReader(document))
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	var resp api.ReloadResponse
	correlation, err := c.do(req, &resp)
	if err != nil {
		return nil, correlation, err
	}
	return &resp, correlation, nil
}

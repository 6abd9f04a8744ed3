package client

import (
	"context"

	"github.com/PredicateSystems/secureclaw/internal/api"
	"github.com/PredicateSystems/secureclaw/internal/core"
)

// Authorize asks the decision service whether the request is allowed.
// A deny is NOT an error: the decision is returned with Allow=false.
// An error means the question could not be answered (transport
// failure, malformed request, server fault).
func (c *Client) Authorize(
	ctx context.Context,
	req *core.AuthorizationRequest,
) (*core.AuthorizationDecision, string, error) {
	var decision core.AuthorizationDecision
	correlation, err := c.post(ctx, c.url().
		setPath(api.AuthorizeRoute).
		build(), req, &decision)
	if err != nil {
		return nil, correlation, err
	}
	return &decision, correlation, nil
}

// AuthorizeFailClosed behaves like Authorize but never returns an
// error: any failure to obtain a decision is mapped to a deny, so a
// caller that cannot reach the service does not fall open.
func (c *Client) AuthorizeFailClosed(
	ctx context.Context,
	req *core.AuthorizationRequest,
) *core.AuthorizationDecision {
	decision, _, err := c.Authorize(ctx, req)
	if err != nil {
		return &core.AuthorizationDecision{
			Allow:  false,
			Reason: "decision unavailable: " + err.Error(),
		}
	}
	return decision
}

package client

import (
	"context"

	"github.com/PredicateSystems/secureclaw/internal/api"
	"github.com/PredicateSystems/secureclaw/internal/buildinfo"
)

func (c *Client) Info(ctx context.Context) (*buildinfo.Info, string, error) {
	var info buildinfo.Info
	correlation, err := c.get(ctx, c.url().
		setPath(api.AboutRoute).
		build(), &info)
	if err != nil {
		return nil, correlation, err
	}
	return &info, correlation, err
}

// Health reports whether the service is up, together with the active
// policy document version and rule count.
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, string, error) {
	var health api.HealthResponse
	correlation, err := c.get(ctx, c.url().
		setPath(api.HealthCheckRoute).
		build(), &health)
	if err != nil {
		return nil, correlation, err
	}
	return &health, correlation, nil
}

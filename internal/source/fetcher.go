package source

import (
	"context"

	"github.com/PredicateSystems/secureclaw/internal/core"
	"github.com/PredicateSystems/secureclaw/internal/logging"
)

// Fetcher loads a validated policy document from wherever policy lives.
// The fetch happens off the decision hot path; the caller swaps the
// returned document into the store.
type Fetcher interface {
	Fetch(ctx context.Context, log logging.InternalLogger) (*core.PolicyDocument, error)
}

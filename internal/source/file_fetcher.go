package source

import (
	"context"
	"fmt"
	"os"

	"github.com/PredicateSystems/secureclaw/internal/core"
	"github.com/PredicateSystems/secureclaw/internal/logging"
	"github.com/PredicateSystems/secureclaw/internal/policy"
)

var _ Fetcher = (*FileFetcher)(nil)

// FileFetcher reads the policy document from a local file. The format
// is derived from the file extension.
type FileFetcher struct {
	Path string
}

func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{Path: path}
}

func (f *FileFetcher) Fetch(_ context.Context, log logging.InternalLogger) (*core.PolicyDocument, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}

	doc, err := policy.Parse(raw, policy.FormatForPath(f.Path))
	if err != nil {
		return nil, fmt.Errorf("parsing policy file '%s': %w", f.Path, err)
	}

	log.Info("loaded policy document version '%s' with %d rules from '%s'",
		doc.Version, len(doc.Rules), f.Path)
	return doc, nil
}

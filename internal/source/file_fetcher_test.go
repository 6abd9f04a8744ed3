package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/PredicateSystems/secureclaw/internal/logging"
)

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	content := `
version: "1.0"
rules:
  - name: allow-read
    effect: allow
    principals: ["*"]
    actions: ["fs.read"]
    resources: ["*"]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing policy: %v", err)
	}

	fetcher := NewFileFetcher(path)
	doc, err := fetcher.Fetch(context.Background(), logging.NewZLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if doc.Version != "1.0" || len(doc.Rules) != 1 {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestFileFetcher_Missing(t *testing.T) {
	fetcher := NewFileFetcher(filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := fetcher.Fetch(context.Background(), logging.NewZLogger(zerolog.Nop())); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestFileFetcher_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.json")
	if err := os.WriteFile(path, []byte(`{"version": "1.0", "rules": [{"name": ""}]}`), 0600); err != nil {
		t.Fatalf("writing policy: %v", err)
	}
	fetcher := NewFileFetcher(path)
	if _, err := fetcher.Fetch(context.Background(), logging.NewZLogger(zerolog.Nop())); err == nil {
		t.Errorf("expected validation error")
	}
}

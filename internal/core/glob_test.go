package core

import (
	"strings"
	"testing"
	"time"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		candidate string
		want      bool
	}{
		{"Universal Wildcard", "*", "anything", true},
		{"Universal Wildcard Empty", "*", "", true},
		{"Universal Wildcard Path", "*", "/src/index.ts", true},
		{"Exact Match", "fs.read", "fs.read", true},
		{"Exact Mismatch", "fs.read", "fs.write", false},
		{"Prefix Wildcard", "agent:*", "agent:bot-1", true},
		{"Prefix Wildcard Mismatch", "agent:*", "user:bot-1", false},
		{"Action Namespace", "fs.*", "fs.read", true},
		{"Action Namespace Write", "fs.*", "fs.write", true},
		{"Action Namespace Mismatch", "fs.*", "http.request", false},
		{"Deep Path", "/home/*/projects/**", "/home/alice/projects/a/b/c.txt", true},
		{"Deep Path Mismatch", "/home/*/projects/**", "/home/alice/other/c.txt", false},
		{"Dotfile Path", "*/.aws/*", "/home/u/.aws/credentials", true},
		{"Anchored Not Substring", "read", "fs.read", false},
		{"Anchored Not Prefix", "fs", "fs.read", false},
		{"Empty Pattern Empty Candidate", "", "", true},
		{"Empty Pattern Nonempty Candidate", "", "x", false},
		{"Case Sensitive", "FS.*", "fs.read", false},
		{"Consecutive Wildcards Collapse", "a**b", "a/x/y/b", true},
		{"Trailing Wildcard Empty Run", "fs.*", "fs.", true},
		{"Inner Wildcard", "a*c", "abc", true},
		{"Inner Wildcard Empty", "a*c", "ac", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchPattern(tt.pattern, tt.candidate); got != tt.want {
				t.Errorf("MatchPattern(%q, %q) = %v, want %v", tt.pattern, tt.candidate, got, tt.want)
			}
		})
	}
}

// TestMatchPattern_NoBlowup feeds the matcher a pattern/candidate pair
// that makes naive recursive matchers exponential.
func TestMatchPattern_NoBlowup(t *testing.T) {
	pattern := strings.Repeat("a*", 30) + "b"
	candidate := strings.Repeat("a", 300)

	start := time.Now()
	if MatchPattern(pattern, candidate) {
		t.Errorf("expected no match")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("matching took %s, expected well under a second", elapsed)
	}
}

func TestMatchAny(t *testing.T) {
	patterns := []string{"fs.read", "fs.write"}
	if !MatchAny(patterns, "fs.write") {
		t.Errorf("expected fs.write to match")
	}
	if MatchAny(patterns, "fs.delete") {
		t.Errorf("expected fs.delete not to match")
	}
	if MatchAny(nil, "anything") {
		t.Errorf("empty pattern list must match nothing")
	}
}

func TestValidatePattern(t *testing.T) {
	if err := ValidatePattern("fs.*"); err != nil {
		t.Errorf("ValidatePattern(fs.*) = %v, want nil", err)
	}
	if err := ValidatePattern(""); err == nil {
		t.Errorf("expected error for empty pattern")
	}
	if err := ValidatePattern("a\x00b"); err == nil {
		t.Errorf("expected error for NUL byte in pattern")
	}
}

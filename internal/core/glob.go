package core

import "strings"

// MatchPattern reports whether candidate matches the glob pattern.
//
// Matching is case-sensitive and anchored: the pattern must cover the
// entire candidate. `*` matches any run of characters, including the
// empty run. A `**` segment matches any number of nested path segments;
// since runs of consecutive wildcards collapse into a single wildcard,
// `**` behaves as an unrestricted `*` and exists for readability in
// path-shaped patterns. The empty pattern matches only the empty
// candidate.
//
// The implementation is the iterative two-pointer wildcard match: on a
// mismatch it backtracks to the most recent `*` and extends its span by
// one character. Worst case is O(len(pattern) * len(candidate)); there
// is no exponential blowup for pathological patterns.
func MatchPattern(pattern, candidate string) bool {
	p, c := 0, 0
	star, mark := -1, 0

	for c < len(candidate) {
		switch {
		case p < len(pattern) && pattern[p] == '*':
			star = p
			mark = c
			p++
		case p < len(pattern) && pattern[p] == candidate[c]:
			p++
			c++
		case star >= 0:
			p = star + 1
			mark++
			c = mark
		default:
			return false
		}
	}

	// trailing wildcards match the empty remainder
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}

// MatchAny reports whether candidate matches at least one pattern.
func MatchAny(patterns []string, candidate string) bool {
	for _, pattern := range patterns {
		if MatchPattern(pattern, candidate) {
			return true
		}
	}
	return false
}

// ValidatePattern rejects patterns that the matcher cannot give sane
// semantics to. The empty pattern is only meaningful as a standalone
// candidate check and is treated as malformed inside rule pattern lists.
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return ErrEmptyPattern
	}
	if strings.ContainsRune(pattern, '\x00') {
		return ErrInvalidPatternRune
	}
	return nil
}

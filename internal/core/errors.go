package core

import "errors"

var (
	// ErrEmptyPattern is returned for an empty pattern inside a rule's
	// pattern lists.
	ErrEmptyPattern = errors.New("empty pattern")

	// ErrInvalidPatternRune is returned for patterns containing bytes
	// that cannot appear in a principal, action or resource string.
	ErrInvalidPatternRune = errors.New("pattern contains invalid characters")
)

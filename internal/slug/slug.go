// Package slug derives filesystem- and URL-safe identifiers from
// human-readable titles. Generated images, framed pages and metadata rows
// are all correlated by slug, so every stage of the pipeline must go
// through this package.
package slug

import (
	"regexp"
	"strings"
)

// DefaultMaxLength bounds slug length for all pipeline stages.
const DefaultMaxLength = 100

var (
	whitespace = regexp.MustCompile(`\s+`)
	disallowed = regexp.MustCompile(`[^a-z0-9_-]`)
)

// Make normalizes s with the default length bound.
func Make(s string) string {
	return MakeMax(s, DefaultMaxLength)
}

// MakeMax normalizes s into a slug of at most maxLength bytes: trim,
// lowercase, collapse each whitespace run into a single underscore, strip
// everything outside [a-z0-9_-], truncate. An empty result means the input
// had no usable characters; callers must treat that as invalid.
func MakeMax(s string, maxLength int) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespace.ReplaceAllString(s, "_")
	s = disallowed.ReplaceAllString(s, "")
	if maxLength >= 0 && len(s) > maxLength {
		s = s[:maxLength]
	}
	return s
}

// Package sanitize normalizes untrusted text: markup stripped, control
// characters removed, whitespace collapsed.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// Naive non-greedy tag strip; no nesting awareness.
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
	ctrlPattern = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")
	wsPattern   = regexp.MustCompile(`\s+`)
)

// Clean strips HTML-like tags, removes control characters other than
// newline/tab/space, collapses whitespace runs to a single space and trims.
// Pure and idempotent: Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = ctrlPattern.ReplaceAllString(s, "")
	s = wsPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

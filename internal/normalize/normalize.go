// Package normalize provides text normalization helpers used for matching.
//
// Source pages publish titles, dates, and prices with inconsistent whitespace
// and casing. Every matcher in this repository (date grammars, classifier
// keywords, dedupe keys) operates on normalized text so that markup quirks
// never change matching behavior.
package normalize

import (
	"regexp"
	"strings"
)

var spaceRun = regexp.MustCompile(`\s+`)

// CollapseSpace replaces every run of whitespace (including newlines from
// flattened markup) with a single space and trims the ends.
func CollapseSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// Fold collapses whitespace and lowercases, producing the canonical form used
// for case-insensitive matching and dedupe keys.
func Fold(s string) string {
	return strings.ToLower(CollapseSpace(s))
}

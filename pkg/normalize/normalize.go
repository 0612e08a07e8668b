// Package normalize collapses trivially different pseudocode inputs into a
// single canonical form so that they hash to the same cache key.
package normalize

import (
	"regexp"
	"strings"
)

var (
	slashComment = regexp.MustCompile(`//[^\n]*`)
	hashComment  = regexp.MustCompile(`#[^\n]*`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Code normalizes code or pseudocode so that inputs differing only in
// comments, semicolons, whitespace layout or letter case produce the same
// string. The steps are ordered: comment stripping has to happen before
// whitespace collapsing or comment markers would survive inside a line.
func Code(text string) string {
	out := slashComment.ReplaceAllString(text, "")
	out = hashComment.ReplaceAllString(out, "")
	out = blockComment.ReplaceAllString(out, "")
	out = strings.ReplaceAll(out, ";", "")
	out = whitespace.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)
	return strings.ToLower(out)
}

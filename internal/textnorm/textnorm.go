// Package textnorm canonicalizes free-text values coming from spreadsheet
// cells so that equal-looking strings compare equal.
//
// Two levels are provided:
//   - Normalize: display-safe cleanup (Unicode NFKC, invisible characters
//     stripped, whitespace collapsed). Used for every free-text field.
//   - NormalizeStrict: aggressive comparison token (upper-case, separator
//     punctuation removed entirely). Used only for department-name equality,
//     never for display.
//
// Both functions are pure, total and idempotent.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	separatorRe  = regexp.MustCompile(`[ \t/_\-.()]+`)
)

// invisibles removes characters that render as nothing but break exact
// comparison: zero-width space, BOM, soft hyphen. NBSP becomes a regular
// space; control whitespace becomes a space before collapsing.
var invisibles = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u200b", "", // zero-width space
	"\ufeff", "", // byte order mark
	"\u00ad", "", // soft hyphen
	"\r", " ",
	"\n", " ",
	"\t", " ",
	"\v", " ",
	"\f", " ",
)

// Normalize returns the canonical form of a free-text cell value.
// Empty input yields the empty string.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = norm.NFKC.String(s)
	s = invisibles.Replace(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeStrict reduces a department name to a comparison token:
// upper-cased with spaces, underscores, slashes, hyphens, dots, parentheses
// and tabs removed entirely, so "2 ГО", "2-го" and "2_ГО" all reduce to the
// same token.
func NormalizeStrict(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return separatorRe.ReplaceAllString(s, "")
}

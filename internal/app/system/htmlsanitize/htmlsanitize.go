// Package htmlsanitize strips markup from user-supplied display text.
//
// Names of role types, role type lists and group categories are plain
// text. They are rendered by other services, so any markup submitted
// with them is removed before the value is stored.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element and attribute.
var strict = bluemonday.StrictPolicy()

// PlainText removes all HTML from s and trims surrounding whitespace.
// Entities produced by the policy are decoded again, so "R&D" stays "R&D".
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// IsPlainText reports whether s contains no markup.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<>")
}

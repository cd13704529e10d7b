package adapter

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// extractText converts an HTML or HTML-encoded string to plain text.
// It first unescapes HTML entities (handles double-encoded feed titles;
// no-op on already-real HTML), strips all tags, then collapses whitespace.
func extractText(content string) string {
	unescaped := html.UnescapeString(content)
	// StrictPolicy re-escapes the text it keeps.
	plain := html.UnescapeString(strictPolicy.Sanitize(unescaped))
	return collapseSpace(plain)
}

// collapseSpace trims s and folds every run of whitespace into one space.
// Use it for text that is already plain.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

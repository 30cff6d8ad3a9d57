// Package plaintext derives searchable text from rich-text editor markup.
package plaintext

import "regexp"

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Extract replaces every markup tag with a single space. Entities are left
// untouched, so "&amp;" stays "&amp;".
func Extract(markup string) string {
	if markup == "" {
		return ""
	}
	return tagPattern.ReplaceAllString(markup, " ")
}

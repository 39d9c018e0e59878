package utils

import (
	"html"
	"regexp"
	"strings"

	"polyglot-blog-be/content"
)

var blockTags = regexp.MustCompile(`</?(?:p|br|hr|div|h[2-6]|li|ol|ul|blockquote|pre|tr|td|th|figcaption)[^>]*>`)

// MakeExcerpt generates a plain text excerpt from raw post HTML. The content
// goes through the display pipeline first, so text that readers would never
// see (scripts, h1 titles, document heads) never leaks into the excerpt.
func MakeExcerpt(rawHTML string, limit int) string {
	if rawHTML == "" || limit <= 0 {
		return ""
	}

	safe := content.SanitizeForDisplay(rawHTML)

	// Block-level tags become spaces to preserve word boundaries
	safe = blockTags.ReplaceAllString(safe, " ")
	text := html.UnescapeString(content.StripTags(safe))
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) > limit {
		return strings.TrimSpace(string(runes[:limit])) + "..."
	}
	return text
}

// PlainText reduces untrusted markup to the text a reader would see
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(content.StripTags(s)))
}

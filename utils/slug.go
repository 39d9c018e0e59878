package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug generates a URL-friendly slug from a title. Accented latin
// letters are folded to their base letter ("Crème" -> "creme"); anything
// else outside [a-z0-9] becomes a hyphen.
func GenerateSlug(title string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	slug, _, err := transform.String(fold, title)
	if err != nil {
		slug = title
	}

	slug = strings.ToLower(slug)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Package content turns untrusted per-locale post HTML into markup that is
// safe to inject into a page.
//
// The stored HTML is the source of truth and is never trusted: every render
// strips document wrappers, removes h1 elements and inline styles, and then
// filters the result through a fixed allow-list. All functions are pure and
// safe for concurrent use.
package content

import (
	"strings"
	"unicode/utf8"
)

// MaxInputBytes bounds the amount of raw HTML processed per content block.
// Longer input is truncated, not rejected.
const MaxInputBytes = 1 << 20

// SanitizeForDisplay runs raw through the full display pipeline and returns
// a fragment safe for direct DOM injection.
func SanitizeForDisplay(raw string) string {
	html, _ := sanitizeForDisplay(raw)
	return html
}

func sanitizeForDisplay(raw string) (string, bool) {
	s, truncated := bound(raw, MaxInputBytes)
	if s == "" {
		return "", truncated
	}
	s = StripWrappers(s)
	s = Normalize(s)
	return scrubStyleRemnants(Sanitize(s)), truncated
}

// bound cuts s to at most n bytes without splitting a UTF-8 sequence and
// replaces invalid UTF-8 with U+FFFD.
func bound(s string, n int) (string, bool) {
	truncated := false
	if len(s) > n {
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s, truncated = s[:n], true
	}
	return strings.ToValidUTF8(s, "\uFFFD"), truncated
}

// Rendered is the result of rendering one content block.
type Rendered struct {
	// Locale is the locale whose content was used.
	Locale Locale
	HTML   string
	// Fallback is set when the requested locale had no content and the
	// default locale was used instead.
	Fallback bool
	// Truncated is set when the raw input exceeded MaxInputBytes.
	Truncated bool
}

// Render selects the content of rec for want and sanitizes it.
func Render(rec Localized, want Locale) Rendered {
	if rec == nil {
		return Rendered{Locale: DefaultLocale}
	}
	if !want.Valid() {
		want = DefaultLocale
	}
	served, raw := Pick(want, rec.LocalizedContent)
	html, truncated := sanitizeForDisplay(raw)
	return Rendered{
		Locale:    served,
		HTML:      html,
		Fallback:  served != want,
		Truncated: truncated,
	}
}

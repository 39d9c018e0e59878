package content

import "strings"

// Locale identifies one of the languages a post is translated into.
type Locale string

const (
	English Locale = "en"
	Spanish Locale = "es"
	French  Locale = "fr"

	DefaultLocale = English
)

var locales = []Locale{English, Spanish, French}

// Locales returns the supported locales, primary first.
func Locales() []Locale {
	return append([]Locale(nil), locales...)
}

// ParseLocale matches s against the supported locales, ignoring case and any
// region subtag ("es-MX" is Spanish).
func ParseLocale(s string) (Locale, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	for _, l := range locales {
		if string(l) == s {
			return l, true
		}
	}
	return DefaultLocale, false
}

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	for _, known := range locales {
		if l == known {
			return true
		}
	}
	return false
}

func (l Locale) String() string { return string(l) }

// Localized is implemented by records that keep one independent HTML field
// per locale.
type Localized interface {
	LocalizedContent(Locale) string
}

// Pick returns field(want) when it is not blank, otherwise field of the
// default locale, otherwise an empty string. The returned locale is the one
// whose value was used.
func Pick(want Locale, field func(Locale) string) (Locale, string) {
	if !want.Valid() {
		want = DefaultLocale
	}
	if s := field(want); strings.TrimSpace(s) != "" {
		return want, s
	}
	if s := field(DefaultLocale); strings.TrimSpace(s) != "" {
		return DefaultLocale, s
	}
	return want, ""
}

// Select returns the raw content of rec for the requested locale, falling
// back to the default locale.
func Select(rec Localized, want Locale) string {
	if rec == nil {
		return ""
	}
	_, s := Pick(want, rec.LocalizedContent)
	return s
}

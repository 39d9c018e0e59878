package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"

	"polyglot-blog-be/content"
)

const (
	LocaleQueryParam = "lang"
	LocaleCookieName = "lang"
)

type localeKey struct{}

var localeMatcher = newLocaleMatcher()

func newLocaleMatcher() language.Matcher {
	tags := make([]language.Tag, 0, len(content.Locales()))
	for _, l := range content.Locales() {
		tags = append(tags, language.Make(l.String()))
	}
	return language.NewMatcher(tags)
}

// Locale resolves the request locale and stores it in the context. The
// first usable source wins: the ?lang= parameter, the lang cookie, the
// Accept-Language header, then the default locale.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := ResolveLocale(r)
		w.Header().Add("Vary", "Accept-Language")
		ctx := context.WithValue(r.Context(), localeKey{}, l)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ResolveLocale picks the locale for r without touching its context
func ResolveLocale(r *http.Request) content.Locale {
	if l, ok := content.ParseLocale(r.URL.Query().Get(LocaleQueryParam)); ok {
		return l
	}
	if c, err := r.Cookie(LocaleCookieName); err == nil {
		if l, ok := content.ParseLocale(c.Value); ok {
			return l
		}
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		return matchAcceptLanguage(header)
	}
	return content.DefaultLocale
}

func matchAcceptLanguage(header string) content.Locale {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return content.DefaultLocale
	}

	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return content.DefaultLocale
	}
	return content.Locales()[index]
}

// LocaleFrom returns the locale resolved for the request
func LocaleFrom(ctx context.Context) content.Locale {
	if l, ok := ctx.Value(localeKey{}).(content.Locale); ok {
		return l
	}
	return content.DefaultLocale
}

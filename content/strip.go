package content

import "regexp"

var (
	doctypeTag = regexp.MustCompile(`(?i)<!doctype[^>]*>`)
	headBlock  = regexp.MustCompile(`(?is)<head(?:\s[^>]*)?>.*?</head\s*>`)
	htmlTag    = regexp.MustCompile(`(?i)</?html(?:\s[^>]*)?>`)
	bodyTag    = regexp.MustCompile(`(?i)</?body(?:\s[^>]*)?>`)
)

// StripWrappers removes document-level scaffolding (doctype, html, head and
// body wrappers) so that only the fragment remains. The contents of <head>
// go with it; the contents of <body> are kept.
func StripWrappers(html string) string {
	return untilStable(html, stripWrappersOnce)
}

func stripWrappersOnce(s string) string {
	s = doctypeTag.ReplaceAllString(s, "")
	s = headBlock.ReplaceAllString(s, "")
	s = htmlTag.ReplaceAllString(s, "")
	return bodyTag.ReplaceAllString(s, "")
}

// untilStable applies fn until the output stops changing. Every pass only
// removes text, so the loop ends after at most len(s) iterations.
func untilStable(s string, fn func(string) string) string {
	for {
		next := fn(s)
		if next == s {
			return s
		}
		s = next
	}
}

package content

import (
	"regexp"
	"strings"
)

var (
	h1Element = regexp.MustCompile(`(?is)<h1(?:\s[^>]*)?>.*?</h1\s*>`)
	h1Stray   = regexp.MustCompile(`(?i)</?h1(?:\s[^>]*)?>`)

	// an opening tag, quoted attribute values may contain '>'
	openTag   = regexp.MustCompile(`<[a-zA-Z][^\s/>]*(?:[^<>"']|"[^"]*"|'[^']*')*>`)
	tagName   = regexp.MustCompile(`^<[a-zA-Z][^\s/>]*`)
	attribute = regexp.MustCompile(`\s*([^\s"'>/=]+)(?:\s*=\s*(?:"[^"]*"|'[^']*'|[^\s"'>]+))?`)

	// a quoted style assignment anywhere, not part of a longer name
	styleAssignment = regexp.MustCompile(`(?i)(^|[^\w-])style\s*=\s*(?:"[^"]*"|'[^']*')`)
	styleRemnant    = regexp.MustCompile(`(?i)style\s*=`)
)

// Normalize applies the structural passes that run between wrapper
// stripping and sanitization.
func Normalize(html string) string {
	return RemoveInlineStyles(RemoveHeadings(html))
}

// RemoveHeadings drops every <h1> element together with its contents. The
// page template renders the post title as the only top-level heading.
func RemoveHeadings(html string) string {
	return untilStable(html, func(s string) string {
		s = h1Element.ReplaceAllString(s, "")
		return h1Stray.ReplaceAllString(s, "")
	})
}

// RemoveInlineStyles strips style attributes from every tag, then drops any
// quoted style="..." assignment left in the text.
func RemoveInlineStyles(html string) string {
	html = openTag.ReplaceAllStringFunc(html, stripStyleAttr)
	return untilStable(html, func(s string) string {
		return styleAssignment.ReplaceAllString(s, "${1}")
	})
}

func stripStyleAttr(tag string) string {
	name := tagName.FindString(tag)
	attrs := tag[len(name):]
	if !strings.Contains(strings.ToLower(attrs), "style") {
		return tag
	}
	attrs = attribute.ReplaceAllStringFunc(attrs, func(attr string) string {
		m := attribute.FindStringSubmatch(attr)
		if strings.EqualFold(m[1], "style") {
			return ""
		}
		return attr
	})
	return name + attrs
}

// scrubStyleRemnants removes style= sequences that survive sanitization,
// such as unquoted text or entity-encoded quotes. It only runs on sanitized
// output, where the removed characters never carry markup.
func scrubStyleRemnants(html string) string {
	return untilStable(html, func(s string) string {
		return styleRemnant.ReplaceAllString(s, "")
	})
}

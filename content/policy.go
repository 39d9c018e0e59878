package content

import (
	"regexp"
	"slices"

	"github.com/microcosm-cc/bluemonday"
)

// allowList is the complete set of elements that may appear in rendered
// post content, with the attributes each of them may carry. Anything not
// listed here is removed by the sanitizer. h1 is deliberately absent.
var allowList = map[string][]string{
	"p":  nil,
	"br": nil,
	"hr": nil,

	"h2": nil,
	"h3": nil,
	"h4": nil,
	"h5": nil,
	"h6": nil,

	"ul": nil,
	"ol": nil,
	"li": nil,

	"b":      nil,
	"strong": nil,
	"i":      nil,
	"em":     nil,
	"s":      nil,
	"strike": nil,
	"del":    nil,
	"u":      nil,

	"a":   {"href", "target", "rel", "title", "class"},
	"img": {"src", "alt", "title", "class", "width", "height"},

	"blockquote": nil,
	"code":       {"class"},
	"pre":        {"class"},

	"table": {"class"},
	"thead": nil,
	"tbody": nil,
	"tr":    nil,
	"th":    nil,
	"td":    nil,

	"div":  {"class"},
	"span": {"class"},

	"figure":     {"class"},
	"figcaption": nil,
}

var (
	linkTarget = regexp.MustCompile(`^(?:_blank|_self|_parent|_top)$`)
	linkRel    = regexp.MustCompile(`^[a-zA-Z]+(?:\s+[a-zA-Z]+)*$`)
	freeText   = regexp.MustCompile(`^[^\x00]*$`)

	// attribute value constraints; attributes not listed accept any text
	attrValues = map[string]*regexp.Regexp{
		"target": linkTarget,
		"rel":    linkRel,
		"class":  bluemonday.SpaceSeparatedTokens,
		"width":  bluemonday.NumberOrPercent,
		"height": bluemonday.NumberOrPercent,
		"alt":    freeText,
		"title":  freeText,
	}

	urlSchemes = []string{"http", "https", "mailto"}

	contentPolicy = newContentPolicy()
	textPolicy    = bluemonday.StrictPolicy()
)

func newContentPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes(urlSchemes...)
	p.RequireNoReferrerOnLinks(true)

	for _, element := range AllowedElements() {
		attrs := allowList[element]
		if len(attrs) == 0 {
			p.AllowElements(element)
			continue
		}
		for _, attr := range attrs {
			switch attr {
			case "href", "src":
				p.AllowAttrs(attr).OnElements(element)
			default:
				p.AllowAttrs(attr).Matching(attrValues[attr]).OnElements(element)
			}
		}
	}
	return p
}

// AllowedElements returns the names of the permitted elements in sorted
// order.
func AllowedElements() []string {
	elements := make([]string, 0, len(allowList))
	for name := range allowList {
		elements = append(elements, name)
	}
	slices.Sort(elements)
	return elements
}

// AllowedAttributes returns the attributes permitted on element, or nil when
// the element accepts none or is not allowed at all.
func AllowedAttributes(element string) []string {
	return slices.Clone(allowList[element])
}

// Sanitize filters html through the allow-list policy. It never fails:
// unknown elements are dropped (script and style bodies included), unknown
// attributes removed and text escaped.
func Sanitize(html string) string {
	return contentPolicy.Sanitize(html)
}

// StripTags reduces html to escaped plain text.
func StripTags(html string) string {
	return textPolicy.Sanitize(html)
}

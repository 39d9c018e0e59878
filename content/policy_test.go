package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowList(t *testing.T) {
	elements := AllowedElements()
	require.NotEmpty(t, elements)

	for _, name := range []string{"p", "h2", "h6", "a", "img", "table", "figure", "figcaption"} {
		assert.Contains(t, elements, name)
	}
	for _, name := range []string{"h1", "script", "style", "iframe", "object", "form"} {
		assert.NotContains(t, elements, name)
	}

	assert.ElementsMatch(t, []string{"href", "target", "rel", "title", "class"}, AllowedAttributes("a"))
	assert.ElementsMatch(t, []string{"src", "alt", "title", "class", "width", "height"}, AllowedAttributes("img"))
	assert.Nil(t, AllowedAttributes("p"))
	assert.Nil(t, AllowedAttributes("script"))

	for element, attrs := range allowList {
		for _, attr := range attrs {
			assert.NotEqual(t, "style", attr, element)
			assert.NotEqual(t, "id", attr, element)
			assert.NotRegexp(t, `^(on|data-)`, attr, element)
		}
	}
}

func TestAllowedAttributesReturnsCopy(t *testing.T) {
	attrs := AllowedAttributes("a")
	attrs[0] = "onclick"
	assert.NotContains(t, AllowedAttributes("a"), "onclick")
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "clean fragment",
			input: `<h2>Title</h2><p>Body <strong>text</strong>.</p>`,
			want:  `<h2>Title</h2><p>Body <strong>text</strong>.</p>`,
		},
		{
			name:  "script element",
			input: `<p>a</p><script>alert(1)</script>`,
			want:  `<p>a</p>`,
		},
		{
			name:  "event handler",
			input: `<p onclick="alert(1)">x</p>`,
			want:  `<p>x</p>`,
		},
		{
			name:  "inline style",
			input: `<p style="color:red">a</p>`,
			want:  `<p>a</p>`,
		},
		{
			name:  "id and data attributes",
			input: `<p id="a" data-x="y">t</p>`,
			want:  `<p>t</p>`,
		},
		{
			name:  "form controls",
			input: `<form action="/x"><input name="x"></form><p>k</p>`,
			want:  `<p>k</p>`,
		},
		{
			name:  "table",
			input: `<table><thead><tr><th>a</th></tr></thead><tbody><tr><td>b</td></tr></tbody></table>`,
			want:  `<table><thead><tr><th>a</th></tr></thead><tbody><tr><td>b</td></tr></tbody></table>`,
		},
		{
			name:  "text is escaped",
			input: `a & b`,
			want:  `a &amp; b`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitizeRejectsHeadingOne(t *testing.T) {
	got := Sanitize(`<h1>x</h1>`)
	assert.NotContains(t, got, "<h1")
	assert.Contains(t, got, "x")
}

func TestSanitizeURLs(t *testing.T) {
	got := Sanitize(`<a href="javascript:alert(1)">x</a>`)
	assert.NotContains(t, got, "javascript")

	got = Sanitize(`<img src="/media/a.png" onerror="alert(1)" width="100" height="50%">`)
	assert.Contains(t, got, `src="/media/a.png"`)
	assert.Contains(t, got, `width="100"`)
	assert.Contains(t, got, `height="50%"`)
	assert.NotContains(t, got, "onerror")

	got = Sanitize(`<img src="/a.png" width="10px">`)
	assert.NotContains(t, got, "width")
}

func TestSanitizeLinkTarget(t *testing.T) {
	got := Sanitize(`<a href="https://x.com" target="_blank">link</a>`)
	assert.Contains(t, got, `href="https://x.com"`)
	assert.Contains(t, got, `target="_blank"`)
	assert.Contains(t, got, "noreferrer")

	got = Sanitize(`<a href="https://x.com" target="javascript:x">link</a>`)
	assert.NotContains(t, got, "target")
}

func TestSanitizeMalformed(t *testing.T) {
	inputs := []string{
		`<p><b>unclosed`,
		`<p title="unterminated>text`,
		`</div></div><p>`,
		`<<<>>>`,
		"\x00<p>\x00</p>",
	}
	for _, input := range inputs {
		assert.NotPanics(t, func() { Sanitize(input) }, input)
	}
	assert.Contains(t, Sanitize(`<p><b>unclosed`), "unclosed")
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Foo bar baz", StripTags("Foo <strong>bar</strong> baz"))
	assert.Equal(t, "a &amp; b", StripTags("<p>a & b</p>"))
	assert.Equal(t, "", StripTags(`<script>alert(1)</script>`))
}

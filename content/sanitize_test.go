package content

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pipelineInputs = []string{
	``,
	`<h2>Title</h2><p>Body <strong>text</strong>.</p>`,
	`<!DOCTYPE html><html><head><title>T</title></head><body><p>hi</p></body></html>`,
	`<h1>Duplicate</h1><p style="color:red">a</p>`,
	`<iframe src="evil"></iframe><p>ok</p>`,
	`<p onclick="alert(1)">x</p><script>alert(2)</script>`,
	`<a href="https://x.com" target="_blank">link</a>`,
	`<a href="https://x.com" rel="nofollow" title="no style=here">t</a>`,
	`<img src="/a.png" alt="a &amp; b" width="10">`,
	`a & b < c > d "quoted" 'single'`,
	`<<html>html><h1>x</h1><<h1>h1>y</h1>`,
	`<p><b>unclosed <i>tags`,
	`&lt;script&gt;alert(1)&lt;/script&gt;`,
	`<table><tr><td style="width:10px">c</td></tr></table>`,
	`<p style="a">style="b"</p> style=x`,
	`<figure class="wide"><img src="/a.png" alt="A"><figcaption>cap</figcaption></figure>`,
}

func TestSanitizeForDisplayIdempotent(t *testing.T) {
	for _, input := range pipelineInputs {
		once := SanitizeForDisplay(input)
		assert.Equal(t, once, SanitizeForDisplay(once), input)
	}
}

func TestSanitizeForDisplayDeterministic(t *testing.T) {
	for _, input := range pipelineInputs {
		assert.Equal(t, SanitizeForDisplay(input), SanitizeForDisplay(input), input)
	}
}

func TestSanitizeForDisplay(t *testing.T) {
	t.Run("wrapper removal", func(t *testing.T) {
		got := SanitizeForDisplay(`<!DOCTYPE html><html><head><title>T</title></head><body><p>hi</p></body></html>`)
		assert.Contains(t, got, "<p>hi</p>")
		for _, s := range []string{"<!DOCTYPE", "<html", "<head", "<body", "T<"} {
			assert.NotContains(t, got, s)
		}
	})

	t.Run("allow-list enforcement", func(t *testing.T) {
		got := SanitizeForDisplay(`<iframe src="evil"></iframe><p>ok</p>`)
		assert.Contains(t, got, "<p>ok</p>")
		assert.NotContains(t, got, "<iframe")
	})

	t.Run("clean input passes through", func(t *testing.T) {
		input := `<h2>Title</h2><p>Body <strong>text</strong>.</p>`
		assert.Equal(t, input, SanitizeForDisplay(input))
	})

	t.Run("link attributes preserved", func(t *testing.T) {
		got := SanitizeForDisplay(`<a href="https://x.com" target="_blank">link</a>`)
		assert.Contains(t, got, `href="https://x.com"`)
		assert.Contains(t, got, `target="_blank"`)
	})

	t.Run("script exclusion", func(t *testing.T) {
		inputs := []string{
			`<script>alert("x")</script><p>a</p>`,
			`<SCRIPT type="text/javascript">alert("x")</SCRIPT>`,
			`<p onclick="alert('x')">a</p>`,
			`<img src="/a.png" onerror="alert('x')">`,
			`<body onload="alert('x')"><p>a</p></body>`,
			`<a href="#" onMouseOver='alert("x")'>a</a>`,
		}
		for _, input := range inputs {
			got := strings.ToLower(SanitizeForDisplay(input))
			assert.NotContains(t, got, "<script", input)
			assert.NotContains(t, got, "alert(", input)
			assert.NotRegexp(t, `\son[a-z]+=`, got, input)
		}
	})

	t.Run("style exclusion", func(t *testing.T) {
		inputs := []string{
			`<p style="color:red">a</p>`,
			`<span class="x" style='font-weight:bold'>b</span>`,
			`<h2 STYLE="x">c</h2><div style=color:blue>d</div>`,
			`<p style="a">style="b"</p>`,
			`<p>plain style=bold and style = 'x'</p>`,
			`<p>style&#61;&#34;c&#34;</p>`,
			`<a href="/a" title="no style=here">t</a>`,
		}
		for _, input := range inputs {
			assert.NotContains(t, strings.ToLower(SanitizeForDisplay(input)), "style=", input)
		}
	})

	t.Run("single heading", func(t *testing.T) {
		inputs := []string{
			`<h1>A</h1>`,
			`<h1>A</h1><p>b</p><H1 class="c">D</H1>`,
			`<h1>unclosed <p>b</p>`,
		}
		for _, input := range inputs {
			assert.NotContains(t, strings.ToLower(SanitizeForDisplay(input)), "<h1", input)
		}
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", SanitizeForDisplay(""))
	})
}

func TestBound(t *testing.T) {
	s, truncated := bound("hello", 10)
	assert.Equal(t, "hello", s)
	assert.False(t, truncated)

	s, truncated = bound("héllo", 2)
	assert.Equal(t, "h", s)
	assert.True(t, truncated)

	s, truncated = bound("héllo", 3)
	assert.Equal(t, "hé", s)
	assert.True(t, truncated)
}

func TestBoundReplacesInvalidUTF8(t *testing.T) {
	s, truncated := bound("caf\xffé", 10)
	assert.Equal(t, "caf\uFFFDé", s)
	assert.False(t, truncated)

	got := SanitizeForDisplay("<p>caf\xffé</p>")
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "<p>caf\uFFFDé</p>", got)
}

func TestSanitizeForDisplayTruncatesOversizedInput(t *testing.T) {
	input := "<p>" + strings.Repeat("a", MaxInputBytes) + "</p>"

	got := SanitizeForDisplay(input)
	require.NotEmpty(t, got)
	assert.True(t, strings.HasPrefix(got, "<p>aaa"))
	assert.LessOrEqual(t, len(got), MaxInputBytes)
	assert.NotContains(t, got, "</p>")
}

func TestRender(t *testing.T) {
	rec := record{
		English: `<h1>Hello</h1><p style="color:red">hello</p>`,
		Spanish: `<p>hola</p><script>alert(1)</script>`,
	}

	r := Render(rec, Spanish)
	assert.Equal(t, Spanish, r.Locale)
	assert.Equal(t, "<p>hola</p>", r.HTML)
	assert.False(t, r.Fallback)

	r = Render(rec, French)
	assert.Equal(t, English, r.Locale)
	assert.Equal(t, "<p>hello</p>", r.HTML)
	assert.True(t, r.Fallback)
	assert.False(t, r.Truncated)

	r = Render(rec, "xx")
	assert.Equal(t, English, r.Locale)
	assert.False(t, r.Fallback)

	r = Render(nil, Spanish)
	assert.Equal(t, "", r.HTML)
}

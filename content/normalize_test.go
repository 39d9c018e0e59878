package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveHeadings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single heading",
			input: `<h1>Title</h1><p>a</p>`,
			want:  `<p>a</p>`,
		},
		{
			name:  "every heading is removed",
			input: `<H1 class="x">A</H1><h2>B</h2><h1>C <em>c</em></h1>`,
			want:  `<h2>B</h2>`,
		},
		{
			name:  "multi-line heading",
			input: "<h1>\nA\n</h1>\n<p>b</p>",
			want:  "\n<p>b</p>",
		},
		{
			name:  "unclosed heading tag",
			input: `<h1>open<p>a</p>`,
			want:  `open<p>a</p>`,
		},
		{
			name:  "lower headings stay",
			input: `<h2>a</h2><h3>b</h3>`,
			want:  `<h2>a</h2><h3>b</h3>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveHeadings(tt.input))
		})
	}
}

func TestRemoveInlineStyles(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "double quoted",
			input: `<p style="color:red">a</p>`,
			want:  `<p>a</p>`,
		},
		{
			name:  "single quoted after another attribute",
			input: `<span class="x" style='font-size:2em'>b</span>`,
			want:  `<span class="x">b</span>`,
		},
		{
			name:  "unquoted and upper case",
			input: `<div STYLE=color:red id="a">c</div>`,
			want:  `<div id="a">c</div>`,
		},
		{
			name:  "self closing",
			input: `<br style="x"/>`,
			want:  `<br/>`,
		},
		{
			name:  "quoted assignment in text",
			input: `<p style="a">use style="bold" here</p>`,
			want:  `<p>use  here</p>`,
		},
		{
			name:  "single quoted assignment in text",
			input: `<p>a style='x' b</p>`,
			want:  `<p>a  b</p>`,
		},
		{
			name:  "longer names and unquoted values are untouched",
			input: `<a title="no style=here" data-style="x">x</a>`,
			want:  `<a title="no style=here" data-style="x">x</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveInlineStyles(tt.input))
		})
	}
}

func TestNormalizeOrderIndependent(t *testing.T) {
	input := `<h1 style="x">T</h1><p style="color:red">a</p><h2 style='y'>b</h2>`
	want := `<p>a</p><h2>b</h2>`

	assert.Equal(t, want, Normalize(input))
	assert.Equal(t, want, RemoveHeadings(RemoveInlineStyles(input)))
}

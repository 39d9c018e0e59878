package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripWrappers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "full document",
			input: `<!DOCTYPE html><html><head><title>T</title></head><body><p>hi</p></body></html>`,
			want:  `<p>hi</p>`,
		},
		{
			name:  "attributes and mixed case",
			input: `<!doctype HTML><HTML lang="es"><Body class="post" data-x='1'><p>a</p></BODY></Html>`,
			want:  `<p>a</p>`,
		},
		{
			name:  "head contents are dropped",
			input: "<head>\n<meta charset=\"utf-8\">\n<style>p{color:red}</style>\n<script>alert(1)</script>\n</head>\n<p>a</p>",
			want:  "\n<p>a</p>",
		},
		{
			name:  "fragment passes through",
			input: `<h2>Title</h2><p>Body</p>`,
			want:  `<h2>Title</h2><p>Body</p>`,
		},
		{
			name:  "similar element names are kept",
			input: `<header><p>a</p></header><bodyguard>b</bodyguard>`,
			want:  `<header><p>a</p></header><bodyguard>b</bodyguard>`,
		},
		{
			name:  "wrapper assembled from removed pieces",
			input: `<<html>html><p>x</p><</body>/body>`,
			want:  `<p>x</p>`,
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripWrappers(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, StripWrappers(got), "must be idempotent")
		})
	}
}

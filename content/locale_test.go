package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type record map[Locale]string

func (r record) LocalizedContent(l Locale) string { return r[l] }

func TestParseLocale(t *testing.T) {
	tests := []struct {
		input string
		want  Locale
		ok    bool
	}{
		{"en", English, true},
		{"ES", Spanish, true},
		{" fr ", French, true},
		{"es-MX", Spanish, true},
		{"fr_CA", French, true},
		{"de", DefaultLocale, false},
		{"", DefaultLocale, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLocale(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestLocales(t *testing.T) {
	all := Locales()
	assert.Equal(t, []Locale{English, Spanish, French}, all)

	all[0] = "xx"
	assert.Equal(t, English, Locales()[0])
	assert.True(t, DefaultLocale.Valid())
	assert.False(t, Locale("xx").Valid())
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name string
		rec  record
		want Locale
		out  string
	}{
		{
			name: "requested locale",
			rec:  record{English: "<p>hello</p>", Spanish: "<p>hola</p>"},
			want: Spanish,
			out:  "<p>hola</p>",
		},
		{
			name: "fallback to default",
			rec:  record{English: "<p>hello</p>", French: ""},
			want: French,
			out:  "<p>hello</p>",
		},
		{
			name: "blank counts as empty",
			rec:  record{English: "<p>hello</p>", French: " \n\t"},
			want: French,
			out:  "<p>hello</p>",
		},
		{
			name: "nothing anywhere",
			rec:  record{Spanish: ""},
			want: Spanish,
			out:  "",
		},
		{
			name: "unknown locale uses default",
			rec:  record{English: "<p>hello</p>", Spanish: "<p>hola</p>"},
			want: "de",
			out:  "<p>hello</p>",
		},
		{
			name: "default has no fallback of its own",
			rec:  record{Spanish: "<p>hola</p>"},
			want: English,
			out:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, Select(tt.rec, tt.want))
		})
	}

	assert.Equal(t, "", Select(nil, English))
}

func TestPickReportsServedLocale(t *testing.T) {
	rec := record{English: "<p>hello</p>"}

	served, s := Pick(French, rec.LocalizedContent)
	assert.Equal(t, English, served)
	assert.Equal(t, "<p>hello</p>", s)

	served, s = Pick(French, record{}.LocalizedContent)
	assert.Equal(t, French, served)
	assert.Empty(t, s)
}

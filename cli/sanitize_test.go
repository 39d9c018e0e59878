package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	var out bytes.Buffer
	raw := `<html><head><title>x</title></head><body><h1>Title</h1><p style="color:red" onclick="x()">Hi</p><script>alert(1)</script></body></html>`

	require.NoError(t, sanitize(strings.NewReader(raw), &out))
	assert.Equal(t, "<p>Hi</p>\n", out.String())
}

func TestSanitizeCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.html")
	require.NoError(t, os.WriteFile(path, []byte(`<p>ok</p><iframe src="https://evil.example"></iframe>`), 0o600))

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetArgs([]string{"sanitize", path})
	t.Cleanup(func() {
		Cmd.SetOut(nil)
		Cmd.SetArgs(nil)
	})

	require.NoError(t, Cmd.Execute())
	assert.Equal(t, "<p>ok</p>\n", out.String())
}

func TestSanitizeCommandStdin(t *testing.T) {
	var out bytes.Buffer
	Cmd.SetIn(strings.NewReader(`<a href="https://example.com" target="_blank">x</a>`))
	Cmd.SetOut(&out)
	Cmd.SetArgs([]string{"sanitize"})
	t.Cleanup(func() {
		Cmd.SetIn(nil)
		Cmd.SetOut(nil)
		Cmd.SetArgs(nil)
	})

	require.NoError(t, Cmd.Execute())
	assert.Contains(t, out.String(), `href="https://example.com"`)
	assert.Contains(t, out.String(), `target="_blank"`)
}

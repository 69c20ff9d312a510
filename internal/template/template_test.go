package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestRender(t *testing.T) {
	t.Run("substitutes placeholders", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplate(t, dir, "page.html", "<h1>{{TITLE}}</h1><div>{{POSTS}}</div>")

		out, err := New(dir).Render("page.html", map[string]string{
			"TITLE": "tech",
			"POSTS": "<div>post</div>",
		})

		require.NoError(t, err)
		assert.Equal(t, "<h1>tech</h1><div><div>post</div></div>", out)
	})

	t.Run("substitution is literal, not escaped", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplate(t, dir, "page.html", "{{BODY}}")

		out, err := New(dir).Render("page.html", map[string]string{"BODY": "<script>x</script>"})

		require.NoError(t, err)
		assert.Equal(t, "<script>x</script>", out)
	})

	t.Run("unknown placeholders stay put", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplate(t, dir, "page.html", "{{MISSING}}")

		out, err := New(dir).Render("page.html", map[string]string{})

		require.NoError(t, err)
		assert.Equal(t, "{{MISSING}}", out)
	})

	t.Run("missing template file errors", func(t *testing.T) {
		_, err := New(t.TempDir()).Render("nope.html", nil)
		assert.Error(t, err)
	})

	t.Run("template name cannot escape the directory", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplate(t, dir, "page.html", "ok")

		out, err := New(dir).Render("../../page.html", nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", out)
	})
}

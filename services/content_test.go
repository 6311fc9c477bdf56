package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	r := NewContentRenderer()

	out, err := r.RenderHTML("# Title\n\nSome **bold** text.")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderHTMLStripsScripts(t *testing.T) {
	r := NewContentRenderer()

	out, err := r.RenderHTML(`<p onclick="steal()">hi</p><script>alert(1)</script>`)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, "hi")
}

func TestPlainText(t *testing.T) {
	r := NewContentRenderer()

	assert.Equal(t, "Maria & João", r.PlainText("<b>Maria</b> &amp; João"))
	assert.Equal(t, "", r.PlainText("<script>x</script>"))
}

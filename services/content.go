package services

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ContentRenderer renders post bodies for the public site and strips markup
// from text submitted through public forms.
type ContentRenderer struct {
	markdown goldmark.Markdown
	ugc      *bluemonday.Policy
	strict   *bluemonday.Policy
}

func NewContentRenderer() *ContentRenderer {
	return &ContentRenderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		ugc:      bluemonday.UGCPolicy(),
		strict:   bluemonday.StrictPolicy(),
	}
}

// RenderHTML converts markdown to sanitized HTML. Post content that is already
// HTML passes through goldmark untouched and is sanitized the same way.
func (r *ContentRenderer) RenderHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return r.ugc.Sanitize(buf.String()), nil
}

// PlainText removes every tag from s and returns unescaped text.
func (r *ContentRenderer) PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(r.strict.Sanitize(s)))
}

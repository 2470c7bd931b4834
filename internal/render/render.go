// Package render turns assistant markdown replies into sanitized HTML for
// the chat surface.
package render

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type HTMLRenderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewHTMLRenderer builds the markdown pipeline used for assistant replies.
// Model output is untrusted, so everything passes through bluemonday.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Render converts markdown to sanitized HTML.
func (r *HTMLRenderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return r.sanitizer.Sanitize(buf.String()), nil
}

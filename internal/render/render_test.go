package render_test

import (
	"strings"
	"testing"

	"github.com/wecurate/wecurate/internal/render"
)

func TestRender(t *testing.T) {
	renderer := render.NewHTMLRenderer()

	t.Run("markdown becomes HTML", func(t *testing.T) {
		html, err := renderer.Render("Some **bold** text and a [link](https://example.com).")
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if !strings.Contains(html, "<strong>bold</strong>") {
			t.Errorf("expected bold markup, got %q", html)
		}
		if !strings.Contains(html, `href="https://example.com"`) {
			t.Errorf("expected link markup, got %q", html)
		}
	})

	t.Run("tables from the GFM extension", func(t *testing.T) {
		html, err := renderer.Render("| a | b |\n|---|---|\n| 1 | 2 |")
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if !strings.Contains(html, "<table>") {
			t.Errorf("expected a table, got %q", html)
		}
	})

	t.Run("script tags are stripped", func(t *testing.T) {
		html, err := renderer.Render("hello <script>alert(1)</script> world")
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if strings.Contains(html, "<script") {
			t.Errorf("expected the script tag to be sanitized away, got %q", html)
		}
	})

	t.Run("javascript URLs are rejected", func(t *testing.T) {
		html, err := renderer.Render(`[click](javascript:alert(1))`)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if strings.Contains(html, "javascript:") {
			t.Errorf("expected the unsafe URL to be removed, got %q", html)
		}
	})
}

// Package fetch extracts page metadata used to pre-fill oracle-assisted
// article drafts.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxSnippetRunes caps how much page text is handed to the classifier.
const maxSnippetRunes = 500

// Metadata is what could be scraped from a page.
type Metadata struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Page fetches url and extracts a title and a short snippet. The snippet
// prefers the meta description and falls back to the first paragraph.
func Page(ctx context.Context, client *http.Client, url string) (*Metadata, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	document, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	meta := &Metadata{
		Title:   pageTitle(document),
		Snippet: pageSnippet(document),
	}
	return meta, nil
}

func pageTitle(document *goquery.Document) string {
	if title, ok := document.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	return strings.TrimSpace(document.Find("title").First().Text())
}

func pageSnippet(document *goquery.Document) string {
	for _, selector := range []string{`meta[name="description"]`, `meta[property="og:description"]`} {
		if desc, ok := document.Find(selector).Attr("content"); ok {
			if desc = strings.TrimSpace(desc); desc != "" {
				return clip(desc)
			}
		}
	}

	snippet := ""
	document.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return true
		}
		snippet = clip(text)
		return false
	})
	return snippet
}

func clip(s string) string {
	runes := []rune(s)
	if len(runes) <= maxSnippetRunes {
		return s
	}
	return string(runes[:maxSnippetRunes])
}

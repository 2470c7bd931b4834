package curate

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the subsequence of articles matching the selected category
// and free-text query, preserving the collection's order. The category
// sentinel AllCategories matches everything. The query is case-folded and
// matched as a substring of the title, the author, or any tag. There is no
// ranking; membership is boolean.
func Filter(articles []*Article, category, query string) []*Article {
	query = foldString(strings.TrimSpace(query))

	matched := make([]*Article, 0, len(articles))
	for _, article := range articles {
		if category != AllCategories && article.Category != category {
			continue
		}
		if query != "" && !matchesQuery(article, query) {
			continue
		}
		matched = append(matched, article)
	}
	return matched
}

func matchesQuery(article *Article, foldedQuery string) bool {
	if strings.Contains(foldString(article.Title), foldedQuery) {
		return true
	}
	if strings.Contains(foldString(article.Author), foldedQuery) {
		return true
	}
	for _, tag := range article.Tags {
		if strings.Contains(foldString(tag), foldedQuery) {
			return true
		}
	}
	return false
}

// foldString applies Unicode case folding. A cases.Caser carries state, so a
// fresh one is taken per call rather than shared.
func foldString(s string) string {
	return cases.Fold().String(s)
}

package curate

import "strings"

// Library is the full application state: the ordered article collection and
// the category registry. It is mutated only through the named operations
// below; persistence and locking are the caller's concern.
type Library struct {
	Articles   []*Article `json:"articles"`
	Categories []string   `json:"categories"`
}

// InsertArticle prepends an article. Newest-first is the only ordering the
// collection maintains.
func (l *Library) InsertArticle(article *Article) {
	l.Articles = append([]*Article{article}, l.Articles...)
}

// DeleteArticle removes the article with the given id. Deleting an unknown id
// is a no-op; the returned bool reports whether anything was removed.
func (l *Library) DeleteArticle(id string) bool {
	for i, article := range l.Articles {
		if article.ID == id {
			l.Articles = append(l.Articles[:i], l.Articles[i+1:]...)
			return true
		}
	}
	return false
}

// ReassignCategory rewrites every article categorized as from to to, and
// returns how many articles were touched. Used by the registry delete cascade.
func (l *Library) ReassignCategory(from, to string) int {
	count := 0
	for _, article := range l.Articles {
		if article.Category == from {
			article.Category = to
			count++
		}
	}
	return count
}

// HasCategory reports whether label is a current registry entry.
func (l *Library) HasCategory(label string) bool {
	for _, c := range l.Categories {
		if c == label {
			return true
		}
	}
	return false
}

// AddCategory appends a label to the registry. Empty (after trimming) or
// duplicate labels are silently ignored; the returned bool reports whether
// the registry changed.
func (l *Library) AddCategory(label string) bool {
	label = strings.TrimSpace(label)
	if label == "" || l.HasCategory(label) {
		return false
	}
	l.Categories = append(l.Categories, label)
	return true
}

// RemoveCategory removes a label from the registry and rewrites every article
// that referenced it to the reserved fallback, keeping the store referentially
// consistent. Removing the reserved label is rejected.
func (l *Library) RemoveCategory(label string) (reassigned int, err error) {
	if label == ReservedCategory {
		return 0, ErrReservedCategory
	}
	for i, c := range l.Categories {
		if c == label {
			l.Categories = append(l.Categories[:i], l.Categories[i+1:]...)
			return l.ReassignCategory(label, ReservedCategory), nil
		}
	}
	return 0, ErrCategoryNotFound
}

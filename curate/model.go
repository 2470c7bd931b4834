package curate

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ContextKey string

// AdminKey is for context.Context
const AdminKey ContextKey = "wecurate.admin"

const (
	// ReservedCategory is the permanent fallback label. It can never be
	// removed, and articles whose category is deleted are rewritten to it.
	ReservedCategory = "Other"

	// AllCategories is the filter sentinel that matches every category.
	AllCategories = "all"

	// DefaultAuthor is used when an article is added without an author.
	DefaultAuthor = "Unknown author"

	// DefaultURL is used when an article is added without a source link.
	DefaultURL = "#"
)

// Article is a curated content record.
type Article struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	URL      string   `json:"url"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Summary  string   `json:"summary"`
	AddedAt  int64    `json:"addedAt"` // milliseconds since epoch
}

// Classification is the oracle's structured answer for an article.
type Classification struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Summary  string   `json:"summary"`
}

// ArticleDraft carries user- or oracle-supplied fields for a new article.
// Tags may arrive as a list or, from the text input, as one free-form string
// in TagsText; the list wins when both are present.
type ArticleDraft struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	URL      string   `json:"url"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	TagsText string   `json:"tagsText"`
	Summary  string   `json:"summary"`
}

// NewArticle validates a draft and builds an Article with a fresh identifier
// and the current timestamp. The category must already be checked against the
// registry by the caller.
func NewArticle(draft ArticleDraft) (*Article, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	summary := strings.TrimSpace(draft.Summary)
	if summary == "" {
		return nil, ErrSummaryRequired
	}

	author := strings.TrimSpace(draft.Author)
	if author == "" {
		author = DefaultAuthor
	}
	url := strings.TrimSpace(draft.URL)
	if url == "" {
		url = DefaultURL
	}

	tags := CleanTags(draft.Tags)
	if len(tags) == 0 {
		tags = SplitTags(draft.TagsText)
	}

	return &Article{
		ID:       uuid.NewString(),
		Title:    title,
		Author:   author,
		URL:      url,
		Category: draft.Category,
		Tags:     tags,
		Summary:  summary,
		AddedAt:  time.Now().UnixMilli(),
	}, nil
}

// SplitTags splits free-form tag input on commas (ASCII or fullwidth) and
// whitespace, dropping blank tokens.
func SplitTags(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '，' || r == ' ' || r == '\t' || r == '\n'
	})
	return CleanTags(fields)
}

// CleanTags trims each tag and drops the empty ones. Order is preserved and
// duplicates are kept, matching the store's loose tag semantics.
func CleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return cleaned
}

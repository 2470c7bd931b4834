package service

import (
	"github.com/wecurate/wecurate/curate"
)

// ArticleService defines the interface for article operations.
type ArticleService interface {
	// ListArticles returns the filtered, newest-first view of the collection.
	ListArticles(category, query string) []curate.Article

	// AddArticle validates a draft and prepends the resulting article.
	AddArticle(draft curate.ArticleDraft) (*curate.Article, error)

	// DeleteArticle removes an article by id. Unknown ids are a no-op.
	DeleteArticle(id string) error
}

// articleService is the default implementation of ArticleService.
type articleService struct {
	store *Store
}

// NewArticleService creates a new ArticleService.
func NewArticleService(store *Store) ArticleService {
	return &articleService{store: store}
}

// ListArticles returns the filtered view of the collection. Results are
// copied so callers never hold references into the live library.
func (s *articleService) ListArticles(category, query string) []curate.Article {
	var out []curate.Article
	s.store.View(func(lib *curate.Library) {
		matched := curate.Filter(lib.Articles, category, query)
		out = make([]curate.Article, 0, len(matched))
		for _, article := range matched {
			copied := *article
			copied.Tags = append([]string(nil), article.Tags...)
			out = append(out, copied)
		}
	})
	return out
}

// AddArticle validates the draft against the current registry, assigns an id
// and timestamp, and prepends the article.
func (s *articleService) AddArticle(draft curate.ArticleDraft) (*curate.Article, error) {
	var created *curate.Article
	err := s.store.Update(func(lib *curate.Library) error {
		if !lib.HasCategory(draft.Category) {
			return curate.ErrCategoryUnknown
		}
		article, err := curate.NewArticle(draft)
		if err != nil {
			return err
		}
		lib.InsertArticle(article)
		created = article
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteArticle removes an article by id. Deleting a non-existent id leaves
// the collection unchanged and reports no error.
func (s *articleService) DeleteArticle(id string) error {
	return s.store.Update(func(lib *curate.Library) error {
		lib.DeleteArticle(id)
		return nil
	})
}

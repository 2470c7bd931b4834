package service

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/wecurate/wecurate/curate"
	"github.com/wecurate/wecurate/curate/repository"
)

// Store owns the in-memory library and its persisted snapshots. Every
// successful mutation is written through to the blob repository (articles and
// categories as two independent JSON blobs) before Update returns, and bumps
// a revision counter that the assistant uses to detect context changes.
type Store struct {
	repo repository.BlobRepository

	mu  sync.RWMutex
	lib *curate.Library
	rev uint64
}

// NewStore loads the persisted library, falling back to the built-in seed
// when a blob is missing or unreadable.
func NewStore(repo repository.BlobRepository) *Store {
	seed := curate.SeedLibrary()
	lib := &curate.Library{}

	if err := loadBlob(repo, repository.BlobArticles, &lib.Articles); err != nil {
		if err != sql.ErrNoRows {
			slog.Warn("articles blob unreadable, using seed data", "error", err)
		}
		lib.Articles = seed.Articles
	}
	if err := loadBlob(repo, repository.BlobCategories, &lib.Categories); err != nil {
		if err != sql.ErrNoRows {
			slog.Warn("categories blob unreadable, using default categories", "error", err)
		}
		lib.Categories = seed.Categories
	}

	return &Store{repo: repo, lib: lib}
}

func loadBlob(repo repository.BlobRepository, key string, out any) error {
	raw, err := repo.SelectBlob(key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), out)
}

// View runs fn with read access to the library.
func (s *Store) View(fn func(lib *curate.Library)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.lib)
}

// Update runs fn with write access to the library. If fn succeeds, both
// snapshots are persisted and the revision is bumped.
func (s *Store) Update(fn func(lib *curate.Library) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.lib); err != nil {
		return err
	}
	s.rev++
	return s.persist()
}

// Revision returns a counter that changes whenever the library is mutated.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

func (s *Store) persist() error {
	articles, err := json.Marshal(s.lib.Articles)
	if err != nil {
		return err
	}
	categories, err := json.Marshal(s.lib.Categories)
	if err != nil {
		return err
	}
	if err := s.repo.UpsertBlob(repository.BlobArticles, string(articles)); err != nil {
		return err
	}
	return s.repo.UpsertBlob(repository.BlobCategories, string(categories))
}

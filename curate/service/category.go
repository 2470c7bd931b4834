package service

import (
	"github.com/wecurate/wecurate/curate"
)

// CategoryService defines the interface for registry operations.
type CategoryService interface {
	// ListCategories returns the ordered registry labels.
	ListCategories() []string

	// AddCategory appends a label. Duplicate or empty labels are ignored;
	// the returned bool reports whether the registry changed.
	AddCategory(label string) (bool, error)

	// RemoveCategory removes a label and reassigns its articles to the
	// reserved fallback. Returns how many articles were reassigned.
	RemoveCategory(label string) (int, error)
}

// categoryService is the default implementation of CategoryService.
type categoryService struct {
	store *Store
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store *Store) CategoryService {
	return &categoryService{store: store}
}

// ListCategories returns a copy of the ordered registry.
func (s *categoryService) ListCategories() []string {
	var out []string
	s.store.View(func(lib *curate.Library) {
		out = append([]string(nil), lib.Categories...)
	})
	return out
}

// AddCategory appends a label to the registry.
func (s *categoryService) AddCategory(label string) (bool, error) {
	added := false
	err := s.store.Update(func(lib *curate.Library) error {
		added = lib.AddCategory(label)
		return nil
	})
	return added, err
}

// RemoveCategory removes a label and cascades the reassignment of every
// article that referenced it.
func (s *categoryService) RemoveCategory(label string) (int, error) {
	reassigned := 0
	err := s.store.Update(func(lib *curate.Library) error {
		n, err := lib.RemoveCategory(label)
		if err != nil {
			return err
		}
		reassigned = n
		return nil
	})
	return reassigned, err
}

// Package services – CategoryService
//
// This file implements the CategoryService, which manages the category
// lifecycle: validation, CRUD orchestration against the repository, the
// read-through/write-through category cache, and publication of
// category-updated notifications that drive course cache invalidation.
//
// Service-level errors (e.g., ErrCategoryNotFound, ErrConflict) are returned
// for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-course-catalog/internal/cache"
	"github.com/tbourn/go-course-catalog/internal/domain"
	"github.com/tbourn/go-course-catalog/internal/events"
)

// CategoryInput is the write payload for category create/update.
type CategoryInput struct {
	// Name is the category name; must not be blank or whitespace-only.
	Name string
}

// CategoryRepo defines the repository contract required by CategoryService.
// Implementations are responsible for persistence of category records and
// for enforcing name uniqueness and referential integrity in the store.
type CategoryRepo interface {
	// CreateCategory inserts a new category row.
	CreateCategory(ctx context.Context, db *gorm.DB, name string) (*domain.Category, error)

	// GetCategory fetches a category by id.
	GetCategory(ctx context.Context, db *gorm.DB, id int64) (*domain.Category, error)

	// ListCategories returns all categories (non-paginated).
	ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error)

	// CountCategories returns the total matching filter, for pagination.
	CountCategories(ctx context.Context, db *gorm.DB, filter string) (int64, error)

	// ListCategoriesPage returns a page of categories matching filter.
	ListCategoriesPage(ctx context.Context, db *gorm.DB, filter string, offset, limit int) ([]domain.Category, error)

	// UpdateCategory persists a modified category.
	UpdateCategory(ctx context.Context, db *gorm.DB, c *domain.Category) (*domain.Category, error)

	// DeleteCategory removes a category by id.
	DeleteCategory(ctx context.Context, db *gorm.DB, id int64) error
}

// CategoryService provides category CRUD with cache management. The cache and
// notifier are injected at construction; there is no process-wide state.
type CategoryService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the category repository used by this service.
	Repo CategoryRepo
	// Cache holds id → snapshot entries; read-through on Get, write-through
	// on Update, evicted on Delete.
	Cache *cache.Store[domain.Category]
	// Events receives a CategoryUpdated publication after every successful
	// Update. May be nil in tests that do not exercise invalidation.
	Events *events.Notifier
}

var _ Crud[domain.Category, CategoryInput] = (*CategoryService)(nil)

// NewCategoryService constructs a CategoryService with its dependencies.
func NewCategoryService(db *gorm.DB, r CategoryRepo, c *cache.Store[domain.Category], n *events.Notifier) *CategoryService {
	return &CategoryService{DB: db, Repo: r, Cache: c, Events: n}
}

// Create validates and persists a new category. The cache is not touched;
// it is populated lazily by Get or explicitly by Update.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: category name must not be blank", ErrInvalidInput)
	}
	cat, err := s.Repo.CreateCategory(ctx, s.DB, in.Name)
	if err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("%w: category name already in use", ErrConflict)
		}
		return nil, err
	}
	return cat, nil
}

// Get returns a category by id, read-through: a cached snapshot is returned
// without a store round-trip; on miss the store result is cached.
func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	if c, ok := s.Cache.Get(id); ok {
		return &c, nil
	}
	cat, err := s.Repo.GetCategory(ctx, s.DB, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	s.Cache.Put(id, *cat)
	return cat, nil
}

// List returns all categories, bypassing the cache.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.Repo.ListCategories(ctx, s.DB)
}

// ListPage returns a page of categories whose name contains filter
// (case-insensitive, trimmed). page is zero-based; size defaults to
// DefaultPageSize.
func (s *CategoryService) ListPage(ctx context.Context, filter string, page, size int) (*domain.Page[domain.Category], error) {
	page, size = clampPage(page, size)
	f := trimFilter(filter)

	total, err := s.Repo.CountCategories(ctx, s.DB, f)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return domain.NewPage[domain.Category](nil, page, size, 0), nil
	}
	items, err := s.Repo.ListCategoriesPage(ctx, s.DB, f, page*size, size)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(items, page, size, total), nil
}

// Update validates and persists a new name for the category, writes the
// updated snapshot through to the cache (replace, not merge), and publishes
// a CategoryUpdated notification. The notification runs synchronously after
// the row is committed and before Update returns; subscriber failures do not
// roll the update back.
func (s *CategoryService) Update(ctx context.Context, id int64, in CategoryInput) (*domain.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: category name must not be blank", ErrInvalidInput)
	}

	cat, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	cat.Name = in.Name
	updated, err := s.Repo.UpdateCategory(ctx, s.DB, cat)
	if err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("%w: category name already in use", ErrConflict)
		}
		return nil, err
	}

	s.Cache.Put(id, *updated)
	if s.Events != nil {
		s.Events.Publish(ctx, events.CategoryUpdated{CategoryID: id})
	}
	return updated, nil
}

// Delete removes a category by id and evicts its cache entry. Deleting an
// absent id succeeds; a category still referenced by courses fails with
// ErrConflict and leaves the cache entry in place.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.DeleteCategory(ctx, s.DB, id); err != nil {
		if isConflict(err) {
			return fmt.Errorf("%w: category is referenced by existing courses", ErrConflict)
		}
		return err
	}
	s.Cache.Evict(id)
	return nil
}

// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Category
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Uniqueness and foreign-key enforcement
// live in the schema; callers classify the resulting driver errors.
//
// Error semantics:
//   - When a category is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-course-catalog/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// nameFilter appends the substring predicate used by the pageable queries.
// Both sides of the LIKE go through the same lower(trim(...)) normalization
// in SQL, so a filter equal to a stored name always matches it, bytes the
// database cannot lowercase included. An empty filter matches everything.
func nameFilter(q *gorm.DB, column, filter string) *gorm.DB {
	if filter == "" {
		return q
	}
	return q.Where("lower(trim("+column+")) LIKE lower('%' || trim(?) || '%')", filter)
}

// CreateCategory inserts a new category row with the given name.
//
// On success, it returns the persisted Category with its store-assigned id.
// A duplicate name surfaces as the driver's unique-constraint error.
func CreateCategory(ctx context.Context, db *gorm.DB, name string) (*domain.Category, error) {
	c := &domain.Category{Name: name}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetCategory fetches a single category by id, or ErrNotFound if missing.
func GetCategory(ctx context.Context, db *gorm.DB, id int64) (*domain.Category, error) {
	var c domain.Category
	if err := db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories returns all categories in insertion order. It returns an
// empty slice when the table is empty.
func ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	var out []domain.Category
	err := db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// CountCategories returns the number of categories matching filter.
func CountCategories(ctx context.Context, db *gorm.DB, filter string) (int64, error) {
	var total int64
	q := db.WithContext(ctx).Model(&domain.Category{})
	err := nameFilter(q, "name", filter).Count(&total).Error
	return total, err
}

// ListCategoriesPage returns a page of categories matching filter, ordered by
// id. Use CountCategories to obtain the total for pagination metadata.
//
// The caller is responsible for computing offset and limit (page*size).
func ListCategoriesPage(ctx context.Context, db *gorm.DB, filter string, offset, limit int) ([]domain.Category, error) {
	var out []domain.Category
	q := nameFilter(db.WithContext(ctx), "name", filter)
	err := q.Order("id").Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// UpdateCategory persists the given category under its existing id.
func UpdateCategory(ctx context.Context, db *gorm.DB, c *domain.Category) (*domain.Category, error) {
	if err := db.WithContext(ctx).Save(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory removes a category by id. Deleting an absent id affects zero
// rows and is not an error; a foreign-key violation (courses still reference
// the category) surfaces as the driver's constraint error.
func DeleteCategory(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.Category{}, id).Error
}

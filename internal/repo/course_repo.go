// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Course
// model. Reads preload the parent category so snapshots handed to the cache
// and the API always embed the full object.
package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-course-catalog/internal/domain"
)

// courseFilter appends the course-or-category name predicate used by the
// pageable queries. Both sides of each LIKE share the same lower(trim(...))
// normalization, as in nameFilter.
func courseFilter(q *gorm.DB, filter string) *gorm.DB {
	if filter == "" {
		return q
	}
	return q.
		Joins("JOIN categories ON categories.id = courses.category_id").
		Where("lower(trim(courses.name)) LIKE lower('%' || trim(?) || '%') OR lower(trim(categories.name)) LIKE lower('%' || trim(?) || '%')", filter, filter)
}

// CreateCourse inserts a new course row referencing the already-resolved
// category. Associations are omitted from the insert so the category row is
// never upserted as a side effect; the resolved value is attached to the
// returned snapshot instead.
func CreateCourse(ctx context.Context, db *gorm.DB, name string, category domain.Category) (*domain.Course, error) {
	c := &domain.Course{Name: name, CategoryID: category.ID}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return nil, err
	}
	c.Category = category
	return c, nil
}

// GetCourse fetches a course by id with its category preloaded, or
// ErrNotFound if missing.
func GetCourse(ctx context.Context, db *gorm.DB, id int64) (*domain.Course, error) {
	var c domain.Course
	if err := db.WithContext(ctx).Preload("Category").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCourses returns all courses in insertion order with categories
// preloaded.
func ListCourses(ctx context.Context, db *gorm.DB) ([]domain.Course, error) {
	var out []domain.Course
	err := db.WithContext(ctx).Preload("Category").Order("courses.id").Find(&out).Error
	return out, err
}

// CountCourses returns the number of courses whose name, or whose category's
// name, matches filter.
func CountCourses(ctx context.Context, db *gorm.DB, filter string) (int64, error) {
	var total int64
	q := db.WithContext(ctx).Model(&domain.Course{})
	err := courseFilter(q, filter).Count(&total).Error
	return total, err
}

// ListCoursesPage returns a page of courses matching filter, ordered by id,
// with categories preloaded.
func ListCoursesPage(ctx context.Context, db *gorm.DB, filter string, offset, limit int) ([]domain.Course, error) {
	var out []domain.Course
	q := courseFilter(db.WithContext(ctx).Model(&domain.Course{}), filter)
	err := q.Preload("Category").Order("courses.id").Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// ListCoursesByCategory returns every course referencing categoryID. Used by
// the category-updated handler to evict dependent cache entries.
func ListCoursesByCategory(ctx context.Context, db *gorm.DB, categoryID int64) ([]domain.Course, error) {
	var out []domain.Course
	err := db.WithContext(ctx).Where("category_id = ?", categoryID).Order("id").Find(&out).Error
	return out, err
}

// UpdateCourse persists the given course under its existing id, omitting the
// association so only the scalar columns (name, category_id) are written.
func UpdateCourse(ctx context.Context, db *gorm.DB, c *domain.Course) (*domain.Course, error) {
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCourse removes a course by id. Absent ids affect zero rows and are
// not an error.
func DeleteCourse(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.Course{}, id).Error
}

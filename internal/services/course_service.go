// Package services – CourseService
//
// This file implements the CourseService. It mirrors the category service
// with one added dependency: every create/update first resolves the payload's
// category id to a live category through the CategoryService, so a course can
// never be written against a missing parent. The service also subscribes to
// category-updated notifications and evicts the cached snapshots of every
// course under the changed category; without that, a renamed category would
// leave cached courses serving the old embedded name.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-course-catalog/internal/cache"
	"github.com/tbourn/go-course-catalog/internal/domain"
	"github.com/tbourn/go-course-catalog/internal/events"
)

// CourseInput is the write payload for course create/update. CategoryID is a
// pointer so a missing field is distinguishable from id zero.
type CourseInput struct {
	Name       string
	CategoryID *int64
}

// CourseRepo defines the repository contract required by CourseService.
type CourseRepo interface {
	// CreateCourse inserts a new course referencing the resolved category.
	CreateCourse(ctx context.Context, db *gorm.DB, name string, category domain.Category) (*domain.Course, error)

	// GetCourse fetches a course by id with its category preloaded.
	GetCourse(ctx context.Context, db *gorm.DB, id int64) (*domain.Course, error)

	// ListCourses returns all courses (non-paginated).
	ListCourses(ctx context.Context, db *gorm.DB) ([]domain.Course, error)

	// CountCourses returns the total matching filter, for pagination.
	CountCourses(ctx context.Context, db *gorm.DB, filter string) (int64, error)

	// ListCoursesPage returns a page of courses matching filter.
	ListCoursesPage(ctx context.Context, db *gorm.DB, filter string, offset, limit int) ([]domain.Course, error)

	// ListCoursesByCategory returns every course under categoryID.
	ListCoursesByCategory(ctx context.Context, db *gorm.DB, categoryID int64) ([]domain.Course, error)

	// UpdateCourse persists a modified course.
	UpdateCourse(ctx context.Context, db *gorm.DB, c *domain.Course) (*domain.Course, error)

	// DeleteCourse removes a course by id.
	DeleteCourse(ctx context.Context, db *gorm.DB, id int64) error
}

// CategoryResolver is the slice of the category service the course service
// needs: foreign-key resolution at write time.
type CategoryResolver interface {
	Get(ctx context.Context, id int64) (*domain.Category, error)
}

// CourseService provides course CRUD with cache management and category
// resolution.
type CourseService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the course repository used by this service.
	Repo CourseRepo
	// Cache holds id → snapshot entries for courses.
	Cache *cache.Store[domain.Course]
	// Categories resolves category ids on create/update.
	Categories CategoryResolver
}

var _ Crud[domain.Course, CourseInput] = (*CourseService)(nil)

// NewCourseService constructs a CourseService with its dependencies.
func NewCourseService(db *gorm.DB, r CourseRepo, c *cache.Store[domain.Course], categories CategoryResolver) *CourseService {
	return &CourseService{DB: db, Repo: r, Cache: c, Categories: categories}
}

// SubscribeCategoryEvents registers the course-cache eviction handler with
// the notification channel. Call once at wiring time.
func (s *CourseService) SubscribeCategoryEvents(n *events.Notifier) {
	n.Subscribe(s.onCategoryUpdated)
}

// onCategoryUpdated evicts the cached snapshot of every course under the
// changed category. The category update is already committed when this runs;
// a failure here only widens the staleness window, so it is logged and
// swallowed rather than propagated to the publisher.
func (s *CourseService) onCategoryUpdated(ctx context.Context, ev events.CategoryUpdated) {
	courses, err := s.Repo.ListCoursesByCategory(ctx, s.DB, ev.CategoryID)
	if err != nil {
		log.Warn().Err(err).Int64("category_id", ev.CategoryID).
			Msg("course cache invalidation skipped")
		return
	}
	for _, c := range courses {
		s.Cache.Evict(c.ID)
	}
}

// validate checks the shared create/update payload rules.
func (s *CourseService) validate(in CourseInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: course name must not be blank", ErrInvalidInput)
	}
	if in.CategoryID == nil {
		return fmt.Errorf("%w: course category id is required", ErrInvalidInput)
	}
	return nil
}

// Create validates the payload, resolves the category (propagating
// ErrCategoryNotFound), and persists the course with the resolved reference.
func (s *CourseService) Create(ctx context.Context, in CourseInput) (*domain.Course, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	cat, err := s.Categories.Get(ctx, *in.CategoryID)
	if err != nil {
		return nil, err
	}
	course, err := s.Repo.CreateCourse(ctx, s.DB, in.Name, *cat)
	if err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("%w: course name already in use", ErrConflict)
		}
		return nil, err
	}
	return course, nil
}

// Get returns a course by id, read-through against the course cache.
func (s *CourseService) Get(ctx context.Context, id int64) (*domain.Course, error) {
	if c, ok := s.Cache.Get(id); ok {
		return &c, nil
	}
	course, err := s.Repo.GetCourse(ctx, s.DB, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	s.Cache.Put(id, *course)
	return course, nil
}

// List returns all courses, bypassing the cache.
func (s *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	return s.Repo.ListCourses(ctx, s.DB)
}

// ListPage returns a page of courses whose name, or whose category's name,
// contains filter (case-insensitive, trimmed).
func (s *CourseService) ListPage(ctx context.Context, filter string, page, size int) (*domain.Page[domain.Course], error) {
	page, size = clampPage(page, size)
	f := trimFilter(filter)

	total, err := s.Repo.CountCourses(ctx, s.DB, f)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return domain.NewPage[domain.Course](nil, page, size, 0), nil
	}
	items, err := s.Repo.ListCoursesPage(ctx, s.DB, f, page*size, size)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(items, page, size, total), nil
}

// Update validates the payload, re-resolves the category, persists the new
// name and reference, and writes the updated snapshot through to the cache.
func (s *CourseService) Update(ctx context.Context, id int64, in CourseInput) (*domain.Course, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cat, err := s.Categories.Get(ctx, *in.CategoryID)
	if err != nil {
		return nil, err
	}

	course.Name = in.Name
	course.CategoryID = cat.ID
	course.Category = *cat
	updated, err := s.Repo.UpdateCourse(ctx, s.DB, course)
	if err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("%w: course name already in use", ErrConflict)
		}
		return nil, err
	}

	s.Cache.Put(id, *updated)
	return updated, nil
}

// Delete removes a course by id and evicts its cache entry. Absent ids
// delete successfully.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.DeleteCourse(ctx, s.DB, id); err != nil {
		if isConflict(err) {
			return fmt.Errorf("%w: course is referenced by other data", ErrConflict)
		}
		return err
	}
	s.Cache.Evict(id)
	return nil
}

// Course HTTP handlers.
//
// This file exposes REST endpoints for course resources:
//   - GET    /course            (list all)
//   - GET    /course/pageable   (list, paginated + filtered)
//   - GET    /course/{id}       (fetch one)
//   - POST   /course            (create)
//   - PUT    /course/{id}       (update)
//   - DELETE /course/{id}       (delete)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-course-catalog/internal/domain"
	"github.com/tbourn/go-course-catalog/internal/services"
)

//
// Service contracts (context-aware)
//

// CourseService defines course lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type CourseService interface {
	// Create persists a new course under an existing category.
	Create(ctx context.Context, in services.CourseInput) (*domain.Course, error)
	// Get returns a course by id with its category embedded.
	Get(ctx context.Context, id int64) (*domain.Course, error)
	// List returns all courses (non-paginated).
	List(ctx context.Context) ([]domain.Course, error)
	// ListPage returns a page of courses whose name or category name matches filter.
	ListPage(ctx context.Context, filter string, page, size int) (*domain.Page[domain.Course], error)
	// Update modifies a course's name and category by id.
	Update(ctx context.Context, id int64, in services.CourseInput) (*domain.Course, error)
	// Delete removes a course by id.
	Delete(ctx context.Context, id int64) error
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for categories and courses. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	catSvc    CategoryService
	courseSvc CourseService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(catSvc CategoryService, courseSvc CourseService) *Handlers {
	return &Handlers{catSvc: catSvc, courseSvc: courseSvc}
}

//
// DTOs
//

// CourseRequest is the JSON payload for creating or updating a course.
type CourseRequest struct {
	// Name is the course name; must not be blank.
	Name string `json:"name" example:"Go from scratch"`
	// CategoryID references an existing category; required.
	CategoryID *int64 `json:"categoryId" example:"1"`
}

//
// Handlers
//

// ListCourses godoc
// @ID          listCourses
// @Summary     List all courses
// @Description Returns every course with its category embedded, ordered by id.
// @Tags        Courses
// @Produce     json
//
// @Success     200  {array}   domain.Course
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Router      /course [get]
func (h *Handlers) ListCourses(c *gin.Context) {
	items, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		failDomain(c, err)
		return
	}
	if items == nil {
		items = []domain.Course{}
	}
	ok(c, http.StatusOK, items)
}

// ListCoursesPage godoc
// @ID          listCoursesPage
// @Summary     List courses (paginated)
// @Description Returns a page of courses whose name, or whose category's name, contains the filter (case-insensitive).
// @Tags        Courses
// @Produce     json
//
// @Param       filter  query  string  false "Substring to match against course and category names"
// @Param       page    query  int     false "Zero-based page number"  minimum(0) default(0)
// @Param       size    query  int     false "Items per page"          minimum(1) maximum(100) default(10)
//
// @Success     200  {object}  domain.Page[domain.Course]
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Router      /course/pageable [get]
func (h *Handlers) ListCoursesPage(c *gin.Context) {
	filter, page, size := pageParams(c)
	pg, err := h.courseSvc.ListPage(c.Request.Context(), filter, page, size)
	if err != nil {
		failDomain(c, err)
		return
	}
	ok(c, http.StatusOK, pg)
}

// GetCourse godoc
// @ID          getCourse
// @Summary     Get a course
// @Description Returns a single course by id with its category embedded.
// @Tags        Courses
// @Produce     json
//
// @Param       id  path  int  true  "Course ID"  example(1)
//
// @Success     200  {object}  domain.Course
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Course not found"
// @Router      /course/{id} [get]
func (h *Handlers) GetCourse(c *gin.Context) {
	id, proceed := pathID(c)
	if !proceed {
		return
	}
	course, err := h.courseSvc.Get(c.Request.Context(), id)
	if err != nil {
		failDomain(c, err)
		return
	}
	ok(c, http.StatusOK, course)
}

// CreateCourse godoc
// @ID          createCourse
// @Summary     Create a course
// @Description Creates a course under an existing category and returns the stored resource.
// @Tags        Courses
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CourseRequest  true  "Create course payload"
//
// @Success     201  {object}  domain.Course
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Category not found"
// @Failure     409  {object}  handlers.ErrorResponse "Name already in use"
// @Router      /course [post]
func (h *Handlers) CreateCourse(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	course, err := h.courseSvc.Create(c.Request.Context(), services.CourseInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		failDomain(c, err)
		return
	}
	ok(c, http.StatusCreated, course)
}

// UpdateCourse godoc
// @ID          updateCourse
// @Summary     Update a course
// @Description Modifies a course's name and category and returns the updated resource.
// @Tags        Courses
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                     true  "Course ID"  example(1)
// @Param       body  body  handlers.CourseRequest  true  "Update course payload"
//
// @Success     200  {object}  domain.Course
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Course or category not found"
// @Failure     409  {object}  handlers.ErrorResponse "Name already in use"
// @Router      /course/{id} [put]
func (h *Handlers) UpdateCourse(c *gin.Context) {
	id, proceed := pathID(c)
	if !proceed {
		return
	}
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	course, err := h.courseSvc.Update(c.Request.Context(), id, services.CourseInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		failDomain(c, err)
		return
	}
	ok(c, http.StatusOK, course)
}

// DeleteCourse godoc
// @ID          deleteCourse
// @Summary     Delete a course
// @Description Removes a course by id. Deleting an absent id succeeds.
// @Tags        Courses
// @Produce     json
//
// @Param       id  path  int  true  "Course ID"  example(1)
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Router      /course/{id} [delete]
func (h *Handlers) DeleteCourse(c *gin.Context) {
	id, proceed := pathID(c)
	if !proceed {
		return
	}
	if err := h.courseSvc.Delete(c.Request.Context(), id); err != nil {
		failDomain(c, err)
		return
	}
	noContent(c)
}

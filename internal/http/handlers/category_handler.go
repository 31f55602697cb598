// Category HTTP handlers.
//
// This file exposes REST endpoints for category resources:
//   - GET    /category            (list all)
//   - GET    /category/pageable   (list, paginated + filtered)
//   - GET    /category/{id}       (fetch one)
//   - POST   /category            (create)
//   - PUT    /category/{id}       (update)
//   - DELETE /category/{id}       (delete)
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
	"github.com/tbourn/go-course-catalog/internal/utils"
)

//
// Service contracts (context-aware)
//

// CategoryService defines category lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type CategoryService interface {
	// Create persists a new category with the given payload.
	Create(ctx context.Context, in services.CategoryInput) (*domain.Category, error)
	// Get returns a category by id.
	Get(ctx context.Context, id int64) (*domain.Category, error)
	// List returns all categories (non-paginated).
	List(ctx context.Context) ([]domain.Category, error)
	// ListPage returns a page of categories whose name matches filter.
	ListPage(ctx context.Context, filter string, page, size int) (*domain.Page[domain.Category], error)
	// Update renames a category by id.
	Update(ctx context.Context, id int64, in services.CategoryInput) (*domain.Category, error)
	// Delete removes a category by id.
	Delete(ctx context.Context, id int64) error
}

//
// DTOs
//

// CategoryRequest is the JSON payload for creating or updating a category.
type CategoryRequest struct {
	// Name is the category name; must not be blank.
	Name string `json:"name" example:"Technology"`
}

//
// Helpers
//

// pageParams parses the page/size/filter query parameters shared by the
// pageable endpoints. page is zero-based.
func pageParams(c *gin.Context) (filter string, page, size int) {
	filter = c.Query("filter")
	page = utils.AtoiDefault(c.Query("page"), 0)
	size = utils.AtoiDefault(c.Query("size"), services.DefaultPageSize)
	return
}

// pathID parses the :id path parameter, writing a 400 response when it is not
// a valid integer. The bool result reports whether the caller may proceed.
func pathID(c *gin.Context) (int64, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}

//
// Handlers
//

// ListCategories godoc
// @ID          listCategories
// @Summary     List all categories
// @Description Returns every category, ordered by id.
// @Tags        Categories
// @Produce     json
//
// @Success     200  {array}   domain.Category
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Router      /category [get]
func (h *Handlers) ListCategories(c *gin.Context) {
	items, err := h.catSvc.List(c.Request.Context())
	if err != nil {
		failDomain(c, err)
		return
	}
	if items == nil {
		items = []domain.Category{}
	}
	ok(c, http.StatusOK, items)
}

// ListCategoriesPage godoc
// @ID          listCategoriesPage
// @Summary     List categories (paginated)
// @Description Returns a page of categories whose name contains the filter (case-insensitive).
// @Tags        Categories
// @Produce     json
//
// @Param       filter  query  string  false "Substring to match against category names"
// @Param       page    query  int     false "Zero-based page number"  minimum(0) default(0)
// @Param       size    query  int     false "Items per page"          minimum(1) maximum(100) default(10)
//
// @Success     200  {object}  domain.Page[domain.Category]
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Router      /category/pageable [get]
func (h *Handlers) ListCategoriesPage(c *gin.Context) {
	filter, page, size := pageParams(c)
	pg, err := h.catSvc.ListPage(c.Request.Context(), filter, page, size)
	if err != nil {
		failDomain(c, err)
		return
	}
	ok(c, http.StatusOK, pg)
}

// GetCategory godoc
// @ID          getCategory
// @Summary     Get a category
// @Description Returns a single category by id.
// @Tags        Categories
// @Produce     json
//
// @Param       id  path  int  true  "Category ID"  example(1)
//
// @Success     200  {object}  domain.Category
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Category not found"
// @Router      /category/{id} [get]
func (h *Handlers) GetCategory(c *gin.Context) {
	id, proceed := pathID(c)
	if !proceed {
		return
	}
	cat, err := h.catSvc.Get(c.Request.Context(), id)
	if err != nil {
		failDomain(c, err)
		return
	}
	ok(c, http.StatusOK, cat)
}

// CreateCategory godoc
// @ID          createCategory
// @Summary     Create a category
// @Description Creates a category and returns the stored resource.
// @Tags        Categories
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CategoryRequest  true  "Create category payload"
//
// @Success     201  {object}  domain.Category
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse "Name already in use"
// @Router      /category [post]
func (h *Handlers) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	cat, err := h.catSvc.Create(c.Request.Context(), services.CategoryInput{Name: req.Name})
	if err != nil {
		failDomain(c, err)
		return
	}
	ok(c, http.StatusCreated, cat)
}

// UpdateCategory godoc
// @ID          updateCategory
// @Summary     Update a category
// @Description Renames a category and returns the updated resource.
// @Tags        Categories
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                       true  "Category ID"  example(1)
// @Param       body  body  handlers.CategoryRequest  true  "Update category payload"
//
// @Success     200  {object}  domain.Category
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Category not found"
// @Failure     409  {object}  handlers.ErrorResponse "Name already in use"
// @Router      /category/{id} [put]
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, proceed := pathID(c)
	if !proceed {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	cat, err := h.catSvc.Update(c.Request.Context(), id, services.CategoryInput{Name: req.Name})
	if err != nil {
		failDomain(c, err)
		return
	}
	ok(c, http.StatusOK, cat)
}

// DeleteCategory godoc
// @ID          deleteCategory
// @Summary     Delete a category
// @Description Removes a category by id. Deleting an absent id succeeds.
// @Tags        Categories
// @Produce     json
//
// @Param       id  path  int  true  "Category ID"  example(1)
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse "Category still referenced by courses"
// @Router      /category/{id} [delete]
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, proceed := pathID(c)
	if !proceed {
		return
	}
	if err := h.catSvc.Delete(c.Request.Context(), id); err != nil {
		failDomain(c, err)
		return
	}
	noContent(c)
}

package services

import (
	"context"
	"strings"

	"github.com/tbourn/go-course-catalog/internal/domain"
)

// Crud is the shared service contract implemented by both entity services.
// T is the entity type, In the write payload. Both implementations satisfy it
// structurally; the interface exists so transports and tests can be written
// once against the common shape.
type Crud[T any, In any] interface {
	// Create validates in and persists a new entity.
	Create(ctx context.Context, in In) (*T, error)
	// Get returns the entity by id, consulting the read-through cache first.
	Get(ctx context.Context, id int64) (*T, error)
	// List returns the full collection, bypassing the cache.
	List(ctx context.Context) ([]T, error)
	// ListPage returns a filtered page. page is zero-based; size defaults
	// to DefaultPageSize when not positive.
	ListPage(ctx context.Context, filter string, page, size int) (*domain.Page[T], error)
	// Update validates in, persists the change, and refreshes the cache.
	Update(ctx context.Context, id int64, in In) (*T, error)
	// Delete removes the entity and evicts its cache entry. Absent ids
	// delete successfully.
	Delete(ctx context.Context, id int64) error
}

const (
	// DefaultPageSize applies when a pageable request omits size.
	DefaultPageSize = 10
	// MaxPageSize caps a single page to keep responses bounded.
	MaxPageSize = 100
)

// clampPage bounds page/size to their documented defaults and limits.
func clampPage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// trimFilter strips surrounding whitespace so blank input means "no filter".
// Case-insensitive matching happens in SQL, where both sides of the LIKE are
// normalized identically; normalizing the filter a second time here would
// desynchronize the two sides for names lower() cannot fold.
func trimFilter(s string) string {
	return strings.TrimSpace(s)
}

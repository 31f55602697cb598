// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP responses
// (via the `fail()` helper in this package), plus the translation from service-layer
// sentinel errors to HTTP results. These codes provide clients with a stable,
// machine-readable error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, not_found, conflict) mirror common HTTP
//     status semantics to aid interoperability.
//   - All error responses must include both an HTTP status and one of these codes.
//
// Usage:
//   - Handlers pass service errors to `failDomain()`, which selects the matching
//     status and code via errors.Is on the service sentinels.
//   - Clients are expected to branch on these codes for programmatic error handling.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "conflict",
//	  "message": "category name already in use"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-course-catalog/internal/services"
)

const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeNotFound    = "not_found"
	ErrCodeConflict    = "conflict"
	ErrCodeRateLimited = "too_many_requests"
	ErrCodeInternal    = "internal_error"

	// Domain-specific:
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// failDomain translates a service-layer error into a structured HTTP response.
//
// Mapping:
//   - services.ErrInvalidInput      -> 400 bad_request (payload message preserved)
//   - services.ErrCategoryNotFound  -> 404 not_found
//   - services.ErrCourseNotFound    -> 404 not_found
//   - services.ErrConflict          -> 409 conflict (payload message preserved)
//   - anything else                 -> 400 bad_request with a generic message;
//     unexpected store failures are surfaced to clients as a request problem
//     rather than leaking internals.
func failDomain(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrCategoryNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "category not found")
	case errors.Is(err, services.ErrCourseNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "course not found")
	case errors.Is(err, services.ErrConflict):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "an unexpected error occurred")
	}
}

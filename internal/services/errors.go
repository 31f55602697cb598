// Package services defines the business logic for categories and courses.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer. Specific failures wrap one of these
// sentinels (errors.Is works across the wrap), and an error that is already
// one of these kinds is never wrapped a second time.
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrInvalidInput is returned when a required field is missing, blank,
	// or whitespace-only.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCategoryNotFound indicates that the requested category does not
	// exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCourseNotFound indicates that the requested course does not exist.
	ErrCourseNotFound = errors.New("course not found")

	// ErrConflict is returned when the store rejects a write for integrity
	// reasons: a duplicate unique name, or a delete blocked by dependents.
	ErrConflict = errors.New("conflicting or referenced data")
)

// isConflict detects unique and foreign-key constraint violations across
// drivers that may not map to gorm.ErrDuplicatedKey.
func isConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	// SQLite: "UNIQUE constraint failed", "FOREIGN KEY constraint failed"
	// Postgres: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "duplicate key")
}

// isNotFound treats repo-level not found sentinels as "not found" in a
// driver-agnostic way.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

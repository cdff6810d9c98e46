/*
errors.go - Centralized error types for the academy domain

PURPOSE:
  All error types in one place for consistency and discoverability.
  Stores and the report engine return these; the API maps them to
  HTTP status codes.

ERROR CATEGORIES:
  1. Not found - a referenced entity does not exist
  2. Validation - missing identifiers, kind mismatch
  3. Concurrency - the store could not apply an atomic write, retry

USAGE:
  if errors.Is(err, academy.ErrNotFound) {
      // 404
  }

  var nf *academy.NotFoundError
  if errors.As(err, &nf) {
      log.Printf("missing %s %s", nf.Entity, nf.ID)
  }

SEE ALSO:
  - store.go: Interfaces returning these errors
  - report/engine.go: Validation before any read or write
  - api/handlers.go: Status code mapping
*/
package academy

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a referenced entity doesn't exist.
	ErrNotFound = errors.New("entity not found")

	// ErrValidation is returned when a request is missing a required field.
	ErrValidation = errors.New("validation failed")

	// ErrKindMismatch is returned when a scope's kind doesn't match the
	// requested report kind (e.g. a month report against a course scope).
	ErrKindMismatch = errors.New("scope kind mismatch")

	// ErrConcurrentModification is returned when a store could not apply a
	// write because of a concurrent writer. Safe to retry.
	ErrConcurrentModification = errors.New("concurrent modification detected")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotFoundError names the missing entity.
type NotFoundError struct {
	Entity string // "student", "parent", "lesson", "scope", "report"
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NotFound is a shorthand constructor.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError describes a rejected request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// KindMismatchError is a ValidationError raised when a scope is tagged with a
// kind other than the one the report needs.
type KindMismatchError struct {
	ScopeID  ScopeID
	Expected ScopeKind
	Actual   ScopeKind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("scope %s is a %s, not a %s", e.ScopeID, e.Actual, e.Expected)
}

// Is matches both ErrKindMismatch and ErrValidation.
func (e *KindMismatchError) Is(target error) bool {
	return target == ErrKindMismatch || target == ErrValidation
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRetryable returns true if the error might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrKindMismatch)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

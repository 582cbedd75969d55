// Package apperr defines the error taxonomy the services return.
// Handlers map each kind to an HTTP status; the conflict reasons are
// stable strings clients branch on.
package apperr

import "fmt"

// Conflict reasons.
const (
	ConflictPendingExists   = "pending-exists"
	ConflictAlreadyUnlocked = "already-unlocked"
	ConflictAlreadyReviewed = "already-reviewed"
)

// ValidationError reports malformed or out-of-range input with
// field-level detail.
type ValidationError struct {
	Fields map[string]string
}

func NewValidation(field, problem string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: problem}}
}

// Set records a problem for a field, allocating the map on first use so
// callers can accumulate into a zero value.
func (e *ValidationError) Set(field, problem string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = problem
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

type AuthorizationError struct {
	Reason string
}

func NewAuthorization(reason string) *AuthorizationError {
	return &AuthorizationError{Reason: reason}
}

func (e *AuthorizationError) Error() string {
	return "forbidden: " + e.Reason
}

// ConflictError names the specific conflict so concurrent callers can
// tell a duplicate pending claim from an already-finished review.
type ConflictError struct {
	Reason string
}

func NewConflict(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Reason
}

// ExternalServiceError wraps a failure from a collaborator (media
// store, notification channel). The fire-and-forget paths log it and
// move on.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// Package apperr defines the error taxonomy shared by the core packages.
// Handlers map these onto HTTP statuses; out-of-scope reads are reported as
// not-found so callers cannot probe for records they may not see.
package apperr

import "fmt"

// ValidationError reports a missing or malformed field. Nothing has been
// written when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError covers both unknown ids and records outside the caller's
// scope; the two are indistinguishable on purpose.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func NotFound(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}

// ConflictError reports a failed transition precondition. CurrentStatus is
// included so the caller can see what state the record was actually in.
type ConflictError struct {
	Message       string
	CurrentStatus string
}

func (e *ConflictError) Error() string {
	if e.CurrentStatus == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (current status: %s)", e.Message, e.CurrentStatus)
}

func Conflict(message, currentStatus string) *ConflictError {
	return &ConflictError{Message: message, CurrentStatus: currentStatus}
}

// UpstreamError wraps a collaborator failure (directory, image store, db).
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func Upstream(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Err: err}
}

package domain

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a requested record does not exist.
type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError signals a rejected request payload or parameter.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	switch {
	case e.Msg != "" && e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

func (e ValidationError) Unwrap() error { return e.Err }

// ConflictError signals a uniqueness or referential constraint violation.
type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// ForbiddenError signals an authenticated caller lacking a permission or
// attempting a refused operation.
type ForbiddenError struct {
	Permission string
	Msg        string
}

func (e ForbiddenError) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Permission != "":
		return fmt.Sprintf("forbidden: missing the '%s' permission", e.Permission)
	default:
		return "forbidden"
	}
}

// NotFound builds a NotFoundError for the named resource.
func NotFound(resource string) error { return NotFoundError{Resource: resource} }

// Invalid builds a ValidationError for a field.
func Invalid(field, msg string) error { return ValidationError{Field: field, Msg: msg} }

// Invalidf builds a ValidationError with a formatted message.
func Invalidf(field, format string, args ...any) error {
	return ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Conflict builds a ConflictError for the named resource.
func Conflict(resource, msg string) error { return ConflictError{Resource: resource, Msg: msg} }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

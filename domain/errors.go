package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// FieldError is a validation failure scoped to a single input field, so the
// web boundary can bind the message to the offending form field.
type FieldError struct {
	Code    ErrorCode
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewFieldError builds a field-scoped domain error.
func NewFieldError(code ErrorCode, field, message string) *FieldError {
	return &FieldError{Code: code, Field: field, Message: message}
}

// Common domain errors.
var (
	ErrUserNotFound    = NewError(ErrCodeNotFound, "User not found")
	ErrEmailNotFound   = NewError(ErrCodeNotFound, "Email not found")
	ErrEmailTaken      = NewError(ErrCodeForbidden, "Email has already been taken.")
	ErrBadCredentials  = NewError(ErrCodeForbidden, "Incorrect password or email")
	ErrSessionNotFound = NewError(ErrCodeNotFound, "session not found")
	ErrUnauthorized    = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload  = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	var fErr *FieldError
	if errors.As(err, &fErr) {
		return fErr.Code == code
	}
	return false
}

// AsFieldError extracts a field-scoped error when present.
func AsFieldError(err error) (*FieldError, bool) {
	var fErr *FieldError
	if errors.As(err, &fErr) {
		return fErr, true
	}
	return nil, false
}

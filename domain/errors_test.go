package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsDomainError(t *testing.T) {
	err := NewError(ErrCodeForbidden, "nope")
	if !IsDomainError(err, ErrCodeForbidden) {
		t.Error("expected forbidden match")
	}
	if IsDomainError(err, ErrCodeNotFound) {
		t.Error("unexpected not-found match")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !IsDomainError(wrapped, ErrCodeForbidden) {
		t.Error("expected match through wrapping")
	}

	if IsDomainError(errors.New("plain"), ErrCodeInternal) {
		t.Error("plain errors carry no code")
	}
}

func TestIsDomainError_FieldError(t *testing.T) {
	err := NewFieldError(ErrCodeInvalid, "password", "Passwords do not match.")
	if !IsDomainError(err, ErrCodeInvalid) {
		t.Error("field errors should match their code")
	}
}

func TestAsFieldError(t *testing.T) {
	fieldErr := NewFieldError(ErrCodeNotFound, "email", "Email not found")
	wrapped := fmt.Errorf("outer: %w", fieldErr)

	got, ok := AsFieldError(wrapped)
	if !ok {
		t.Fatal("expected field error through wrapping")
	}
	if got.Field != "email" || got.Message != "Email not found" {
		t.Errorf("got %+v", got)
	}

	if _, ok := AsFieldError(NewError(ErrCodeNotFound, "x")); ok {
		t.Error("plain domain error is not field-scoped")
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("db down")
	err := WrapError(ErrCodeInternal, "lookup failed", inner)
	if !errors.Is(err, inner) {
		t.Error("expected unwrap to inner error")
	}
	if err.Error() != "lookup failed: db down" {
		t.Errorf("Error() = %q", err.Error())
	}
}

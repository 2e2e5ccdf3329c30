package utils

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginAlreadyExists = errors.New("login already exists")
	ErrDatabaseError      = errors.New("database error")

	ErrStudentNotFound   = fmt.Errorf("student %w", ErrNotFound)
	ErrFoodNotFound      = fmt.Errorf("food item %w", ErrNotFound)
	ErrPackNotFound      = fmt.Errorf("menu pack %w", ErrNotFound)
	ErrPackEntryNotFound = fmt.Errorf("menu pack entry %w", ErrNotFound)
)

// ValidationError reports a rejected input. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

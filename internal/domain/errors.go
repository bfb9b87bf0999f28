package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or request fails validation.
	// ValidationErrors unwraps to it so callers can use errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidSex is returned when a sex value is outside the enumeration.
	ErrInvalidSex = errors.New("invalid sex value")

	// ErrEmptyAdminID is returned when an administrator has no identifier.
	ErrEmptyAdminID = errors.New("administrator ID cannot be empty")

	// ErrEmptyHashedPassword is returned when an administrator is built without a hash.
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// ValidationErrors collects human readable messages keyed by request field.
// It serializes as the {"field": ["message", ...]} object returned with 422 responses.
type ValidationErrors struct {
	Fields map[string][]string
}

// NewValidationErrors returns an empty collection.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{Fields: make(map[string][]string)}
}

// Add appends a message for field.
func (e *ValidationErrors) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Has reports whether field already carries at least one message.
func (e *ValidationErrors) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// Empty reports whether no messages were collected.
func (e *ValidationErrors) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns e as an error when it holds messages and nil otherwise.
func (e *ValidationErrors) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Error implements the error interface. Fields are listed in sorted order.
func (e *ValidationErrors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, ", "))
}

// Unwrap returns ErrValidation to support errors.Is.
func (e *ValidationErrors) Unwrap() error {
	return ErrValidation
}

package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the database rejects an entity
	// (check, not-null or foreign key constraint).
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrAdminNotFound indicates that the requested administrator does not exist.
	ErrAdminNotFound = fmt.Errorf("%w: administrator", ErrNotFound)

	// ErrTokenNotFound indicates that the access token record does not exist,
	// either because it was never issued or because it was revoked.
	ErrTokenNotFound = fmt.Errorf("%w: access token", ErrNotFound)

	// ErrEmailExists indicates that an administrator with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrAdminExists indicates that the singleton administrator row is already taken.
	ErrAdminExists = fmt.Errorf("%w: administrator", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

package account

import "errors"

var (
	// ErrAdminExists is returned by Register when an administrator is already registered.
	// API layer should map this to HTTP 403 Forbidden.
	ErrAdminExists = errors.New("an administrator already exists")

	// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
	// Both cases share this error so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("incorrect credentials")
)

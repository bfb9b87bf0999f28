// Package account implements the administrator account operations: register,
// login, fetch, update, logout and delete. It validates requests, coordinates
// the admin, token and blob stores, and reports failures as sentinel errors or
// *domain.ValidationErrors for the API layer to map to HTTP responses.
package account

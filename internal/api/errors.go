package api

import (
	"errors"
	"net/http"

	"github.com/soloadmin/admin-api/internal/api/middleware"
	"github.com/soloadmin/admin-api/internal/api/shared"
	"github.com/soloadmin/admin-api/internal/domain"
	"github.com/soloadmin/admin-api/internal/service/account"
	"github.com/soloadmin/admin-api/internal/service/auth"
	"github.com/soloadmin/admin-api/internal/store"
)

// Client-facing messages.
const (
	MsgRegistered         = "Administrator created successfully"
	MsgLoggedIn           = "Login successful"
	MsgUpdated            = "Profile updated successfully"
	MsgLoggedOut          = "Logout successful"
	MsgDeleted            = "Administrator account deleted"
	MsgAdminExists        = "An administrator already exists"
	MsgInvalidCredentials = "Incorrect credentials"
	MsgInvalidRequest     = "Invalid request format"
	MsgRequestTooLarge    = "Request body too large"
	MsgUnexpected         = "An unexpected error occurred"
)

// ErrMalformedRequest is returned when the request body cannot be decoded.
var ErrMalformedRequest = errors.New("malformed request body")

// ErrRequestTooLarge is returned when the request body exceeds the upload limit.
var ErrRequestTooLarge = errors.New("request body too large")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity

	case errors.Is(err, account.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// The single administrator slot is taken.
	case errors.Is(err, account.ErrAdminExists),
		errors.Is(err, store.ErrAdminExists):
		return http.StatusForbidden

	// Token problems past the gate mean the session vanished mid-request.
	case errors.Is(err, auth.ErrRevokedToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, store.ErrAdminNotFound):
		return http.StatusForbidden

	case errors.Is(err, ErrMalformedRequest):
		return http.StatusBadRequest

	case errors.Is(err, ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return MsgUnexpected
	case errors.Is(err, account.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, account.ErrAdminExists),
		errors.Is(err, store.ErrAdminExists):
		return MsgAdminExists
	case errors.Is(err, auth.ErrRevokedToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, store.ErrAdminNotFound):
		return middleware.GateMessage
	case errors.Is(err, ErrMalformedRequest):
		return MsgInvalidRequest
	case errors.Is(err, ErrRequestTooLarge):
		return MsgRequestTooLarge
	default:
		return MsgUnexpected
	}
}

// HandleAPIError writes the response for err. Validation failures produce the
// 422 field map; every other error is reduced to a status and a safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs *domain.ValidationErrors
	if errors.As(err, &verrs) && verrs != nil {
		shared.RespondWithValidationErrors(w, r, verrs)
		return
	}
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

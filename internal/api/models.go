package api

import (
	"github.com/soloadmin/admin-api/internal/domain"
)

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string                `json:"message"`
	User    *domain.Administrator `json:"user"`

	// Token is the bearer token for the Authorization header.
	Token string `json:"token"`
}

// UserResponse is returned by a successful profile update.
type UserResponse struct {
	Message string                `json:"message"`
	User    *domain.Administrator `json:"user"`
}

// MessageResponse carries only a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

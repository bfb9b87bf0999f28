package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/soloadmin/admin-api/internal/domain"
)

// TokenStore persists the records behind issued bearer tokens.
type TokenStore interface {
	// Create saves a new access token record.
	Create(ctx context.Context, token *domain.AccessToken) error

	// Get retrieves a token record by ID.
	// Returns ErrTokenNotFound if it does not exist or was revoked.
	Get(ctx context.Context, id uuid.UUID) (*domain.AccessToken, error)

	// Touch records that the token was used at the given time.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error

	// Delete revokes a single token.
	// Returns ErrTokenNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/soloadmin/admin-api/internal/domain"
)

// AdminStore defines the interface for administrator persistence.
type AdminStore interface {
	// Count returns the number of administrator records.
	Count(ctx context.Context) (int, error)

	// Create saves a new administrator.
	// Returns ErrEmailExists if the email is taken and ErrAdminExists if
	// another administrator already occupies the singleton row.
	Create(ctx context.Context, admin *domain.Administrator) error

	// GetByID retrieves an administrator by ID.
	// Returns ErrAdminNotFound if the record does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Administrator, error)

	// GetByEmail retrieves an administrator by email address.
	// Returns ErrAdminNotFound if the record does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Administrator, error)

	// EmailExists reports whether email is used by any administrator other than exclude.
	// Pass uuid.Nil to check against every record.
	EmailExists(ctx context.Context, email string, exclude uuid.UUID) (bool, error)

	// Update persists every field of admin, including HashedPassword.
	// Returns ErrAdminNotFound if the record does not exist and ErrEmailExists
	// if the new email collides with another record.
	Update(ctx context.Context, admin *domain.Administrator) error

	// Delete removes the administrator and every access token issued to it.
	// Returns ErrAdminNotFound if the record does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

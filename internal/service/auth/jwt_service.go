package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService signs and verifies the bearer tokens handed to clients.
type JWTService interface {
	// GenerateToken creates a signed JWT for the administrator. tokenID becomes
	// the jti claim and links the token to its persisted record.
	GenerateToken(ctx context.Context, userID, tokenID uuid.UUID, expiresAt time.Time) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns the claims if the token is valid, or an error if validation fails
	// (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims structure for the JWT tokens.
type Claims struct {
	// UserID is the unique identifier of the administrator the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenID identifies the access token record; it is the jti claim.
	TokenID uuid.UUID `json:"jti,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}

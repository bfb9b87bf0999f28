package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/soloadmin/admin-api/internal/service/auth"
)

// MockJWTService is a mock implementation of the auth.JWTService interface.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID, tokenID uuid.UUID, expiresAt time.Time) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the auth.JWTService.GenerateToken method.
// By default the token string is "<userID>:<tokenID>".
func (m *MockJWTService) GenerateToken(ctx context.Context, userID, tokenID uuid.UUID, expiresAt time.Time) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID, tokenID, expiresAt)
	}
	return userID.String() + ":" + tokenID.String(), nil
}

// ValidateToken implements the auth.JWTService.ValidateToken method.
// By default it parses tokens produced by GenerateToken.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if len(tokenString) != 2*36+1 || tokenString[36] != ':' {
		return nil, auth.ErrInvalidToken
	}
	userID, err := uuid.Parse(tokenString[:36])
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	tokenID, err := uuid.Parse(tokenString[37:])
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: userID, TokenID: tokenID, Subject: userID.String()}, nil
}

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/soloadmin/admin-api/internal/domain"
	"github.com/soloadmin/admin-api/internal/platform/logger"
	"github.com/soloadmin/admin-api/internal/store"
)

// TokenName labels every access token record issued at register and login.
const TokenName = "auth_token"

// TokenService issues, resolves and revokes the bearer tokens of administrators.
// Each token is a signed JWT whose jti points at a record in the token store,
// so deleting the record revokes the token before it expires.
type TokenService struct {
	jwt      JWTService
	tokens   store.TokenStore
	lifetime time.Duration
	timeFunc func() time.Time
}

// NewTokenService creates a token service. lifetime bounds both the JWT exp
// claim and the record's expiry.
func NewTokenService(jwtSvc JWTService, tokens store.TokenStore, lifetime time.Duration) *TokenService {
	return &TokenService{
		jwt:      jwtSvc,
		tokens:   tokens,
		lifetime: lifetime,
		timeFunc: time.Now,
	}
}

// Issue persists a new token record for adminID and returns the signed token string.
func (s *TokenService) Issue(ctx context.Context, adminID uuid.UUID) (string, *domain.AccessToken, error) {
	now := s.timeFunc().UTC()
	record := &domain.AccessToken{
		ID:              uuid.New(),
		AdministratorID: adminID,
		Name:            TokenName,
		CreatedAt:       now,
		ExpiresAt:       now.Add(s.lifetime),
	}

	if err := s.tokens.Create(ctx, record); err != nil {
		return "", nil, fmt.Errorf("failed to store access token: %w", err)
	}

	signed, err := s.jwt.GenerateToken(ctx, adminID, record.ID, record.ExpiresAt)
	if err != nil {
		if delErr := s.tokens.Delete(ctx, record.ID); delErr != nil {
			logger.FromContext(ctx).Warn("failed to remove unsigned access token record",
				"token_id", record.ID,
				"error", delErr)
		}
		return "", nil, err
	}

	return signed, record, nil
}

// Resolve verifies tokenString and checks that its record still exists and has not expired.
// The record's last_used_at is updated on success.
func (s *TokenService) Resolve(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.jwt.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	record, err := s.tokens.Get(ctx, claims.TokenID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrRevokedToken
		}
		return nil, fmt.Errorf("failed to load access token: %w", err)
	}

	if record.AdministratorID != claims.UserID {
		return nil, ErrInvalidToken
	}

	now := s.timeFunc()
	if record.Expired(now) {
		return nil, ErrExpiredToken
	}

	if err := s.tokens.Touch(ctx, record.ID, now.UTC()); err != nil {
		logger.FromContext(ctx).Warn("failed to record access token use",
			"token_id", record.ID,
			"error", err)
	}

	return claims, nil
}

// Revoke deletes the token record so the token is rejected from now on.
func (s *TokenService) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	if err := s.tokens.Delete(ctx, tokenID); err != nil {
		if store.IsNotFoundError(err) {
			return ErrRevokedToken
		}
		return fmt.Errorf("failed to revoke access token: %w", err)
	}
	return nil
}

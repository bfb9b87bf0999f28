package sqldb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/soloadmin/admin-api/internal/domain"
	"github.com/soloadmin/admin-api/internal/store"
)

// TokenStore implements store.TokenStore on top of a SQL database.
type TokenStore struct {
	db store.DBTX
}

// NewTokenStore creates a new SQL implementation of the TokenStore interface.
func NewTokenStore(db store.DBTX) *TokenStore {
	return &TokenStore{db: db}
}

var _ store.TokenStore = (*TokenStore)(nil)

// Create implements store.TokenStore.Create
func (s *TokenStore) Create(ctx context.Context, token *domain.AccessToken) error {
	query := s.db.Rebind(`INSERT INTO access_tokens (id, administrator_id, name, last_used_at, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		token.ID, token.AdministratorID, token.Name, token.LastUsedAt,
		token.CreatedAt.UTC(), token.ExpiresAt.UTC(),
	)
	return MapError(err)
}

// Get implements store.TokenStore.Get
func (s *TokenStore) Get(ctx context.Context, id uuid.UUID) (*domain.AccessToken, error) {
	var token domain.AccessToken
	query := s.db.Rebind(`SELECT id, administrator_id, name, last_used_at, created_at, expires_at
		FROM access_tokens WHERE id = ?`)
	if err := sqlx.GetContext(ctx, s.db, &token, query, id); err != nil {
		err = MapError(err)
		if store.IsNotFoundError(err) {
			return nil, store.ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

// Touch implements store.TokenStore.Touch
func (s *TokenStore) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE access_tokens SET last_used_at = ? WHERE id = ?`), at.UTC(), id)
	if err != nil {
		return MapError(err)
	}
	return checkRowsAffected(result, store.ErrTokenNotFound)
}

// Delete implements store.TokenStore.Delete
func (s *TokenStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM access_tokens WHERE id = ?`), id)
	if err != nil {
		return MapError(err)
	}
	return checkRowsAffected(result, store.ErrTokenNotFound)
}

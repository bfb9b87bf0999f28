package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/soloadmin/admin-api/internal/domain"
	"github.com/soloadmin/admin-api/internal/store"
)

const adminColumns = `id, nom, prenom, email, telephone, sexe, password, photo, role, created_at, updated_at`

// AdminStore implements store.AdminStore on top of a SQL database.
type AdminStore struct {
	db store.DBTX
}

// NewAdminStore creates a new SQL implementation of the AdminStore interface.
// db is either a connection pool managed by the caller or an open *sqlx.Tx.
func NewAdminStore(db store.DBTX) *AdminStore {
	return &AdminStore{db: db}
}

// Ensure AdminStore implements store.AdminStore interface
var _ store.AdminStore = (*AdminStore)(nil)

// Count implements store.AdminStore.Count
func (s *AdminStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, s.db, &n, `SELECT COUNT(*) FROM administrators`); err != nil {
		return 0, MapError(err)
	}
	return n, nil
}

// Create implements store.AdminStore.Create
func (s *AdminStore) Create(ctx context.Context, admin *domain.Administrator) error {
	if err := admin.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := s.db.Rebind(`INSERT INTO administrators (` + adminColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		admin.ID, admin.LastName, admin.FirstName, admin.Email, admin.Phone, string(admin.Sex),
		admin.HashedPassword, admin.Photo, admin.Role, admin.CreatedAt.UTC(), admin.UpdatedAt.UTC(),
	)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// GetByID implements store.AdminStore.GetByID
func (s *AdminStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Administrator, error) {
	return s.getOne(ctx, `SELECT `+adminColumns+` FROM administrators WHERE id = ?`, id)
}

// GetByEmail implements store.AdminStore.GetByEmail
func (s *AdminStore) GetByEmail(ctx context.Context, email string) (*domain.Administrator, error) {
	return s.getOne(ctx, `SELECT `+adminColumns+` FROM administrators WHERE email = ?`, email)
}

func (s *AdminStore) getOne(ctx context.Context, query string, arg interface{}) (*domain.Administrator, error) {
	var admin domain.Administrator
	if err := sqlx.GetContext(ctx, s.db, &admin, s.db.Rebind(query), arg); err != nil {
		err = MapError(err)
		if store.IsNotFoundError(err) {
			return nil, store.ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// EmailExists implements store.AdminStore.EmailExists
func (s *AdminStore) EmailExists(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	var n int
	query := s.db.Rebind(`SELECT COUNT(*) FROM administrators WHERE email = ? AND id <> ?`)
	if err := sqlx.GetContext(ctx, s.db, &n, query, email, exclude); err != nil {
		return false, MapError(err)
	}
	return n > 0, nil
}

// Update implements store.AdminStore.Update
func (s *AdminStore) Update(ctx context.Context, admin *domain.Administrator) error {
	if err := admin.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	admin.UpdatedAt = time.Now().UTC()

	query := s.db.Rebind(`UPDATE administrators
		SET nom = ?, prenom = ?, email = ?, telephone = ?, sexe = ?, password = ?, photo = ?, role = ?, updated_at = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query,
		admin.LastName, admin.FirstName, admin.Email, admin.Phone, string(admin.Sex),
		admin.HashedPassword, admin.Photo, admin.Role, admin.UpdatedAt, admin.ID,
	)
	if err != nil {
		return MapError(err)
	}
	return checkRowsAffected(result, store.ErrAdminNotFound)
}

// Delete implements store.AdminStore.Delete. The tokens and the record are
// removed together, in the caller's transaction when the store runs on one.
func (s *AdminStore) Delete(ctx context.Context, id uuid.UUID) error {
	db, ok := s.db.(store.Beginner)
	if !ok {
		return deleteAdmin(ctx, s.db, id)
	}
	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
		return deleteAdmin(ctx, tx, id)
	})
}

func deleteAdmin(ctx context.Context, db store.DBTX, id uuid.UUID) error {
	if _, err := db.ExecContext(ctx,
		db.Rebind(`DELETE FROM access_tokens WHERE administrator_id = ?`), id); err != nil {
		return MapError(err)
	}

	result, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM administrators WHERE id = ?`), id)
	if err != nil {
		return MapError(err)
	}
	return checkRowsAffected(result, store.ErrAdminNotFound)
}

package sqldb

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/soloadmin/admin-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "no rows",
			err:  sql.ErrNoRows,
			want: store.ErrNotFound,
		},
		{
			name: "singleton violation",
			err:  &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "administrators_singleton_unique"},
			want: store.ErrAdminExists,
		},
		{
			name: "email violation",
			err:  &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "administrators_email_unique"},
			want: store.ErrEmailExists,
		},
		{
			name: "other unique violation",
			err:  &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "access_tokens_pkey"},
			want: store.ErrDuplicate,
		},
		{
			name: "wrapped foreign key violation",
			err:  fmt.Errorf("insert: %w", &pgconn.PgError{Code: foreignKeyViolationCode}),
			want: store.ErrInvalidEntity,
		},
		{
			name: "check violation",
			err:  &pgconn.PgError{Code: checkViolationCode, ConstraintName: "administrators_sexe_check"},
			want: store.ErrInvalidEntity,
		},
		{
			name: "not null violation",
			err:  &pgconn.PgError{Code: notNullViolationCode, ColumnName: "nom"},
			want: store.ErrInvalidEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, MapError(tc.err), tc.want)
		})
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	assert.NoError(t, MapError(nil))

	plain := errors.New("connection reset")
	assert.Same(t, plain, MapError(plain))

	other := &pgconn.PgError{Code: "40001"}
	assert.Equal(t, error(other), MapError(other))
}

func TestSingletonMapsBeforeEmail(t *testing.T) {
	err := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "administrators_singleton_unique"}
	mapped := MapError(err)
	assert.ErrorIs(t, mapped, store.ErrAdminExists)
	assert.False(t, errors.Is(mapped, store.ErrEmailExists))
}

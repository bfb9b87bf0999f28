// Package sqldb provides the SQL implementations of the storage interfaces
// defined in the internal/store package. It supports PostgreSQL through the
// pgx driver and SQLite through the pure Go modernc driver, and owns the
// embedded goose migrations for both dialects.
package sqldb

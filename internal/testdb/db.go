package testdb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/soloadmin/admin-api/internal/config"
	"github.com/soloadmin/admin-api/internal/platform/sqldb"
	"github.com/soloadmin/admin-api/internal/redact"
	"github.com/stretchr/testify/require"
)

// DatabaseURLEnv names the variable holding a PostgreSQL URL for integration runs.
const DatabaseURLEnv = "ADMINAPI_TEST_DATABASE_URL"

// TestTimeout bounds connection and migration work done by the helpers.
const TestTimeout = 30 * time.Second

// Config returns the database configuration tests should use.
func Config() config.DatabaseConfig {
	if url := os.Getenv(DatabaseURLEnv); url != "" {
		return config.DatabaseConfig{Driver: sqldb.DriverPostgres, URL: url, MaxOpenConns: 5}
	}
	return config.DatabaseConfig{Driver: sqldb.DriverSQLite, URL: ":memory:"}
}

// IsPostgres reports whether tests run against PostgreSQL.
func IsPostgres() bool {
	return Config().Driver == sqldb.DriverPostgres
}

// Open returns a database with every migration applied and an empty schema.
// The connection is closed when the test ends.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	cfg := Config()
	db, err := sqldb.Open(ctx, cfg)
	require.NoError(t, err, "failed to open test database %s", redact.String(cfg.URL))
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close test database: %v", err)
		}
	})

	if cfg.Driver == sqldb.DriverPostgres {
		require.NoError(t, sqldb.Migrate(ctx, db.DB, cfg.Driver, "reset", nil), "failed to reset schema")
	}
	require.NoError(t, sqldb.Migrate(ctx, db.DB, cfg.Driver, "up", nil), "failed to apply migrations")
	return db
}

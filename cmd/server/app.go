package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/soloadmin/admin-api/internal/api"
	apimw "github.com/soloadmin/admin-api/internal/api/middleware"
	"github.com/soloadmin/admin-api/internal/config"
	"github.com/soloadmin/admin-api/internal/platform/blob"
	"github.com/soloadmin/admin-api/internal/platform/sqldb"
	"github.com/soloadmin/admin-api/internal/service/account"
	"github.com/soloadmin/admin-api/internal/service/auth"
	"github.com/soloadmin/admin-api/internal/store"
)

// application holds the wired dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqlx.DB

	// storage serves local photos; nil when blobs live in S3.
	storage http.Handler

	accounts *account.Service
	gate     *apimw.AdminGate
}

// newApplication opens the database and builds every service from cfg.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := sqldb.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	app := &application{config: cfg, logger: log, db: db}
	if err := app.wire(ctx); err != nil {
		app.cleanup()
		return nil, err
	}
	return app, nil
}

func (app *application) wire(ctx context.Context) error {
	cfg := app.config

	if cfg.Database.AutoMigrate {
		if err := sqldb.Migrate(ctx, app.db.DB, cfg.Database.Driver, "up", app.logger); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	blobs, err := app.blobStore(ctx)
	if err != nil {
		return err
	}

	jwtSvc, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}

	admins := sqldb.NewAdminStore(app.db)
	lifetime := time.Duration(cfg.Auth.TokenLifetimeMinutes) * time.Minute
	tokens := auth.NewTokenService(jwtSvc, sqldb.NewTokenStore(app.db), lifetime)

	app.accounts = account.NewService(
		admins,
		tokens,
		blobs,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		app.logger,
	)
	app.gate = apimw.NewAdminGate(tokens, admins)
	return nil
}

// blobStore selects the photo store named by storage.driver.
func (app *application) blobStore(ctx context.Context) (store.BlobStore, error) {
	cfg := app.config.Storage
	switch cfg.Driver {
	case "s3":
		client, err := blob.NewS3Client(ctx, cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		app.logger.Info("storing photos in S3", "bucket", cfg.S3Bucket)
		return blob.NewS3Store(client, cfg.S3Bucket, cfg.S3Prefix), nil
	default:
		disk := blob.NewDiskStore(cfg.LocalRoot)
		app.storage = disk.Handler()
		app.logger.Info("storing photos on disk", "root", cfg.LocalRoot)
		return disk, nil
	}
}

func (app *application) router() http.Handler {
	return api.NewRouter(api.RouterConfig{
		Accounts:     app.accounts,
		Gate:         app.gate,
		Storage:      app.storage,
		CORSOrigins:  app.config.Server.CORSOrigins,
		MaxBodyBytes: app.config.Server.MaxUploadBytes,
		Logger:       app.logger,
	})
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}

package main

import (
	"fmt"

	"github.com/soloadmin/admin-api/internal/platform/logger"
	"github.com/soloadmin/admin-api/internal/platform/sqldb"
	"github.com/spf13/cobra"
)

var migrateCommands = []string{"up", "down", "reset", "status", "version"}

func newMigrateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|reset|status|version]",
		Short:     "Apply or inspect database migrations",
		Long:      "Runs the embedded schema migrations against the configured database. Defaults to up.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrateCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := logger.Setup(cfg.Server)
			if err != nil {
				return fmt.Errorf("failed to set up logger: %w", err)
			}

			ctx := cmd.Context()
			db, err := sqldb.Open(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := sqldb.Migrate(ctx, db.DB, cfg.Database.Driver, command, log); err != nil {
				return fmt.Errorf("migrate %s: %w", command, err)
			}

			current, err := sqldb.CurrentVersion(ctx, db.DB, cfg.Database.Driver)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", current)
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/soloadmin/admin-api/internal/config"
	"github.com/spf13/cobra"
)

// cliOptions holds the persistent flags shared by every subcommand.
type cliOptions struct {
	configFile string
}

func newRootCmd(version, commit, date string) *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "admin-api",
		Short: "Single administrator account API",
		Long: `admin-api serves the account of the one administrator of the platform:
registration, login, profile management and logout under /admin.

Configuration is read from an optional YAML file and ADMINAPI_* environment
variables, e.g. ADMINAPI_DATABASE_URL or ADMINAPI_AUTH_JWT_SECRET.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (YAML); environment variables override it")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newVersionCmd(version, commit, date))

	return cmd
}

// loadConfig reads and validates the configuration named by the --config flag.
func (o *cliOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(o.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

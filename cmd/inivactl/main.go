// Command inivactl runs maintenance tasks against the CMS database.
package main

import (
	"context"
	"os"

	"iniva-cms/app"
	"iniva-cms/cache"
	"iniva-cms/config"
	"iniva-cms/logger"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "inivactl",
		Short:         "Manage the CMS data from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(
		newExportCmd(),
		newImportCmd(),
		newCreateAdminCmd(),
		newSeedCmd(),
	)
	return cmd
}

// openApp connects to the configured database without starting the server.
func openApp() (*app.App, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.Env)

	db, err := config.InitDB(cfg.DB)
	if err != nil {
		return nil, nil, err
	}

	log.Debug().Str("driver", cfg.DB.Driver).Msg("database connected")
	return app.New(cfg, db, cache.NewNoopCache(), nil), cfg, nil
}

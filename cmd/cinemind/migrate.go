package main

import (
	"github.com/spf13/cobra"

	"github.com/cinemind/studio-api/internal/app"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database and apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := app.OpenStore(opts.cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Initialize(cmd.Context()); err != nil {
				opts.log.Error().Err(err).Str("driver", opts.cfg.DB.Driver).Msg("migration failed")
				return err
			}
			opts.log.Info().Str("driver", opts.cfg.DB.Driver).Msg("database up to date")
			return nil
		},
	}
}

package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cinemind/studio-api/internal/pkg/config"
	"github.com/cinemind/studio-api/pkg/logger"
)

type rootOptions struct {
	cfg *config.Config
	log zerolog.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "cinemind",
		Short: "CineMind studio API",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.log = logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.IsDevelopment(),
				Service: "cinemind",
			})
			return nil
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))

	// Running the binary without a subcommand starts the server.
	cmd.RunE = newServeCommand(opts).RunE

	return cmd
}

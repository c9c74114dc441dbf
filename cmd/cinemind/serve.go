package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cinemind/studio-api/internal/app"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

The relational store is created and migrated on startup. Redis, MongoDB,
S3 and the creative-intent model are optional and enabled by their
environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, opts.cfg, opts.log)
			if err != nil {
				opts.log.Error().Err(err).Msg("startup failed")
				return err
			}
			return a.Run(ctx)
		},
	}
}

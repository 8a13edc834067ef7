package main

import (
	"github.com/koustreak/bootprofile/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve resolved profiles over HTTP",
		Long: `Serve GET /v1/profile and GET /v1/profile/{task} with the build
parameters as query parameters (db, tls, port, fork, tag).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := server.Options{
				Addr:            a.cfg.Server.Listen,
				ReadTimeout:     a.cfg.Server.ReadTimeout,
				WriteTimeout:    a.cfg.Server.WriteTimeout,
				ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
			}
			if listen != "" {
				opts.Addr = listen
			}

			return server.New(opts, a.cfg.ProjectInfo(), a.log).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, :8080)")
	return cmd
}

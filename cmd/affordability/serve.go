package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/house-affordability/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the affordability JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if address == "" {
				address = a.conf.Server.Address
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			h := server.NewHandler(a.logger, a.conf.Server.MaxRequestSizeBytes(), version)
			return server.Run(ctx, a.logger, address, h, a.conf.Server.ShutdownTimeout)
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address override (e.g. :8080)")
	return cmd
}

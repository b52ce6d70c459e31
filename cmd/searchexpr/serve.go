package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/searchexpr/internal/cli"
	httpAdapter "github.com/aretw0/searchexpr/pkg/adapters/http"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the stateless HTTP server",
		Long:  `Exposes expression resolution as a JSON API over HTTP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			port, _ := cmd.Flags().GetString("port")
			if !cmd.Flags().Changed("port") && env.Config.Server.Port != "" {
				port = env.Config.Server.Port
			}

			store, closeStore, err := cli.CreateStore(env.Config)
			if err != nil {
				return err
			}
			defer closeStore()

			opts := []httpAdapter.Option{
				httpAdapter.WithStore(store),
				httpAdapter.WithLogger(env.Logger),
			}
			if env.Metrics != nil {
				opts = append(opts, httpAdapter.WithMetricsHandler(env.Metrics.Handler()))
			}

			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           httpAdapter.NewHandler(env.Handler, opts...),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)
			go func() {
				env.Logger.Info("starting server", "addr", srv.Addr, "views", env.Config.Views, "store", env.Config.Store.Kind)
				serverErrors <- srv.ListenAndServe()
			}()

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-serverErrors:
				return fmt.Errorf("server error: %w", err)

			case sig := <-shutdown:
				env.Logger.Info("start shutdown", "signal", sig.String())

				// Give outstanding requests a deadline for completion.
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := srv.Shutdown(ctx); err != nil {
					env.Logger.Error("graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
					if err := srv.Close(); err != nil {
						return fmt.Errorf("error killing server: %w", err)
					}
				}
				env.Logger.Info("server stopped gracefully")
			}
			return nil
		},
	}
	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("metrics", false, "Expose Prometheus metrics on /metrics")
	return cmd
}

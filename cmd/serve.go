package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/config"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/endpoints"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/transport"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the fare report and sweep trigger over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			return runServer(ctx, opts.cfg, a)
		},
	}
}

// runServer serves until ctx is done, then drains requests and waits for a
// running sweep to stop.
func runServer(ctx context.Context, cfg config.Config, a *app) error {
	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	endpts := endpoints.MakeEndpoints(ctx, a.reports, a.sweeps)
	router := transport.MakeHTTPRouter(&cfg, endpts, a.registry, a.metrics)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	serveErr := make(chan error, 1)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}

		close(serveErr)
	}()

	var err error

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "received OS signal. Exiting...")
	case err = <-serveErr:
		slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", shutdownErr.Error()))
	}

	a.sweeps.Wait()

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")

	return err
}

package main

import (
	"log/slog"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/config"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/logger"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "fare-sweeper",
		Short:        "Sweep round-trip fares over a date range and report the cheapest per destination",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(opts.configFile)
			if err != nil {
				return err
			}

			logger.InitStructuredLogger(cfg.LogLevel)
			slog.Debug("config loaded successfully", slog.Any("config", cfg))

			opts.cfg = cfg

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", ".env", "Path of the .env config file")

	cmd.AddCommand(
		sweepCmd(opts),
		reportCmd(opts),
		serveCmd(opts),
	)

	return cmd
}

package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func sweepCmd(opts *rootOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep every destination and date window, then print the cheapest fares",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return validateFormat(format)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			summary, err := a.sweeps.Run(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "sweep failed", slog.String("error", err.Error()))
				return err
			}

			printSummary(os.Stdout, summary, format)

			return writeReport(ctx, os.Stdout, a.reports, a.sink, format)
		},
	}

	c.Flags().StringVar(&format, "format", formatText, "Output format: text|table")

	return c
}

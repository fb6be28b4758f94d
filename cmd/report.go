package main

import (
	"os"

	"github.com/spf13/cobra"
)

func reportCmd(opts *rootOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "report",
		Short: "Print the cheapest stored fare per destination without sweeping",
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

			return writeReport(ctx, os.Stdout, a.reports, a.sink, format)
		},
	}

	c.Flags().StringVar(&format, "format", formatText, "Output format: text|table")

	return c
}

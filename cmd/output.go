package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/logger"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	formatText  = "text"
	formatTable = "table"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatTable:
		return nil
	default:
		return fmt.Errorf("unknown output format %q: want %s or %s", format, formatText, formatTable)
	}
}

type fareLister interface {
	CheapestFares(ctx context.Context) ([]dto.CheapestFare, []string, error)
}

// writeReport prints the cheapest fares. A failed query goes to the sink.
func writeReport(ctx context.Context, w io.Writer, reports fareLister, sink *logger.ErrorSink, format string) error {
	fares, missing, err := reports.CheapestFares(ctx)
	if err != nil {
		sink.Report(ctx, err)
		return err
	}

	return printFares(w, fares, missing, format)
}

// printFares writes the report. Missing destinations only show in the table.
func printFares(w io.Writer, fares []dto.CheapestFare, missing []string, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if format == formatText {
		for _, fare := range fares {
			if _, err := fmt.Fprintln(w, fare.String()); err != nil {
				return err
			}
		}

		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Destination", "Origin", "Depart", "Return", "Price", "Type"})

	for _, fare := range fares {
		t.AppendRow(table.Row{
			fare.Flight.DestCity,
			fare.Flight.OriginCity,
			utils.FormatISODate(fare.Flight.DepartDate),
			utils.FormatISODate(fare.Flight.ReturnDate),
			utils.FormatDollar(fare.Flight.Price),
			fare.Label,
		})
	}

	if len(missing) > 0 {
		t.AppendFooter(table.Row{"No fares", strings.Join(missing, ", ")})
	}

	t.SetStyle(table.StyleRounded)
	// city names keep their case
	t.Style().Format.Footer = text.FormatDefault
	t.Render()

	return nil
}

func printSummary(w io.Writer, summary dto.SweepSummary, format string) {
	if format == formatText {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Sweep", "Windows", "Tuples", "Succeeded", "Failed", "Fallbacks", "Fetched", "Inserted", "Took"})
	t.AppendRow(table.Row{
		summary.SweepID,
		summary.Windows,
		summary.Tuples,
		summary.TuplesSucceeded,
		summary.TuplesFailed,
		summary.Fallbacks,
		summary.RecordsFetched,
		summary.RecordsInserted,
		summary.FinishedAt.Sub(summary.StartedAt).Round(time.Second).String(),
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

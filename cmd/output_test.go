//go:build unit

package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/exception"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/logger"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFares(t *testing.T) []dto.CheapestFare {
	t.Helper()

	nonstop := true
	depart := time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)

	rome, err := dto.NewFlightRecord("Atlanta", "Rome", depart, depart.AddDate(0, 0, 7), 612.4, &nonstop)
	require.NoError(t, err)

	denver, err := dto.NewFlightRecord("Atlanta", "Denver", depart, depart.AddDate(0, 0, 7), 189, nil)
	require.NoError(t, err)

	return []dto.CheapestFare{dto.NewCheapestFare(rome), dto.NewCheapestFare(denver)}
}

func TestPrintFares(t *testing.T) {
	t.Run("text prints one report line per destination", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, printFares(&buf, testFares(t), []string{"Milan"}, formatText))

		assert.Equal(t,
			"Cheapest flight to Rome: Atlanta -> Rome from 2025-05-03 to 2025-05-10 ($612.40) (Non-stop)\n"+
				"Cheapest flight to Denver: Atlanta -> Denver from 2025-05-03 to 2025-05-10 ($189.00) (With stops)\n",
			buf.String())
	})

	t.Run("table lists fares and missing destinations", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, printFares(&buf, testFares(t), []string{"Milan"}, formatTable))

		out := buf.String()
		assert.Contains(t, out, "Rome")
		assert.Contains(t, out, "$612.40")
		assert.Contains(t, out, "With stops")
		assert.Contains(t, out, "Milan")
		assert.NotContains(t, out, "MILAN")
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer

		assert.Error(t, printFares(&buf, nil, nil, "json"))
		assert.Empty(t, buf.String())
	})
}

func TestPrintSummary(t *testing.T) {
	started := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	summary := dto.SweepSummary{
		SweepID:         "sweep-1",
		Windows:         100,
		Tuples:          900,
		TuplesSucceeded: 898,
		TuplesFailed:    2,
		StartedAt:       started,
		FinishedAt:      started.Add(90 * time.Minute),
	}

	t.Run("text stays quiet", func(t *testing.T) {
		var buf bytes.Buffer

		printSummary(&buf, summary, formatText)

		assert.Empty(t, buf.String())
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer

		printSummary(&buf, summary, formatTable)

		assert.Contains(t, buf.String(), "sweep-1")
		assert.Contains(t, buf.String(), "1h30m0s")
	})
}

type stubFareLister struct {
	fares   []dto.CheapestFare
	missing []string
	err     error
}

func (s stubFareLister) CheapestFares(context.Context) ([]dto.CheapestFare, []string, error) {
	return s.fares, s.missing, s.err
}

func TestWriteReport(t *testing.T) {
	newSink := func(kinds *[]exception.Kind) *logger.ErrorSink {
		return logger.NewErrorSink(slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)), func(kind exception.Kind) {
			*kinds = append(*kinds, kind)
		})
	}

	t.Run("prints the fares", func(t *testing.T) {
		var (
			buf   bytes.Buffer
			kinds []exception.Kind
		)

		err := writeReport(context.Background(), &buf, stubFareLister{fares: testFares(t)}, newSink(&kinds), formatText)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Cheapest flight to Rome")
		assert.Empty(t, kinds)
	})

	t.Run("query failure goes through the sink", func(t *testing.T) {
		var (
			buf   bytes.Buffer
			kinds []exception.Kind
		)

		queryErr := repository.ErrQueryFlights.Withf("disk I/O error")
		err := writeReport(context.Background(), &buf, stubFareLister{err: queryErr}, newSink(&kinds), formatText)

		assert.ErrorIs(t, err, repository.ErrQueryFlights)
		assert.Equal(t, []exception.Kind{exception.KindPersistence}, kinds)
		assert.Empty(t, buf.String())
	})
}

package service

import (
	"context"
	"log/slog"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flightprovider"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/metrics"
)

// FallbackOrchestrator asks for nonstop fares first and widens the search to
// any fare only when none came back.
type FallbackOrchestrator struct {
	metrics *metrics.Metrics
}

func NewFallbackOrchestrator(m *metrics.Metrics) *FallbackOrchestrator {
	return &FallbackOrchestrator{metrics: m}
}

// Fetch returns the nonstop result when non-empty, otherwise the result of a
// single FetchAny call as is. A FetchNonstop error is returned without
// falling back. fellBack reports whether FetchAny was called.
func (o *FallbackOrchestrator) Fetch(ctx context.Context, source flightprovider.FareSource,
	criteria dto.SearchCriteria,
) (records []dto.FlightRecord, fellBack bool, err error) {
	records, err = source.FetchNonstop(ctx, criteria)
	if err != nil {
		return nil, false, err
	}

	if len(records) > 0 {
		return records, false, nil
	}

	slog.DebugContext(ctx, "no nonstop fares, searching any",
		slog.String("source", source.Name()),
		slog.String("criteria", criteria.String()))

	o.metrics.ObserveFallback()

	records, err = source.FetchAny(ctx, criteria)
	if err != nil {
		return nil, true, err
	}

	return records, true, nil
}

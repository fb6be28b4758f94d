package flight

import (
	"context"
	"log/slog"
	"time"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flightprovider"
)

// CachedSource serves repeated tuples from the fare cache. Cache failures
// fall through to the wrapped source.
type CachedSource struct {
	source     flightprovider.FareSource
	cache      *FareCache
	expiration time.Duration
}

func NewCachedSource(source flightprovider.FareSource, cache *FareCache, expiration time.Duration) *CachedSource {
	return &CachedSource{
		source:     source,
		cache:      cache,
		expiration: expiration,
	}
}

func (s *CachedSource) Name() string {
	return s.source.Name()
}

func (s *CachedSource) FetchNonstop(ctx context.Context, criteria dto.SearchCriteria) ([]dto.FlightRecord, error) {
	return s.fetch(ctx, criteria, flightprovider.ModeNonstop, s.source.FetchNonstop)
}

func (s *CachedSource) FetchAny(ctx context.Context, criteria dto.SearchCriteria) ([]dto.FlightRecord, error) {
	return s.fetch(ctx, criteria, flightprovider.ModeAny, s.source.FetchAny)
}

func (s *CachedSource) fetch(ctx context.Context, criteria dto.SearchCriteria, mode string,
	fetch func(context.Context, dto.SearchCriteria) ([]dto.FlightRecord, error),
) ([]dto.FlightRecord, error) {
	key := s.cache.GetCacheKey(s.source.Name(), mode, criteria)

	records, found, err := s.cache.GetFares(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "failed to read fare cache", slog.String("key", key), slog.String("error", err.Error()))
	}

	if found {
		slog.DebugContext(ctx, "fare cache hit", slog.String("key", key), slog.Int("records", len(records)))
		return records, nil
	}

	records, err = fetch(ctx, criteria)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetFares(ctx, key, records, s.expiration); err != nil {
		slog.WarnContext(ctx, "failed to write fare cache", slog.String("key", key), slog.String("error", err.Error()))
	}

	return records, nil
}

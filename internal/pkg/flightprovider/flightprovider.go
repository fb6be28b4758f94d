package flightprovider

import (
	"context"
	"sort"
	"time"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/browser"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flightprovider/providerutils"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/metrics"
)

const (
	ModeNonstop = "nonstop"
	ModeAny     = "any"
)

// config for fare source
type FlightProviderConfig struct {
	Session            browser.Session
	Timeout            time.Duration
	Limiter            providerutils.Limiter
	RateLimitPerMinute int
	Metrics            *metrics.Metrics
}

// FareSource fetches round-trip economy fares for one tuple.
type FareSource interface {
	Name() string
	// FetchNonstop returns only itineraries with zero stops both ways.
	FetchNonstop(ctx context.Context, criteria dto.SearchCriteria) ([]dto.FlightRecord, error)
	// FetchAny returns itineraries regardless of stops.
	FetchAny(ctx context.Context, criteria dto.SearchCriteria) ([]dto.FlightRecord, error)
}

// Builder creates a source bound to an open session.
type Builder func(config FlightProviderConfig) FareSource

type FlightProviderFactory struct {
	builders map[string]Builder
}

func NewFlightProviderFactory() *FlightProviderFactory {
	return &FlightProviderFactory{
		builders: make(map[string]Builder),
	}
}

func (f *FlightProviderFactory) AddProvider(name string, builder Builder) {
	f.builders[name] = builder
}

// Supports reports whether name is registered.
func (f *FlightProviderFactory) Supports(name string) bool {
	_, ok := f.builders[name]
	return ok
}

func (f *FlightProviderFactory) GetProvider(name string, config FlightProviderConfig) (FareSource, error) {
	builder, ok := f.builders[name]
	if !ok {
		return nil, providerutils.ErrUnsupportedVariant.Withf("variant %q, available %v", name, f.Names())
	}

	return builder(config), nil
}

func (f *FlightProviderFactory) Names() []string {
	names := make([]string, 0, len(f.builders))
	for name := range f.builders {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

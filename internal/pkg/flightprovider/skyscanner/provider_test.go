//go:build unit

package skyscanner

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flightprovider"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flightprovider/providerutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixtureSession struct {
	html string
	urls []string
}

func (s *fixtureSession) Render(_ context.Context, url string, _ string) (string, error) {
	s.urls = append(s.urls, url)
	return s.html, nil
}

func (s *fixtureSession) Close() error {
	return nil
}

func readFixture(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)

	return string(data)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildURL(t *testing.T) {
	depart := date(2025, 12, 2)
	ret := date(2026, 1, 9)

	assert.Equal(t,
		"https://www.skyscanner.com/transport/flights/atlanta/cancun/251202/260109/?adultsv2=1&cabinclass=economy&rtn=1",
		BuildURL("Atlanta", "Cancun", depart, ret, ""))

	assert.Equal(t,
		"https://www.skyscanner.com/transport/flights/atlanta/cancun/251202/260109/?adultsv2=1&cabinclass=economy&rtn=1&stops=!oneStop,!twoPlusStops",
		BuildURL("Atlanta", "Cancun", depart, ret, NonstopFilter))

	assert.Equal(t,
		"https://www.skyscanner.com/transport/flights/atlanta/las%20vegas/250501/250508/?adultsv2=1&cabinclass=economy&rtn=1",
		BuildURL("Atlanta", "Las Vegas", date(2025, 5, 1), date(2025, 5, 8), ""))
}

func TestProvider_Fetch(t *testing.T) {
	criteria := dto.SearchCriteria{
		Origin:      "Atlanta",
		Destination: "Cancun",
		DepartDate:  date(2025, 5, 1),
		ReturnDate:  date(2025, 5, 8),
	}

	t.Run("nonstop computed from both legs", func(t *testing.T) {
		session := &fixtureSession{html: readFixture(t, "results.html")}
		source := NewProvider(flightprovider.FlightProviderConfig{Session: session})

		records, err := source.FetchAny(context.Background(), criteria)
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.InDelta(t, 1234.50, records[0].Price, 0.001)
		assert.True(t, records[0].IsNonstop())
		assert.Equal(t, 689.0, records[1].Price)
		require.NotNil(t, records[1].Nonstop)
		assert.False(t, *records[1].Nonstop)
		assert.InDelta(t, 512.99, records[2].Price, 0.001)
		assert.False(t, records[2].IsNonstop())

		assert.NotContains(t, session.urls[0], "stops=")
	})

	t.Run("nonstop uses the stops filter", func(t *testing.T) {
		session := &fixtureSession{html: readFixture(t, "results.html")}
		source := NewProvider(flightprovider.FlightProviderConfig{Session: session})

		records, err := source.FetchNonstop(context.Background(), criteria)
		require.NoError(t, err)
		assert.Len(t, records, 3)
		assert.Contains(t, session.urls[0], "&stops=!oneStop,!twoPlusStops")
	})

	t.Run("banner empties nonstop result", func(t *testing.T) {
		session := &fixtureSession{html: readFixture(t, "no_direct.html")}
		source := NewProvider(flightprovider.FlightProviderConfig{Session: session})

		records, err := source.FetchNonstop(context.Background(), criteria)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("banner ignored for any", func(t *testing.T) {
		session := &fixtureSession{html: readFixture(t, "no_direct.html")}
		source := NewProvider(flightprovider.FlightProviderConfig{Session: session})

		records, err := source.FetchAny(context.Background(), criteria)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("missing stop descriptor fails the fetch", func(t *testing.T) {
		session := &fixtureSession{html: readFixture(t, "missing_stops.html")}
		source := NewProvider(flightprovider.FlightProviderConfig{Session: session})

		records, err := source.FetchAny(context.Background(), criteria)
		assert.ErrorIs(t, err, providerutils.ErrExtraction)
		assert.Nil(t, records)
	})

	t.Run("price with extra text fails the fetch", func(t *testing.T) {
		session := &fixtureSession{html: readFixture(t, "bad_price.html")}
		source := NewProvider(flightprovider.FlightProviderConfig{Session: session})

		records, err := source.FetchAny(context.Background(), criteria)
		assert.ErrorIs(t, err, providerutils.ErrExtraction)
		assert.Nil(t, records)
	})
}

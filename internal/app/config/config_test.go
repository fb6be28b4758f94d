//go:build unit

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "flight_data.sqlite", cfg.DB.DSN)
	assert.Equal(t, 3*time.Second, cfg.DB.QueryTimeout)
	assert.Equal(t, 10*time.Second, cfg.Browser.ImplicitWait)
	assert.Equal(t, "expedia", cfg.Source.Variant)

	plan, err := cfg.Plan()
	require.NoError(t, err)

	assert.Equal(t, "Atlanta", plan.Origin)
	assert.Equal(t, []string{"Cancun", "Las Vegas", "Denver", "Rome", "Milan", "Paris", "Madrid", "Amsterdam", "Singapore"},
		plan.Destinations)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), plan.RangeStart)
	assert.Equal(t, time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), plan.RangeEnd)
	assert.Equal(t, 7, plan.TripLength)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte(
		"SWEEP_ORIGIN=Boston\nSWEEP_DESTINATIONS=Lisbon, Porto\nSOURCE_VARIANT=skyscanner\nBROWSER_DRIVER=colly\n"), 0o600))

	t.Setenv("SWEEP_TRIP_LENGTH_DAYS", "10")
	t.Setenv("SOURCE_VARIANT", "expedia")

	cfg, err := LoadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, "expedia", cfg.Source.Variant)
	assert.Equal(t, "colly", cfg.Browser.Driver)

	plan, err := cfg.Plan()
	require.NoError(t, err)
	assert.Equal(t, "Boston", plan.Origin)
	assert.Equal(t, []string{"Lisbon", "Porto"}, plan.Destinations)
	assert.Equal(t, 10, plan.TripLength)
}

func TestLoadConfig_Invalid(t *testing.T) {
	invalidRequest := func(key, value, wantMsg string) func(t *testing.T) {
		return func(t *testing.T) {
			t.Setenv(key, value)

			_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorContains(t, err, wantMsg)
		}
	}

	t.Run("driver", invalidRequest("DB_DRIVER", "mysql", "DB_DRIVER"))
	t.Run("browser", invalidRequest("BROWSER_DRIVER", "selenium", "BROWSER_DRIVER"))
	t.Run("range_date", invalidRequest("SWEEP_RANGE_END", "15/08/2025", "SWEEP_RANGE_END"))
	t.Run("trip_length", invalidRequest("SWEEP_TRIP_LENGTH_DAYS", "0", "SWEEP_TRIP_LENGTH_DAYS"))
	t.Run("short_range", invalidRequest("SWEEP_RANGE_END", "2025-05-03", "shorter than"))
}

func TestConfig_BrowserOptions(t *testing.T) {
	cfg := Config{
		Source:  Source{RateLimit: 30},
		Browser: Browser{Driver: "colly", ImplicitWait: 5 * time.Second},
	}

	opts := cfg.BrowserOptions()
	assert.Equal(t, "colly", opts.Driver)
	assert.Equal(t, 2*time.Second, opts.RequestDelay)

	cfg.Redis.Addr = "localhost:6379"
	assert.Zero(t, cfg.BrowserOptions().RequestDelay)
}

func TestLogLeveler(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLeveler("debug").Level().String())
	assert.Equal(t, "INFO", LogLeveler("nonsense").Level().String())
}

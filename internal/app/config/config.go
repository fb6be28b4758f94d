package config

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/browser"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/exception"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/repository"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/utils"
)

var ErrInvalidConfig = exception.ApplicationError{
	Kind:       exception.KindConfig,
	StatusCode: http.StatusInternalServerError,
	Message:    "invalid configuration",
}

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the application configuration.
type Config struct {
	LogLevel LogLeveler `mapstructure:"LOG_LEVEL"`
	DB       DB         `mapstructure:",squash"`
	HTTP     HTTP       `mapstructure:",squash"`
	Redis    Redis      `mapstructure:",squash"`
	Sweep    Sweep      `mapstructure:",squash"`
	Source   Source     `mapstructure:",squash"`
	Browser  Browser    `mapstructure:",squash"`
}

type DB struct {
	Driver                string        `mapstructure:"DB_DRIVER" validate:"oneof=sqlite postgres"`
	DSN                   string        `mapstructure:"DB_DSN" validate:"required"`
	MaxOpenConnections    int           `mapstructure:"DB_MAX_OPEN_CONNECTIONS" validate:"gte=0"`
	MaxIdleConnections    int           `mapstructure:"DB_MAX_IDLE_CONNECTIONS" validate:"gte=0"`
	MaxConnectionLifetime time.Duration `mapstructure:"DB_MAX_CONNECTIONS_LIFETIME"`
	QueryTimeout          time.Duration `mapstructure:"DB_QUERY_TIMEOUT" validate:"gt=0"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT" validate:"gt=0,lte=65535"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT" validate:"gt=0"`
}

// Redis is optional; an empty address keeps cache, lock and limiter local.
type Redis struct {
	Addr     string `mapstructure:"REDIS_ADDR"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" validate:"gte=0"`
}

type Sweep struct {
	Origin         string        `mapstructure:"SWEEP_ORIGIN" validate:"required"`
	Destinations   []string      `mapstructure:"SWEEP_DESTINATIONS" validate:"required,min=1,dive,required"`
	RangeStart     string        `mapstructure:"SWEEP_RANGE_START" validate:"required,datetime=2006-01-02"`
	RangeEnd       string        `mapstructure:"SWEEP_RANGE_END" validate:"required,datetime=2006-01-02"`
	TripLengthDays int           `mapstructure:"SWEEP_TRIP_LENGTH_DAYS" validate:"gt=0"`
	LockTimeout    time.Duration `mapstructure:"SWEEP_LOCK_TIMEOUT" validate:"gt=0"`
}

type Source struct {
	Variant         string        `mapstructure:"SOURCE_VARIANT" validate:"required"`
	Timeout         time.Duration `mapstructure:"SOURCE_TIMEOUT" validate:"gt=0"`
	RateLimit       int           `mapstructure:"SOURCE_RATE_LIMIT" validate:"gte=0"`
	// CacheExpiration reuses fetched listings across sweeps until they
	// expire; zero disables the cache.
	CacheExpiration time.Duration `mapstructure:"SOURCE_CACHE_EXPIRATION" validate:"gte=0"`
}

type Browser struct {
	Driver       string        `mapstructure:"BROWSER_DRIVER" validate:"oneof=rod colly"`
	Bin          string        `mapstructure:"BROWSER_BIN"`
	Headless     bool          `mapstructure:"BROWSER_HEADLESS"`
	DataDir      string        `mapstructure:"BROWSER_DATA_DIR"`
	UserAgent    string        `mapstructure:"BROWSER_USER_AGENT"`
	ImplicitWait time.Duration `mapstructure:"BROWSER_IMPLICIT_WAIT" validate:"gt=0"`
}

// Validate checks field rules and the sweep date range.
func (c Config) Validate() error {
	if err := dto.InitValidator(); err != nil {
		return ErrInvalidConfig.WithCause(err)
	}

	if err := dto.ValidateSingleError(c); err != nil {
		return ErrInvalidConfig.WithCause(err)
	}

	if _, err := c.Plan(); err != nil {
		return err
	}

	return nil
}

// Plan builds the sweep plan. Destination names are trimmed and blanks dropped.
func (c Config) Plan() (dto.SweepPlan, error) {
	start, err := utils.ParseISODate(c.Sweep.RangeStart)
	if err != nil {
		return dto.SweepPlan{}, ErrInvalidConfig.Withf("SWEEP_RANGE_START: %w", err)
	}

	end, err := utils.ParseISODate(c.Sweep.RangeEnd)
	if err != nil {
		return dto.SweepPlan{}, ErrInvalidConfig.Withf("SWEEP_RANGE_END: %w", err)
	}

	if utils.DaysBetween(start, end) < c.Sweep.TripLengthDays {
		return dto.SweepPlan{}, ErrInvalidConfig.Withf("range %s..%s is shorter than a %d day trip",
			c.Sweep.RangeStart, c.Sweep.RangeEnd, c.Sweep.TripLengthDays)
	}

	destinations := make([]string, 0, len(c.Sweep.Destinations))
	for _, dest := range c.Sweep.Destinations {
		if dest = strings.TrimSpace(dest); dest != "" {
			destinations = append(destinations, dest)
		}
	}

	if len(destinations) == 0 {
		return dto.SweepPlan{}, ErrInvalidConfig.Withf("no destinations")
	}

	return dto.SweepPlan{
		Origin:       strings.TrimSpace(c.Sweep.Origin),
		Destinations: destinations,
		RangeStart:   start,
		RangeEnd:     end,
		TripLength:   c.Sweep.TripLengthDays,
	}, nil
}

func (c Config) RepositoryConfig() repository.Config {
	return repository.Config{
		Driver:          c.DB.Driver,
		DSN:             c.DB.DSN,
		MaxOpenConns:    c.DB.MaxOpenConnections,
		MaxIdleConns:    c.DB.MaxIdleConnections,
		ConnMaxLifetime: c.DB.MaxConnectionLifetime,
		QueryTimeout:    c.DB.QueryTimeout,
	}
}

func (c Config) BrowserOptions() browser.Options {
	var delay time.Duration
	if c.Source.RateLimit > 0 && c.Redis.Addr == "" {
		// without Redis the static driver spaces requests itself
		delay = time.Minute / time.Duration(c.Source.RateLimit)
	}

	return browser.Options{
		Driver:       c.Browser.Driver,
		BinPath:      c.Browser.Bin,
		Headless:     c.Browser.Headless,
		UserDataDir:  c.Browser.DataDir,
		UserAgent:    c.Browser.UserAgent,
		ImplicitWait: c.Browser.ImplicitWait,
		RequestDelay: delay,
	}
}

// LogValue keeps the Redis password and database DSN out of logs.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("log_level", string(c.LogLevel)),
		slog.String("db_driver", c.DB.Driver),
		slog.Bool("redis_enabled", c.Redis.Addr != ""),
		slog.String("origin", c.Sweep.Origin),
		slog.Any("destinations", c.Sweep.Destinations),
		slog.String("range_start", c.Sweep.RangeStart),
		slog.String("range_end", c.Sweep.RangeEnd),
		slog.Int("trip_length_days", c.Sweep.TripLengthDays),
		slog.String("source_variant", c.Source.Variant),
		slog.Duration("source_timeout", c.Source.Timeout),
		slog.String("browser_driver", c.Browser.Driver),
		slog.Bool("browser_headless", c.Browser.Headless),
	)
}

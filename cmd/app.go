package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/config"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/service"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/browser"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/exception"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flight"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flightprovider"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flightprovider/expedia"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flightprovider/providerutils"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flightprovider/skyscanner"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/logger"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/metrics"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// app holds everything one command needs. Close releases it.
type app struct {
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	repo     *repository.FlightRepository
	redis    *redis.Client
	sink     *logger.ErrorSink
	sweeps   *service.SweepService
	reports  *service.ReportService
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	plan, err := cfg.Plan()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	appMetrics := metrics.NewMetrics(registry)
	sink := logger.NewErrorSink(slog.Default(), func(kind exception.Kind) {
		appMetrics.ObserveError(string(kind))
	})

	factory := initFlightProviderFactory()
	if !factory.Supports(cfg.Source.Variant) {
		return nil, providerutils.ErrUnsupportedVariant.Withf("%q (known: %v)", cfg.Source.Variant, factory.Names())
	}

	openSession, err := browser.NewOpener(cfg.BrowserOptions())
	if err != nil {
		return nil, err
	}

	repo, err := repository.Open(ctx, cfg.RepositoryConfig())
	if err != nil {
		return nil, err
	}

	a := &app{
		registry: registry,
		metrics:  appMetrics,
		repo:     repo,
		sink:     sink,
	}

	var (
		locker    service.SweepLocker = flight.NewLocalLock()
		limiter   providerutils.Limiter
		fareCache *flight.FareCache
	)

	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := a.redis.Ping(ctx).Err(); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		fareCache = flight.NewFareCache(a.redis)
		locker = fareCache
		limiter = redis_rate.NewLimiter(a.redis)
	}

	buildSource := func(session browser.Session) (flightprovider.FareSource, error) {
		source, err := factory.GetProvider(cfg.Source.Variant, flightprovider.FlightProviderConfig{
			Session:            session,
			Timeout:            cfg.Source.Timeout,
			Limiter:            limiter,
			RateLimitPerMinute: cfg.Source.RateLimit,
			Metrics:            appMetrics,
		})
		if err != nil {
			return nil, err
		}

		if fareCache != nil && cfg.Source.CacheExpiration > 0 {
			source = flight.NewCachedSource(source, fareCache, cfg.Source.CacheExpiration)
		}

		return source, nil
	}

	a.sweeps = service.NewSweepService(service.SweepServiceConfig{
		Plan:         plan,
		Gateway:      repo,
		Locker:       locker,
		LockTimeout:  cfg.Sweep.LockTimeout,
		OpenSession:  openSession,
		BuildSource:  buildSource,
		Orchestrator: service.NewFallbackOrchestrator(appMetrics),
		Sink:         sink,
		Metrics:      appMetrics,
	})
	a.reports = service.NewReportService(repo, plan.Destinations)

	return a, nil
}

// register fare sources
func initFlightProviderFactory() *flightprovider.FlightProviderFactory {
	factory := flightprovider.NewFlightProviderFactory()
	factory.AddProvider(expedia.ProviderName, expedia.NewProvider)
	factory.AddProvider(skyscanner.ProviderName, skyscanner.NewProvider)

	return factory
}

func (a *app) Close() {
	var errs []error

	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}

	errs = append(errs, a.repo.Close())

	if err := errors.Join(errs...); err != nil {
		slog.Warn("failed to close resources", slog.String("error", err.Error()))
	}
}

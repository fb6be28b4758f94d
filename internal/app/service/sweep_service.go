package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/browser"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flight"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flightprovider"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/logger"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/metrics"
)

type FareGateway interface {
	ResetSchema(ctx context.Context) error
	Insert(ctx context.Context, flight dto.FlightRecord) (int64, error)
	QueryCheapestPerDestination(ctx context.Context) ([]dto.FlightRecord, error)
}

type SweepLocker interface {
	GetLockKey(origin string) string
	AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

// SourceBuilder binds the configured fare source to an open session.
type SourceBuilder func(session browser.Session) (flightprovider.FareSource, error)

type SweepServiceConfig struct {
	Plan         dto.SweepPlan
	Gateway      FareGateway
	Locker       SweepLocker
	LockTimeout  time.Duration
	OpenSession  browser.Opener
	BuildSource  SourceBuilder
	Orchestrator *FallbackOrchestrator
	Sink         *logger.ErrorSink
	Metrics      *metrics.Metrics
}

// SweepService runs the date window sweep: one session, one tuple at a
// time, every record stored before the next tuple.
type SweepService struct {
	cfg SweepServiceConfig

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

func NewSweepService(cfg SweepServiceConfig) *SweepService {
	if cfg.Orchestrator == nil {
		cfg.Orchestrator = NewFallbackOrchestrator(cfg.Metrics)
	}

	if cfg.Sink == nil {
		cfg.Sink = logger.NewErrorSink(slog.Default(), nil)
	}

	return &SweepService{cfg: cfg}
}

// Run sweeps in the foreground.
func (s *SweepService) Run(ctx context.Context) (dto.SweepSummary, error) {
	done, err := s.begin()
	if err != nil {
		return dto.SweepSummary{}, err
	}
	defer s.end(done)

	sweepID := uuid.NewString()

	return s.run(logger.WithSweepID(ctx, sweepID), sweepID)
}

// Start sweeps in the background and returns the sweep id. It fails with
// ErrSweepInProgress while another sweep of this service runs.
func (s *SweepService) Start(ctx context.Context) (string, error) {
	done, err := s.begin()
	if err != nil {
		return "", err
	}

	sweepID := uuid.NewString()
	ctx = logger.WithSweepID(ctx, sweepID)

	go func() {
		defer s.end(done)

		summary, err := s.run(ctx, sweepID)
		if err != nil {
			slog.ErrorContext(ctx, "background sweep failed", slog.String("error", err.Error()))
			return
		}

		slog.InfoContext(ctx, "background sweep finished",
			slog.Int("tuples_succeeded", summary.TuplesSucceeded),
			slog.Int("tuples_failed", summary.TuplesFailed),
			slog.Int64("records_inserted", summary.RecordsInserted))
	}()

	return sweepID, nil
}

// Wait blocks until the current sweep, if any, has finished.
func (s *SweepService) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (s *SweepService) begin() (chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil, ErrSweepInProgress
	}

	s.running = true
	s.done = make(chan struct{})

	return s.done, nil
}

func (s *SweepService) end(done chan struct{}) {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	close(done)
}

func (s *SweepService) run(ctx context.Context, sweepID string) (summary dto.SweepSummary, err error) {
	plan := s.cfg.Plan
	started := time.Now()

	summary = dto.SweepSummary{
		SweepID:   sweepID,
		Origin:    plan.Origin,
		StartedAt: started,
	}

	defer func() {
		summary.FinishedAt = time.Now()
		s.cfg.Metrics.ObserveSweep(started, err)
	}()

	lockKey := s.cfg.Locker.GetLockKey(plan.Origin)

	acquired, err := s.cfg.Locker.AcquireLock(ctx, lockKey, s.cfg.LockTimeout)
	if err != nil {
		return summary, ErrAcquireLock.WithCause(err)
	}

	if !acquired {
		return summary, ErrSweepInProgress
	}

	defer func() {
		if err := s.cfg.Locker.ReleaseLock(context.WithoutCancel(ctx), lockKey); err != nil {
			slog.WarnContext(ctx, "failed to release sweep lock", slog.String("error", err.Error()))
		}
	}()

	if err := s.cfg.Gateway.ResetSchema(ctx); err != nil {
		s.cfg.Sink.Report(ctx, err)
		return summary, err
	}

	windows := flight.GenerateWindows(plan.RangeStart, plan.RangeEnd, plan.TripLength)
	tuples := flight.Tuples(plan)

	summary.Windows = len(windows)
	summary.Tuples = len(tuples)

	slog.InfoContext(ctx, "sweep started",
		slog.String("origin", plan.Origin),
		slog.Int("destinations", len(plan.Destinations)),
		slog.Int("windows", len(windows)))

	err = browser.WithSession(ctx, s.cfg.OpenSession, func(ctx context.Context, session browser.Session) error {
		source, err := s.cfg.BuildSource(session)
		if err != nil {
			return ErrBuildSource.WithCause(err)
		}

		for _, criteria := range tuples {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("sweep stopped before %s: %w", criteria, err)
			}

			s.sweepTuple(ctx, source, criteria, &summary)
		}

		return nil
	})
	if err != nil {
		return summary, err
	}

	slog.InfoContext(ctx, "sweep finished",
		slog.Int("tuples_succeeded", summary.TuplesSucceeded),
		slog.Int("tuples_failed", summary.TuplesFailed),
		slog.Int("fallbacks", summary.Fallbacks),
		slog.Int64("records_inserted", summary.RecordsInserted),
		slog.Int("insert_failures", summary.InsertFailures))

	return summary, nil
}

func (s *SweepService) sweepTuple(ctx context.Context, source flightprovider.FareSource,
	criteria dto.SearchCriteria, summary *dto.SweepSummary,
) {
	records, fellBack, err := s.cfg.Orchestrator.Fetch(ctx, source, criteria)
	if fellBack {
		summary.Fallbacks++
	}

	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return
		}

		summary.TuplesFailed++
		s.cfg.Metrics.ObserveTuple(err)
		s.cfg.Sink.Report(ctx, fmt.Errorf("fetch %s: %w", criteria, err))

		return
	}

	summary.TuplesSucceeded++
	summary.RecordsFetched += len(records)
	s.cfg.Metrics.ObserveTuple(nil)

	for _, record := range records {
		rows, err := s.cfg.Gateway.Insert(ctx, record)
		if err != nil {
			summary.InsertFailures++
			s.cfg.Sink.Report(ctx, fmt.Errorf("insert %s: %w", record, err))
			continue
		}

		summary.RecordsInserted += rows
		s.cfg.Metrics.ObserveInsert(rows)
	}
}

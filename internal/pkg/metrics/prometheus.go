package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "fare_sweeper"

// Metrics holds all prometheus metrics of the sweep. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	FetchesTotal    *prometheus.CounterVec
	FetchDuration   *prometheus.HistogramVec
	FallbacksTotal  prometheus.Counter
	TuplesTotal     *prometheus.CounterVec
	RecordsInserted prometheus.Counter
	ErrorsCount     *prometheus.CounterVec
	SweepsTotal     *prometheus.CounterVec
	SweepDuration   prometheus.Histogram
	HTTPRequests    *prometheus.CounterVec
}

// NewMetrics registers the sweep metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "fetches_total",
			Help:      "The total number of fare source fetches",
		}, []string{"source", "mode", "outcome"}),
		FetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time taken by one fare source fetch",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 8),
		}, []string{"source", "mode"}),
		FallbacksTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "fallbacks_total",
			Help:      "The total number of tuples that needed a general query after an empty nonstop query",
		}),
		TuplesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "tuples_total",
			Help:      "The total number of swept (destination, window) tuples",
		}, []string{"outcome"}),
		RecordsInserted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "records_inserted_total",
			Help:      "The total number of flight rows written",
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "errors_total",
			Help:      "The total number of reported errors",
		}, []string{"kind"}),
		SweepsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "sweeps_total",
			Help:      "The total number of sweeps",
		}, []string{"outcome"}),
		SweepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Time taken by a full sweep",
			Buckets:   prometheus.ExponentialBuckets(60, 2, 8),
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "The total number of served HTTP requests",
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) ObserveFetch(source, mode string, started time.Time, err error) {
	if m == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	m.FetchesTotal.WithLabelValues(source, mode, outcome).Inc()
	m.FetchDuration.WithLabelValues(source, mode).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveFallback() {
	if m == nil {
		return
	}

	m.FallbacksTotal.Inc()
}

func (m *Metrics) ObserveTuple(err error) {
	if m == nil {
		return
	}

	if err != nil {
		m.TuplesTotal.WithLabelValues("failed").Inc()
		return
	}

	m.TuplesTotal.WithLabelValues("succeeded").Inc()
}

func (m *Metrics) ObserveInsert(rows int64) {
	if m == nil {
		return
	}

	m.RecordsInserted.Add(float64(rows))
}

func (m *Metrics) ObserveError(kind string) {
	if m == nil {
		return
	}

	m.ErrorsCount.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveSweep(started time.Time, err error) {
	if m == nil {
		return
	}

	outcome := "completed"
	if err != nil {
		outcome = "failed"
	}

	m.SweepsTotal.WithLabelValues(outcome).Inc()
	m.SweepDuration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveRequest(method, route string, status int) {
	if m == nil {
		return
	}

	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

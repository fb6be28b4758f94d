package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveTuple(nil)
	m.ObserveTuple(errors.New("boom"))
	m.ObserveTuple(nil)
	m.ObserveFallback()
	m.ObserveInsert(3)
	m.ObserveError("transport")
	m.ObserveFetch("expedia", "nonstop", time.Now(), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TuplesTotal.WithLabelValues("succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TuplesTotal.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbacksTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RecordsInserted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsCount.WithLabelValues("transport")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("expedia", "nonstop", "ok")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveTuple(nil)
		m.ObserveFallback()
		m.ObserveInsert(1)
		m.ObserveError("x")
		m.ObserveFetch("a", "b", time.Now(), nil)
		m.ObserveSweep(time.Now(), nil)
	})
}

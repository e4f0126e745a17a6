package promutil

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestMustCounterValue(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_total",
		Help: "A test counter for unit testing",
	})
	require.Zero(t, MustCounterValue(counter))

	counter.Add(15)
	require.Equal(t, 15.0, MustCounterValue(counter))

	counter.Inc()
	require.Equal(t, 16.0, MustCounterValue(counter))
}

func TestMustHistogramSampleCount(t *testing.T) {
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "test",
		Help: "A test histogram for unit testing",
	})
	require.Zero(t, MustHistogramSampleCount(histogram))

	histogram.Observe(3)
	histogram.Observe(7)
	require.Equal(t, uint64(2), MustHistogramSampleCount(histogram))
}

func TestWrongKindPanics(t *testing.T) {
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "h", Help: "h"})
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "c", Help: "c"})

	require.Panics(t, func() { MustCounterValue(histogram) })
	require.Panics(t, func() { MustHistogramSampleCount(counter) })
}

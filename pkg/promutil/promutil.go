// Package promutil reads back the values of Prometheus metrics.
package promutil

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// MustCounterValue returns the current value of a counter metric.
// If any error occurs, this function panics.
func MustCounterValue(m prometheus.Metric) float64 {
	written := mustWrite(m)
	if written.Counter == nil {
		panic("metric is not a counter")
	}
	return written.Counter.GetValue()
}

// MustHistogramSampleCount returns the number of observations of a histogram
// metric. If any error occurs, this function panics.
func MustHistogramSampleCount(m prometheus.Metric) uint64 {
	written := mustWrite(m)
	if written.Histogram == nil {
		panic("metric is not a histogram")
	}
	return written.Histogram.GetSampleCount()
}

func mustWrite(m prometheus.Metric) *dto.Metric {
	var written dto.Metric
	if err := m.Write(&written); err != nil {
		panic("failed to read Prometheus metric: " + err.Error())
	}
	return &written
}

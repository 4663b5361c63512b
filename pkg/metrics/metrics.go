package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "namelookup"

// LookupMetrics records the outcome and latency of display-name lookups.
type LookupMetrics struct {
	outcomes *prometheus.CounterVec
	duration *prometheus.HistogramVec
	records  prometheus.Histogram
}

func NewLookupMetrics(reg prometheus.Registerer) *LookupMetrics {
	m := &LookupMetrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Display-name lookups by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "Time spent serving a display-name lookup.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		records: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_scanned_records",
			Help:      "Number of records fetched from the store per lookup.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.outcomes, m.duration, m.records)
	}
	return m
}

func (m *LookupMetrics) Observe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *LookupMetrics) ObserveScanned(n int) {
	if m == nil {
		return
	}
	m.records.Observe(float64(n))
}

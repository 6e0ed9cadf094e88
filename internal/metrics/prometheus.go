package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector exports sort metrics as Prometheus series labelled by
// mode and effective thread count.
type PrometheusCollector struct {
	runs        *prometheus.CounterVec
	comparisons *prometheus.CounterVec
	swaps       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	memory      *prometheus.GaugeVec
}

// NewPrometheusCollector creates the collector and registers its series on reg.
// A nil reg registers on prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := []string{"mode", "threads"}
	c := &PrometheusCollector{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parsort_runs_total",
			Help: "Total completed sort calls",
		}, labels),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parsort_comparisons_total",
			Help: "Element comparisons performed, workers and merge combined",
		}, labels),
		swaps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parsort_swaps_total",
			Help: "Swaps and right-block moves performed",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parsort_sort_duration_seconds",
			Help:    "Wall-clock duration of sort calls",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
		}, labels),
		memory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "parsort_array_memory_bytes",
			Help: "Estimated memory footprint of the last sorted array",
		}, labels),
	}

	for _, col := range []prometheus.Collector{c.runs, c.comparisons, c.swaps, c.duration, c.memory} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordSort implements Collector.
func (c *PrometheusCollector) RecordSort(mode Mode, m SortMetrics) {
	threads := "1"
	if n, ok := m.NumThreads(); ok {
		threads = strconv.Itoa(n)
	}
	c.runs.WithLabelValues(string(mode), threads).Inc()
	c.comparisons.WithLabelValues(string(mode), threads).Add(float64(m.Comparisons))
	c.swaps.WithLabelValues(string(mode), threads).Add(float64(m.Swaps))
	c.duration.WithLabelValues(string(mode), threads).Observe(m.ExecutionTimeMs / 1000)
	c.memory.WithLabelValues(string(mode), threads).Set(float64(m.MemoryUsageBytes))
}

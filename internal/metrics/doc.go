// Package metrics holds the instrumentation record produced by every sort call
// and the collectors that forward it to monitoring backends.
//
// # Metrics Record
//
// SortMetrics is a passive aggregate:
//   - Comparisons: one per element-pair test, in workers and in the merge
//   - Swaps: one per adjacent swap in workers, one per right-block take in the merge
//   - ExecutionTimeMs: wall-clock time of the whole call
//   - MemoryUsageBytes: estimated footprint of the sorted array
//   - Extra: string annotations, e.g. "numThreads" on the parallel path
//
// A SortMetrics is created with New at the start of a call, accumulates
// Counts from joined workers and from the merge, and is frozen once returned.
// Counts is the per-worker pair; conservation holds by construction:
//
//	total = Σ worker Counts + merge Counts
//
// # Collectors
//
// Collector implementations receive every completed sort:
//   - NoopCollector: discards everything
//   - BasicCollector: atomic in-memory totals
//   - PrometheusCollector: counters, a duration histogram and a memory gauge
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	col, err := metrics.NewPrometheusCollector(reg)
//	if err != nil {
//	    return err
//	}
//	engine := coordinator.NewEngine(coordinator.WithCollector(col))
package metrics

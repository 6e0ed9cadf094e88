package metrics

import (
	"sync/atomic"
)

// Mode identifies which sort path produced a SortMetrics.
type Mode string

const (
	// ModeSequential is the single-threaded whole-array bubble sort.
	ModeSequential Mode = "sequential"
	// ModeParallel is the partitioned sort followed by a segment merge.
	ModeParallel Mode = "parallel"
)

// Collector receives the metrics of every completed sort.
// Implement this interface to forward sort metrics to a monitoring system.
type Collector interface {
	// RecordSort is called once per completed sort with its final metrics.
	RecordSort(mode Mode, m SortMetrics)
}

// NoopCollector discards everything.
type NoopCollector struct{}

func (NoopCollector) RecordSort(Mode, SortMetrics) {}

// BasicCollector keeps in-memory totals.
// Useful for tests and debugging without an external monitoring system.
type BasicCollector struct {
	SequentialRuns   atomic.Int64
	ParallelRuns     atomic.Int64
	TotalComparisons atomic.Int64
	TotalSwaps       atomic.Int64
	TotalMicros      atomic.Int64
}

// RecordSort implements Collector.
func (b *BasicCollector) RecordSort(mode Mode, m SortMetrics) {
	switch mode {
	case ModeSequential:
		b.SequentialRuns.Add(1)
	case ModeParallel:
		b.ParallelRuns.Add(1)
	}
	b.TotalComparisons.Add(m.Comparisons)
	b.TotalSwaps.Add(m.Swaps)
	b.TotalMicros.Add(int64(m.ExecutionTimeMs * 1000))
}

// Runs returns the number of sorts recorded across both modes.
func (b *BasicCollector) Runs() int64 {
	return b.SequentialRuns.Load() + b.ParallelRuns.Load()
}

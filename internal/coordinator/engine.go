// Package coordinator orchestrates sequential and parallel sort calls.
// See doc.go for complete package documentation.
package coordinator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dreamware/parsort/internal/array"
	"github.com/dreamware/parsort/internal/bubble"
	"github.com/dreamware/parsort/internal/logging"
	"github.com/dreamware/parsort/internal/merge"
	"github.com/dreamware/parsort/internal/metrics"
	"github.com/dreamware/parsort/internal/partition"
	"github.com/dreamware/parsort/internal/resource"
	"github.com/dreamware/parsort/internal/trace"
)

// Engine runs sort calls with a fixed logger, tracer, collector and
// resource controller. An Engine holds no per-call state and is safe for
// concurrent use; concurrent calls must sort distinct arrays.
type Engine struct {
	logger    *logging.Logger
	tracer    *trace.Emitter
	collector metrics.Collector
	resources *resource.Controller
}

// NewEngine creates an Engine. Without options it logs nothing, traces
// nothing and does not account scratch memory.
//
// Example:
//
//	engine := NewEngine(WithTracer(trace.New(os.Stdout)))
//	m := engine.Sequential(ctx, data)
func NewEngine(opts ...Option) *Engine {
	o := options{
		logger:    logging.NoopLogger(),
		collector: metrics.NoopCollector{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		logger:    o.logger,
		tracer:    o.tracer,
		collector: o.collector,
		resources: o.resources,
	}
}

// breakdown is the full accounting of one parallel call, kept so the
// conservation of counts can be checked.
type breakdown struct {
	metrics  metrics.SortMetrics
	segments []partition.Segment
	workers  []metrics.Counts // one slot per worker, written once by that worker
	merge    metrics.Counts
}

// Sequential bubble-sorts a in place on the calling goroutine and returns its
// metrics. It never fails and never annotates numThreads.
func (e *Engine) Sequential(ctx context.Context, a []int) metrics.SortMetrics {
	m := metrics.New()
	m.MemoryUsageBytes = array.MemoryUsage(a)

	e.tracer.Emit(trace.Main, "start sequential sort of %d elements", len(a))
	start := time.Now()

	m.Add(bubble.SortRange(a, partition.Segment{Start: 0, End: len(a)}, e.tracer, trace.Main))

	m.ExecutionTimeMs = elapsedMs(start)
	e.tracer.Emit(trace.Main, "sort finished in %.3f ms", m.ExecutionTimeMs)

	e.collector.RecordSort(metrics.ModeSequential, m)
	e.logger.LogSort(ctx, string(metrics.ModeSequential), 1, m.Comparisons, m.Swaps, m.ExecutionTimeMs, nil)
	return m
}

// Parallel sorts a in place using up to threads workers (0 = auto) and
// returns the aggregate metrics, including the numThreads annotation.
//
// The only error is failing to reserve merge scratch memory, which happens
// before any element is touched; a returned error therefore means a is
// unchanged. Once sorting begins the call always runs to completion.
func (e *Engine) Parallel(ctx context.Context, a []int, threads int) (metrics.SortMetrics, error) {
	b, err := e.parallel(ctx, a, threads)
	if err != nil {
		return metrics.SortMetrics{}, err
	}
	return b.metrics, nil
}

func (e *Engine) parallel(ctx context.Context, a []int, requested int) (breakdown, error) {
	n := len(a)
	m := metrics.New()
	m.MemoryUsageBytes = array.MemoryUsage(a)

	e.tracer.Emit(trace.Main, "start parallel sort of %d elements", n)
	start := time.Now()

	threads, segs := partition.Plan(n, requested)
	if resolved := partition.ResolveThreads(requested); resolved > threads {
		e.logger.LogThreadClamp(ctx, resolved, threads, n)
		e.tracer.Emit(trace.Main, "thread count reduced from %d to %d for %d elements", resolved, threads, n)
	}

	// Budget wait is excluded from the measured time.
	var waited time.Duration
	if threads > 1 {
		scratch := merge.ScratchBytes(n)
		waitStart := time.Now()
		if err := e.resources.AcquireMemory(ctx, scratch); err != nil {
			err = fmt.Errorf("reserve %d bytes of merge scratch: %w", scratch, err)
			e.logger.LogSort(ctx, string(metrics.ModeParallel), threads, 0, 0, 0, err)
			return breakdown{}, err
		}
		defer e.resources.ReleaseMemory(scratch)
		waited = time.Since(waitStart)
	}

	e.tracer.Emit(trace.Main, "sorting on %d workers, segment size ~%d elements", threads, segs[0].Len())

	workers := make([]metrics.Counts, threads)
	var g errgroup.Group
	for i, seg := range segs {
		e.tracer.Emit(trace.Main, "launching worker #%d for range %s", i, seg)
		g.Go(func() error {
			workers[i] = bubble.SortRange(a, seg, e.tracer, trace.Worker(i))
			return nil
		})
	}
	// Workers never return errors; Wait is the join barrier.
	_ = g.Wait()

	for i, c := range workers {
		m.Add(c)
		e.tracer.Emit(trace.Main, "worker #%d finished: %d comparisons, %d swaps", i, c.Comparisons, c.Swaps)
	}

	var mc metrics.Counts
	if threads > 1 {
		e.tracer.Emit(trace.Main, "start merging %d sorted segments", threads)
		mc = merge.Segments(a, threads, e.tracer)
		m.Add(mc)
		e.tracer.Emit(trace.Main, "merge finished: %d comparisons, %d swaps", mc.Comparisons, mc.Swaps)
	}

	m.ExecutionTimeMs = max(elapsedMs(start)-float64(waited.Nanoseconds())/1e6, 0)
	m.SetNumThreads(threads)
	e.tracer.Emit(trace.Main, "sort finished in %.3f ms", m.ExecutionTimeMs)

	e.collector.RecordSort(metrics.ModeParallel, m)
	e.logger.LogSort(ctx, string(metrics.ModeParallel), threads, m.Comparisons, m.Swaps, m.ExecutionTimeMs, nil)

	return breakdown{metrics: m, segments: segs, workers: workers, merge: mc}, nil
}

// SortSequential is Engine.Sequential on an engine with only tr configured.
func SortSequential(a []int, tr *trace.Emitter) metrics.SortMetrics {
	return NewEngine(WithTracer(tr)).Sequential(context.Background(), a)
}

// SortParallel is Engine.Parallel on an engine with only tr configured.
// Without a resource controller the call cannot fail.
func SortParallel(a []int, threads int, tr *trace.Emitter) metrics.SortMetrics {
	m, _ := NewEngine(WithTracer(tr)).Parallel(context.Background(), a, threads)
	return m
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Nanoseconds()) / 1e6
}

// Package coordinator orchestrates a sort call: it partitions the array,
// fans the segments out to short-lived workers, joins them, merges their
// output and aggregates every counter into one metrics.SortMetrics.
//
// # Overview
//
// The Engine offers two modes over the same bubble-sort worker:
//
//   - Sequential: the calling goroutine sorts the whole array as one segment.
//   - Parallel: the array is split into contiguous segments, one worker per
//     segment, followed by a bottom-up merge of the sorted segments.
//
// Both mutate the caller's array in place and return metrics by value.
//
// # Architecture
//
//	┌─────────────────────────────────────────┐
//	│                Engine                    │
//	├─────────────────────────────────────────┤
//	│  partition.Plan  → threads, segments     │
//	│  resource        → scratch budget        │
//	│                                          │
//	│  errgroup.Group                          │
//	│    worker 0: bubble.SortRange([s0,e0))   │
//	│    worker 1: bubble.SortRange([s1,e1))   │
//	│    ...                                   │
//	│  Wait()          ← join barrier          │
//	│                                          │
//	│  Σ worker counts                         │
//	│  merge.Segments  (threads > 1 only)      │
//	│  metrics.SortMetrics                     │
//	└─────────────────────────────────────────┘
//
// # Parallel Sort Protocol
//
// 1. Planning:
//   - Resolve the requested thread count (0 = auto) and clamp it to
//     max(1, n/1000)
//   - Split [0, n) into that many contiguous segments
//
// 2. Budget:
//   - Reserve the merge scratch buffer from the resource controller before
//     any element is touched
//   - A canceled context while waiting returns an error with the array
//     unchanged
//
// 3. Sort Phase:
//   - Launch one worker per segment in an errgroup.Group
//   - Each worker owns a disjoint sub-range, so no locking is needed
//   - Each worker writes exactly one Counts slot, read only after Wait
//
// 4. Merge Phase:
//   - Starts strictly after every worker has joined
//   - Skipped when only one segment exists
//
// 5. Reporting:
//   - Elapsed time covers planning, sorting and merging
//   - Extra["numThreads"] carries the effective thread count
//   - The metrics are handed to the configured Collector and logged
//
// # Concurrency Model
//
// Workers are spawned fresh for every call and discarded after the join;
// there is no pool and no work queue. The join is the only blocking wait
// once sorting starts. The trace emitter is the only resource shared by
// workers and it serializes whole lines under its own mutex.
//
// A call cannot be canceled after the sort phase begins. A panicking worker
// takes the process down; no partial metrics are ever produced.
//
// # Accounting
//
// Totals are conserved:
//
//	comparisons = Σ worker comparisons + merge comparisons
//	swaps       = Σ worker swaps       + merge right-block takes
//
// # Usage Example
//
//	engine := coordinator.NewEngine(
//	    coordinator.WithLogger(logging.NewTextLogger(os.Stderr, slog.LevelInfo)),
//	    coordinator.WithTracer(trace.New(os.Stdout)),
//	)
//
//	m, err := engine.Parallel(ctx, data, 0)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(m.Report())
package coordinator

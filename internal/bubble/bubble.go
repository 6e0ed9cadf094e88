// Package bubble implements the range-restricted bubble sort run by every
// worker, and by the calling goroutine in sequential mode.
package bubble

import (
	"github.com/dreamware/parsort/internal/metrics"
	"github.com/dreamware/parsort/internal/partition"
	"github.com/dreamware/parsort/internal/trace"
)

const (
	// comparisonTraceEvery throttles per-comparison trace lines.
	comparisonTraceEvery = 1000
	// progressTraceEvery is the outer-iteration interval of progress lines.
	progressTraceEvery = 10
)

// SortRange bubble-sorts a[seg.Start:seg.End] in place and returns the number
// of comparisons and swaps it performed. Elements outside the segment are
// never read or written, so disjoint segments of the same array may be sorted
// concurrently.
//
// For a segment of length k this performs exactly k(k-1)/2 comparisons and one
// swap per inversion inside the segment. tr may be nil; src tags trace lines.
func SortRange(a []int, seg partition.Segment, tr *trace.Emitter, src trace.Source) metrics.Counts {
	var c metrics.Counts
	start, end := seg.Start, seg.End
	traced := tr.Enabled()

	if traced {
		tr.Emit(src, "start sorting range %s of %d elements", seg, seg.Len())
	}

	for i := start; i < end-1; i++ {
		for j := start; j < end-(i-start)-1; j++ {
			c.Comparisons++
			if traced && c.Comparisons%comparisonTraceEvery == 0 {
				tr.Emit(src, "comparison #%d: %d and %d", c.Comparisons, a[j], a[j+1])
			}
			if a[j] > a[j+1] {
				a[j], a[j+1] = a[j+1], a[j]
				c.Swaps++
			}
		}

		if traced && (i-start+1)%progressTraceEvery == 0 {
			done, total := i-start+1, end-start-1
			tr.Emit(src, "progress: %d/%d iterations (%d%%), %d comparisons, %d swaps",
				done, total, done*100/total, c.Comparisons, c.Swaps)
		}
	}

	if traced {
		tr.Emit(src, "finished sorting range %s, %d comparisons, %d swaps", seg, c.Comparisons, c.Swaps)
	}
	return c
}

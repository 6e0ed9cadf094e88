// Package merge combines contiguous, independently sorted segments of an
// array into one sorted sequence.
//
// The merge is the combine phase of a bottom-up merge sort seeded at the
// initial segment width instead of 1: each pass merges adjacent blocks of
// width w into blocks of width 2w until one block spans the array.
//
// Accounting: every merge comparison counts as a comparison; every element
// taken from the right block counts as a swap. Left-block takes and tail
// copies are not counted, which keeps totals compatible with earlier recorded
// runs.
package merge

import (
	"cmp"
	"strconv"

	"github.com/dreamware/parsort/internal/metrics"
	"github.com/dreamware/parsort/internal/trace"
)

// rightTakeTraceEvery throttles right-block move trace lines.
const rightTakeTraceEvery = 100

// ScratchBytes returns the transient buffer size a merge of n elements needs.
func ScratchBytes(n int) int64 {
	return int64(n) * strconv.IntSize / 8
}

// Segments merges a, which must consist of numSegments contiguous sorted
// blocks of width floor(len(a)/numSegments) (the last one possibly longer),
// into one ascending sequence. The merge is stable.
//
// numSegments <= 1 or len(a) < 2 is a no-op. tr may be nil.
func Segments(a []int, numSegments int, tr *trace.Emitter) metrics.Counts {
	return segmentsFunc(a, numSegments, cmp.Compare[int], tr)
}

// segmentsFunc is Segments for any element type ordered by compare, which
// returns a negative number when x < y, zero when equal and a positive number
// when x > y. Equal elements keep their left-before-right order.
func segmentsFunc[T any](a []T, numSegments int, compare func(x, y T) int, tr *trace.Emitter) metrics.Counts {
	var c metrics.Counts
	n := len(a)
	if numSegments <= 1 || n < 2 {
		return c
	}
	width := max(n/numSegments, 1)
	traced := tr.Enabled()

	if traced {
		tr.Emit(trace.Merge, "start merging %d segments of ~%d elements", numSegments, width)
	}

	tmp := make([]T, n)
	for w := width; w < n; w *= 2 {
		if traced {
			tr.Emit(trace.Merge, "merging blocks of width %d", w)
		}
		for start := 0; start < n; start += 2 * w {
			mid := min(start+w, n)
			end := min(start+2*w, n)
			if traced {
				tr.Emit(trace.Merge, "merging [%d-%d) and [%d-%d)", start, mid, mid, end)
			}
			c = c.Add(mergeBlocks(a, tmp, start, mid, end, compare, c.Swaps, tr))
		}
	}

	if traced {
		tr.Emit(trace.Merge, "finished merging all segments, %d comparisons, %d swaps", c.Comparisons, c.Swaps)
	}
	return c
}

// mergeBlocks merges the sorted runs a[start:mid] and a[mid:end] through
// tmp[start:end] and copies the result back. swapsSoFar is the caller's running
// swap count, used only to throttle trace lines.
func mergeBlocks[T any](a, tmp []T, start, mid, end int, compare func(x, y T) int, swapsSoFar int64, tr *trace.Emitter) metrics.Counts {
	var c metrics.Counts
	i, j, k := start, mid, start

	for i < mid && j < end {
		c.Comparisons++
		if compare(a[i], a[j]) <= 0 {
			tmp[k] = a[i]
			i++
		} else {
			if tr.Enabled() && (swapsSoFar+c.Swaps)%rightTakeTraceEvery == 0 {
				tr.Emit(trace.Merge, "moving element from right block: %v (index %d) -> position %d", a[j], j, k)
			}
			tmp[k] = a[j]
			j++
			c.Swaps++
		}
		k++
	}
	k += copy(tmp[k:], a[i:mid])
	copy(tmp[k:], a[j:end])
	copy(a[start:end], tmp[start:end])
	return c
}

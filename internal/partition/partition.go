package partition

import "fmt"

const (
	// MinSegmentLen is the array length each additional worker must be able to
	// claim; arrays shorter than 2*MinSegmentLen always sort on one worker.
	MinSegmentLen = 1000

	// DefaultThreads is used when the platform cannot report its concurrency.
	DefaultThreads = 4
)

// hardwareConcurrency is a variable so tests can simulate other platforms.
var hardwareConcurrency = HardwareConcurrency

// Segment is a half-open index range [Start, End) over the array.
type Segment struct {
	Start int // First index, inclusive
	End   int // Last index, exclusive
}

// Len returns the number of elements covered by the segment.
func (s Segment) Len() int {
	return s.End - s.Start
}

// Contains reports whether index i falls inside the segment.
func (s Segment) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

func (s Segment) String() string {
	return fmt.Sprintf("[%d - %d)", s.Start, s.End)
}

// MaxThreads returns the largest thread count allowed for an array of length n:
// max(1, n/MinSegmentLen).
func MaxThreads(n int) int {
	return max(1, n/MinSegmentLen)
}

// ResolveThreads maps a requested thread count to a concrete one before
// clamping. Positive requests are returned unchanged; zero or negative means
// "auto" and resolves to the platform concurrency, or DefaultThreads when the
// platform reports none.
func ResolveThreads(requested int) int {
	if requested > 0 {
		return requested
	}
	if hc := hardwareConcurrency(); hc > 0 {
		return hc
	}
	return DefaultThreads
}

// EffectiveThreads returns clamp(ResolveThreads(requested), 1, MaxThreads(n)).
//
// Example:
//
//	EffectiveThreads(10_000, 4) // 4
//	EffectiveThreads(2_500, 8)  // 2
//	EffectiveThreads(999, 16)   // 1
func EffectiveThreads(n, requested int) int {
	return min(max(ResolveThreads(requested), 1), MaxThreads(n))
}

// Segments splits [0, n) into threads contiguous segments of floor(n/threads)
// elements each; the last segment absorbs the remainder.
//
// threads <= 0 is treated as 1. n == 0 yields a single empty segment, so
// callers must tolerate zero-length ranges. When threads exceeds n the leading
// segments are empty and the last one covers the whole array.
func Segments(n, threads int) []Segment {
	threads = max(threads, 1)
	n = max(n, 0)
	size := n / threads

	segs := make([]Segment, threads)
	for i := range threads {
		start := i * size
		end := start + size
		if i == threads-1 {
			end = n
		}
		segs[i] = Segment{Start: start, End: end}
	}
	return segs
}

// Plan computes the effective thread count for an array of length n and the
// matching segments.
func Plan(n, requested int) (int, []Segment) {
	threads := EffectiveThreads(n, requested)
	return threads, Segments(n, threads)
}

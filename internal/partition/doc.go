// Package partition decides how many workers sort an array and which
// contiguous range each of them owns.
//
// # Thread Count
//
// A requested count of 0 means "auto" and resolves to the platform
// concurrency (the CPU affinity mask on Linux, runtime.NumCPU elsewhere),
// falling back to DefaultThreads. The resolved count is then clamped:
//
//	effective = clamp(resolved, 1, max(1, n/1000))
//
// so every worker beyond the first gets at least MinSegmentLen elements.
//
// # Segments
//
// The array [0, n) is split into `effective` ranges of floor(n/effective)
// elements; the last range absorbs the remainder:
//
//	n = 10_500, effective = 4, size = 2_625
//	worker 0: [0    - 2625)
//	worker 1: [2625 - 5250)
//	worker 2: [5250 - 7875)
//	worker 3: [7875 - 10500)
//
// Segments are disjoint, ordered and their union is exactly [0, n). Workers
// can therefore sort their ranges concurrently without locking, and the
// merge phase can rely on every block of width floor(n/effective) being
// sorted.
package partition

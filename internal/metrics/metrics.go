package metrics

import (
	"fmt"
	"strconv"
	"strings"
)

// NumThreadsKey is the Extra annotation carrying the effective thread count
// used by a parallel sort.
const NumThreadsKey = "numThreads"

// Counts is a comparison/swap pair accumulated by one worker or one merge.
// A worker owns its Counts exclusively until it has been joined.
type Counts struct {
	Comparisons int64 // Element-pair tests
	Swaps       int64 // Position-changing relocations
}

// Add returns the element-wise sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Comparisons: c.Comparisons + o.Comparisons,
		Swaps:       c.Swaps + o.Swaps,
	}
}

// SortMetrics is the aggregate report of one sort call.
// It is created fresh per call and must not be modified after it is returned.
type SortMetrics struct {
	Extra            map[string]string // Key-value annotations
	Comparisons      int64             // Total comparisons (workers + merge)
	Swaps            int64             // Total swaps (workers + merge)
	ExecutionTimeMs  float64           // Wall-clock time of the whole call
	MemoryUsageBytes uint64            // Estimated footprint of the array
}

// New returns a SortMetrics with every counter zeroed and no annotations.
func New() SortMetrics {
	return SortMetrics{Extra: make(map[string]string)}
}

// Add folds c into the running totals.
func (m *SortMetrics) Add(c Counts) {
	m.Comparisons += c.Comparisons
	m.Swaps += c.Swaps
}

// Counts returns the comparison/swap totals as a Counts pair.
func (m SortMetrics) Counts() Counts {
	return Counts{Comparisons: m.Comparisons, Swaps: m.Swaps}
}

// SetNumThreads records the effective thread count annotation.
func (m *SortMetrics) SetNumThreads(n int) {
	if m.Extra == nil {
		m.Extra = make(map[string]string)
	}
	m.Extra[NumThreadsKey] = strconv.Itoa(n)
}

// NumThreads returns the effective thread count annotation, if present and
// well formed.
func (m SortMetrics) NumThreads() (int, bool) {
	v, ok := m.Extra[NumThreadsKey]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Report renders the metrics as the multi-line text block shown after a sort.
func (m SortMetrics) Report() string {
	var b strings.Builder
	b.WriteString("=== Sort metrics ===\n")
	fmt.Fprintf(&b, "Comparisons: %d\n", m.Comparisons)
	fmt.Fprintf(&b, "Swaps: %d\n", m.Swaps)
	fmt.Fprintf(&b, "Execution time: %.3f ms\n", m.ExecutionTimeMs)
	fmt.Fprintf(&b, "Memory usage: %d bytes\n", m.MemoryUsageBytes)
	if n, ok := m.NumThreads(); ok {
		fmt.Fprintf(&b, "Threads: %d\n", n)
	}
	return b.String()
}

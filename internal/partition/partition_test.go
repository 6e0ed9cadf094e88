package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withHardwareConcurrency swaps the platform probe for the duration of a test
func withHardwareConcurrency(t *testing.T, n int) {
	t.Helper()
	orig := hardwareConcurrency
	hardwareConcurrency = func() int { return n }
	t.Cleanup(func() { hardwareConcurrency = orig })
}

// TestResolveThreads covers explicit, auto and fallback resolution
func TestResolveThreads(t *testing.T) {
	withHardwareConcurrency(t, 6)
	assert.Equal(t, 3, ResolveThreads(3))
	assert.Equal(t, 6, ResolveThreads(0))
	assert.Equal(t, 6, ResolveThreads(-2))

	withHardwareConcurrency(t, 0)
	assert.Equal(t, DefaultThreads, ResolveThreads(0))
}

// TestEffectiveThreads verifies the clamp against array size
func TestEffectiveThreads(t *testing.T) {
	withHardwareConcurrency(t, 8)

	tests := []struct {
		name      string
		n         int
		requested int
		expected  int
	}{
		{name: "empty array", n: 0, requested: 4, expected: 1},
		{name: "below one segment", n: 999, requested: 16, expected: 1},
		{name: "exactly two segments", n: 2000, requested: 16, expected: 2},
		{name: "clamped by size", n: 2500, requested: 8, expected: 2},
		{name: "request honoured", n: 10_000, requested: 4, expected: 4},
		{name: "single thread", n: 10_000, requested: 1, expected: 1},
		{name: "auto uses platform", n: 100_000, requested: 0, expected: 8},
		{name: "auto clamped", n: 3000, requested: 0, expected: 3},
		{name: "negative is auto", n: 100_000, requested: -1, expected: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveThreads(tt.n, tt.requested)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, got, max(1, tt.n/1000))
			assert.GreaterOrEqual(t, got, 1)
		})
	}
}

// TestSegmentsCoverArray verifies the partition invariant for many shapes
func TestSegmentsCoverArray(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 999, 1000, 1001, 4096, 10_000, 10_007} {
		for _, threads := range []int{-1, 0, 1, 2, 3, 4, 5, 8, 13} {
			segs := Segments(n, threads)
			require.Len(t, segs, max(threads, 1), "n=%d threads=%d", n, threads)

			next := 0
			for i, s := range segs {
				assert.Equal(t, next, s.Start, "n=%d threads=%d segment %d not contiguous", n, threads, i)
				assert.GreaterOrEqual(t, s.Len(), 0)
				if i < len(segs)-1 {
					assert.Equal(t, n/max(threads, 1), s.Len())
				}
				next = s.End
			}
			assert.Equal(t, n, next, "n=%d threads=%d union must end at n", n, threads)
		}
	}
}

// TestSegmentsRemainder verifies the last segment absorbs the remainder
func TestSegmentsRemainder(t *testing.T) {
	segs := Segments(10_500, 4)
	assert.Equal(t, []Segment{
		{Start: 0, End: 2625},
		{Start: 2625, End: 5250},
		{Start: 5250, End: 7875},
		{Start: 7875, End: 10_500},
	}, segs)

	segs = Segments(10, 3)
	assert.Equal(t, []Segment{{0, 3}, {3, 6}, {6, 10}}, segs)
}

// TestSegmentsEmpty verifies the degenerate empty-array case
func TestSegmentsEmpty(t *testing.T) {
	segs := Segments(0, 1)
	require.Len(t, segs, 1)
	assert.Equal(t, 0, segs[0].Len())
}

// TestPlan verifies the thread count and segments agree
func TestPlan(t *testing.T) {
	withHardwareConcurrency(t, 4)

	threads, segs := Plan(10_000, 0)
	assert.Equal(t, 4, threads)
	assert.Len(t, segs, 4)

	threads, segs = Plan(500, 4)
	assert.Equal(t, 1, threads)
	assert.Equal(t, []Segment{{0, 500}}, segs)
}

// TestSegmentHelpers covers Len, Contains and String
func TestSegmentHelpers(t *testing.T) {
	s := Segment{Start: 3, End: 7}
	assert.Equal(t, 4, s.Len())
	assert.True(t, s.Contains(3))
	assert.True(t, s.Contains(6))
	assert.False(t, s.Contains(7))
	assert.False(t, s.Contains(2))
	assert.Equal(t, "[3 - 7)", s.String())
}

// TestHardwareConcurrency verifies the platform probe reports something usable
func TestHardwareConcurrency(t *testing.T) {
	assert.GreaterOrEqual(t, HardwareConcurrency(), 1)
}

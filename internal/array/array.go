package array

import (
	"unsafe"

	"golang.org/x/exp/slices"
)

// sliceHeaderSize is the size of the []int header itself (pointer, len, cap).
const sliceHeaderSize = uint64(unsafe.Sizeof([]int(nil)))

// MemoryUsage estimates the bytes held by a: its elements plus the slice
// header. Spare capacity is not counted.
func MemoryUsage(a []int) uint64 {
	return uint64(len(a))*uint64(unsafe.Sizeof(int(0))) + sliceHeaderSize
}

// IsSorted reports whether a is in non-decreasing order. Empty and
// single-element arrays are sorted.
func IsSorted(a []int) bool {
	return slices.IsSorted(a)
}

// Stats summarizes an array for display.
type Stats struct {
	Size        int    // Number of elements
	Min         int    // Smallest value, zero when empty
	Max         int    // Largest value, zero when empty
	MemoryBytes uint64 // MemoryUsage estimate
}

// Describe computes Stats for a.
func Describe(a []int) Stats {
	s := Stats{Size: len(a), MemoryBytes: MemoryUsage(a)}
	if len(a) > 0 {
		s.Min = slices.Min(a)
		s.Max = slices.Max(a)
	}
	return s
}

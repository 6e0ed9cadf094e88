package array

import (
	"math"
	"math/rand"
	"time"
)

// NewRNG returns a pseudo-random source seeded with seed. A zero seed uses the
// current time, so runs are reproducible only with an explicit seed.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Generate returns size values drawn uniformly from [minValue, maxValue].
// Bounds given in the wrong order are swapped; size <= 0 yields an empty array.
func Generate(rng *rand.Rand, size, minValue, maxValue int) []int {
	if size <= 0 {
		return []int{}
	}
	if minValue > maxValue {
		minValue, maxValue = maxValue, minValue
	}
	// Distance between the bounds; wraps correctly for any ordered pair.
	dist := uint64(maxValue) - uint64(minValue)

	a := make([]int, size)
	for i := range a {
		if dist == math.MaxUint64 {
			a[i] = int(rng.Uint64())
			continue
		}
		a[i] = minValue + int(uint64Below(rng, dist+1))
	}
	return a
}

// uint64Below returns a uniform value in [0, n) for n > 0.
func uint64Below(rng *rand.Rand, n uint64) uint64 {
	if n <= math.MaxInt64 {
		return uint64(rng.Int63n(int64(n)))
	}
	// Reject the incomplete top bucket so every residue is equally likely.
	limit := math.MaxUint64 - math.MaxUint64%n
	for {
		if v := rng.Uint64(); v < limit {
			return v % n
		}
	}
}

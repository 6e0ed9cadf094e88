//go:build linux

package partition

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// HardwareConcurrency returns the number of CPUs this process may run on,
// taken from its scheduler affinity mask. Falls back to runtime.NumCPU when
// the mask cannot be read.
func HardwareConcurrency() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err == nil {
		if n := set.Count(); n > 0 {
			return n
		}
	}
	return runtime.NumCPU()
}

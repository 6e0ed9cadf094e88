//go:build !linux

package partition

import "runtime"

// HardwareConcurrency returns the number of logical CPUs usable by the process.
func HardwareConcurrency() int {
	return runtime.NumCPU()
}

// Package trace serializes human-readable progress lines written by
// concurrent sort workers onto one shared output stream.
//
// Every call to Emit produces exactly one line and holds the emitter lock only
// while that line is written, so lines from different workers never
// interleave. Ordering across workers is best effort: the timestamp is taken
// before the lock, so two lines may appear out of timestamp order.
//
// A nil *Emitter is valid and discards everything; callers pass nil to
// disable tracing.
package trace

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"
)

// TimeFormat is the timestamp layout prefixed to every line.
const TimeFormat = "15:04:05.000"

// Source identifies who emitted a line: the calling goroutine, the merge
// phase, or a worker by index.
type Source int

const (
	// Main is the goroutine that invoked the sort.
	Main Source = -1
	// Merge is the segment merge phase.
	Merge Source = -2
)

// Worker returns the Source for worker index i (i >= 0).
func Worker(i int) Source {
	return Source(i)
}

func (s Source) String() string {
	switch {
	case s == Main:
		return "main"
	case s == Merge:
		return "merge"
	case s >= 0:
		return "worker " + strconv.Itoa(int(s))
	default:
		return "source " + strconv.Itoa(int(s))
	}
}

// Emitter writes timestamped lines to w under a single mutex.
type Emitter struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// New returns an Emitter writing to w.
func New(w io.Writer) *Emitter {
	return &Emitter{w: w, now: time.Now}
}

// Enabled reports whether lines are actually written.
func (e *Emitter) Enabled() bool {
	return e != nil && e.w != nil
}

// Emit formats one line as "<time> | <source> | <message>" and writes it
// atomically with respect to other Emit calls on e.
func (e *Emitter) Emit(src Source, format string, args ...any) {
	if !e.Enabled() {
		return
	}
	line := fmt.Sprintf("%s | %s | %s\n", e.now().Format(TimeFormat), src, fmt.Sprintf(format, args...))

	e.mu.Lock()
	defer e.mu.Unlock()
	// Trace output is advisory; a failing sink must not disturb the sort.
	_, _ = io.WriteString(e.w, line)
}

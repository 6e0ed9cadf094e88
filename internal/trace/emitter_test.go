package trace

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSourceString covers every identity form
func TestSourceString(t *testing.T) {
	tests := []struct {
		src  Source
		want string
	}{
		{Main, "main"},
		{Merge, "merge"},
		{Worker(0), "worker 0"},
		{Worker(12), "worker 12"},
		{Source(-7), "source -7"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.src.String())
		})
	}
}

// TestEmitFormat verifies the line layout with a fixed clock
func TestEmitFormat(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)
	e.now = func() time.Time {
		return time.Date(2024, 1, 2, 13, 4, 5, 67_000_000, time.UTC)
	}

	e.Emit(Worker(3), "sorting [%d - %d)", 0, 1000)
	e.Emit(Main, "done")

	assert.Equal(t,
		"13:04:05.067 | worker 3 | sorting [0 - 1000)\n"+
			"13:04:05.067 | main | done\n",
		buf.String())
}

// TestNilEmitter verifies a nil emitter is a silent no-op
func TestNilEmitter(t *testing.T) {
	var e *Emitter
	assert.False(t, e.Enabled())
	assert.NotPanics(t, func() {
		e.Emit(Main, "ignored %d", 1)
	})

	assert.False(t, New(nil).Enabled())
}

// TestConcurrentEmitKeepsLinesWhole runs many writers and checks that no line
// was torn or merged with another
func TestConcurrentEmitKeepsLinesWhole(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)

	const workers = 16
	const perWorker = 200
	payload := strings.Repeat("x", 64)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWorker {
				e.Emit(Worker(w), "%d %s", i, payload)
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, workers*perWorker)

	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, " | ", 3)
		require.Len(t, parts, 3, "malformed line %q", line)
		assert.True(t, strings.HasPrefix(parts[1], "worker "))
		assert.True(t, strings.HasSuffix(parts[2], payload), "torn line %q", line)
		seen[parts[1]+"/"+strings.Fields(parts[2])[0]] = true
	}
	for w := range workers {
		for i := range perWorker {
			assert.True(t, seen[fmt.Sprintf("worker %d/%d", w, i)])
		}
	}
}

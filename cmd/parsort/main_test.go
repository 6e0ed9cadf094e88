package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/parsort/internal/array"
	"github.com/dreamware/parsort/internal/storage"
)

// TestGetenv tests the getenv utility function
func TestGetenv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      string
		expected string
	}{
		{
			name:     "environment variable set",
			key:      "PARSORT_TEST_VAR",
			value:    "test_value",
			def:      "default",
			expected: "test_value",
		},
		{
			name:     "environment variable not set",
			key:      "PARSORT_UNSET_VAR",
			def:      "default_value",
			expected: "default_value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}
			assert.Equal(t, tt.expected, getenv(tt.key, tt.def))
		})
	}
}

// TestGetenvTyped tests the numeric and boolean helpers
func TestGetenvTyped(t *testing.T) {
	t.Setenv("PARSORT_TEST_INT", "42")
	t.Setenv("PARSORT_TEST_BOOL", "true")
	t.Setenv("PARSORT_TEST_BAD", "forty-two")

	n, err := getenvInt("PARSORT_TEST_INT", 7)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	n, err = getenvInt("PARSORT_TEST_MISSING", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n64, err := getenvInt64("PARSORT_TEST_INT", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n64)

	b, err := getenvBool("PARSORT_TEST_BOOL", false)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = getenvInt("PARSORT_TEST_BAD", 0)
	assert.ErrorContains(t, err, "PARSORT_TEST_BAD")
	_, err = getenvBool("PARSORT_TEST_BAD", false)
	assert.Error(t, err)
}

// TestParseConfig tests flag parsing, env fallbacks and validation
func TestParseConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := parseConfig(nil, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, 10000, cfg.size)
		assert.Equal(t, modeBoth, cfg.mode)
		assert.Equal(t, 0, cfg.threads)
		assert.Equal(t, "info", cfg.logLevel)
		assert.False(t, cfg.trace)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("PARSORT_SIZE", "2500")
		t.Setenv("PARSORT_MODE", "parallel")
		t.Setenv("PARSORT_THREADS", "3")
		t.Setenv("PARSORT_TRACE", "1")

		cfg, err := parseConfig(nil, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, 2500, cfg.size)
		assert.Equal(t, modeParallel, cfg.mode)
		assert.Equal(t, 3, cfg.threads)
		assert.True(t, cfg.trace)
	})

	t.Run("flags override environment", func(t *testing.T) {
		t.Setenv("PARSORT_SIZE", "2500")

		cfg, err := parseConfig([]string{"-size", "300", "-mode", "sequential", "-seed", "9"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, 300, cfg.size)
		assert.Equal(t, modeSequential, cfg.mode)
		assert.Equal(t, int64(9), cfg.seed)
	})

	t.Run("bad environment value", func(t *testing.T) {
		t.Setenv("PARSORT_THREADS", "many")
		_, err := parseConfig(nil, io.Discard)
		assert.ErrorContains(t, err, "PARSORT_THREADS")
	})

	t.Run("help", func(t *testing.T) {
		_, err := parseConfig([]string{"-h"}, io.Discard)
		assert.ErrorIs(t, err, flag.ErrHelp)
	})

	invalid := []struct {
		name string
		args []string
	}{
		{name: "unknown mode", args: []string{"-mode", "quick"}},
		{name: "zero size", args: []string{"-size", "0"}},
		{name: "negative threads", args: []string{"-threads", "-2"}},
		{name: "negative memory limit", args: []string{"-memory-limit", "-1"}},
		{name: "positional argument", args: []string{"extra"}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(tt.args, io.Discard)
			assert.Error(t, err)
		})
	}
}

func testConfig(t *testing.T, args ...string) config {
	t.Helper()
	cfg, err := parseConfig(args, io.Discard)
	require.NoError(t, err)
	return cfg
}

// TestRunBothModes exercises generation, both sorts, history, metrics and output
func TestRunBothModes(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "runs.db")
	promPath := filepath.Join(dir, "parsort.prom")
	outPath := filepath.Join(dir, "sorted.txt")

	cfg := testConfig(t,
		"-size", "2500", "-seed", "7", "-mode", "both", "-threads", "2",
		"-db", dbPath, "-prom-textfile", promPath, "-out", outPath, "-compare",
	)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &stdout, &stderr))

	out := stdout.String()
	assert.Contains(t, out, "Array: 2500 elements")
	assert.Contains(t, out, "--- sequential sort of 2500 elements ---")
	assert.Contains(t, out, "--- parallel sort of 2500 elements ---")
	assert.Equal(t, 2, strings.Count(out, "=== Sort metrics ==="))
	assert.Equal(t, 2, strings.Count(out, "Sorted: true"))
	assert.Contains(t, out, "Threads: 2")
	assert.Contains(t, out, "=== Sort comparison ===")
	assert.Contains(t, out, "parallel (2 threads): speedup")

	saved, err := array.LoadFile(outPath)
	require.NoError(t, err)
	assert.Len(t, saved, 2500)
	assert.True(t, array.IsSorted(saved))

	prom, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "parsort_runs_total")

	store, err := storage.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "sequential", runs[0].Name)
	assert.Equal(t, "parallel", runs[1].Name)
	assert.Equal(t, 2, runs[1].Threads)
}

// TestRunLoadsInput sorts an array read from disk with tracing enabled
func TestRunLoadsInput(t *testing.T) {
	inPath := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, array.SaveFile(inPath, []int{5, 3, 8, 1, 9, 2}))

	cfg := testConfig(t, "-in", inPath, "-mode", "sequential", "-trace")
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &stdout, io.Discard))

	out := stdout.String()
	assert.Contains(t, out, "Comparisons: 15")
	assert.Contains(t, out, "Swaps: 8")
	assert.Contains(t, out, " | main | ")
	assert.NotContains(t, out, "Threads:")
}

// TestRunFullValueRange generates across every int value without failing
func TestRunFullValueRange(t *testing.T) {
	cfg := testConfig(t,
		"-size", "50", "-seed", "3", "-mode", "both",
		"-min", "-9223372036854775808", "-max", "9223372036854775807",
	)
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &stdout, io.Discard))
	assert.Equal(t, 2, strings.Count(stdout.String(), "Sorted: true"))
}

// TestRunErrors covers failures surfaced to main
func TestRunErrors(t *testing.T) {
	t.Run("missing input file", func(t *testing.T) {
		cfg := testConfig(t, "-in", filepath.Join(t.TempDir(), "missing.txt"))
		err := run(context.Background(), cfg, io.Discard, io.Discard)
		assert.ErrorIs(t, err, array.ErrUnreadable)
	})

	t.Run("scratch budget too small", func(t *testing.T) {
		cfg := testConfig(t, "-size", "2000", "-mode", "parallel", "-threads", "2", "-memory-limit", "64")
		err := run(context.Background(), cfg, io.Discard, io.Discard)
		assert.ErrorContains(t, err, "parallel sort")
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := testConfig(t, "-size", "10", "-log-level", "loud")
		err := run(context.Background(), cfg, io.Discard, io.Discard)
		assert.Error(t, err)
	})
}

// Command parsort generates or loads an integer array, bubble-sorts copies of
// it sequentially and in parallel, and reports the metrics of every run.
//
// Every flag defaults to an environment variable, so the same binary can be
// driven from a shell or a job definition:
//
//	PARSORT_SIZE=20000 PARSORT_THREADS=8 parsort -mode both -compare
//	parsort -in data.txt -out sorted.txt -mode parallel -trace
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/exp/slices"

	"github.com/dreamware/parsort/internal/array"
	"github.com/dreamware/parsort/internal/coordinator"
	"github.com/dreamware/parsort/internal/logging"
	"github.com/dreamware/parsort/internal/metrics"
	"github.com/dreamware/parsort/internal/report"
	"github.com/dreamware/parsort/internal/resource"
	"github.com/dreamware/parsort/internal/storage"
	"github.com/dreamware/parsort/internal/trace"
)

// logFatal is a variable to allow mocking log.Fatal in tests.
var logFatal = log.Fatalf

// errNotSorted is returned when a run produces an unsorted array.
var errNotSorted = errors.New("sort verification failed")

const (
	modeSequential = "sequential"
	modeParallel   = "parallel"
	modeBoth       = "both"
)

// config holds everything a single invocation needs.
type config struct {
	inPath       string // load the array from this file instead of generating it
	outPath      string // save the last sorted array here
	mode         string // sequential, parallel or both
	dbPath       string // SQLite run history; empty keeps history in memory
	promTextfile string // Prometheus text-file output; empty disables it
	logLevel     string
	logFormat    string
	seed         int64 // 0 seeds from the clock
	memoryLimit  int64 // scratch-memory budget in bytes; 0 is unlimited
	size         int
	minValue     int
	maxValue     int
	threads      int // 0 uses the hardware concurrency
	trace        bool
	compare      bool
}

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logFatal("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		logFatal("parsort: %v", err)
	}
}

// parseConfig reads flags from args, falling back to PARSORT_* variables.
func parseConfig(args []string, stderr io.Writer) (config, error) {
	var cfg config
	defaults, err := envDefaults()
	if err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet("parsort", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.size, "size", defaults.size, "number of elements to generate")
	fs.IntVar(&cfg.minValue, "min", defaults.minValue, "smallest generated value")
	fs.IntVar(&cfg.maxValue, "max", defaults.maxValue, "largest generated value")
	fs.Int64Var(&cfg.seed, "seed", defaults.seed, "generator seed (0 seeds from the clock)")
	fs.StringVar(&cfg.inPath, "in", defaults.inPath, "load the array from this file")
	fs.StringVar(&cfg.outPath, "out", defaults.outPath, "save the sorted array to this file")
	fs.StringVar(&cfg.mode, "mode", defaults.mode, "sequential, parallel or both")
	fs.IntVar(&cfg.threads, "threads", defaults.threads, "parallel worker count (0 = hardware concurrency)")
	fs.BoolVar(&cfg.trace, "trace", defaults.trace, "write a per-worker trace to stdout")
	fs.StringVar(&cfg.dbPath, "db", defaults.dbPath, "SQLite file for run history")
	fs.BoolVar(&cfg.compare, "compare", defaults.compare, "print a comparison of recorded runs")
	fs.Int64Var(&cfg.memoryLimit, "memory-limit", defaults.memoryLimit, "merge scratch budget in bytes (0 = unlimited)")
	fs.StringVar(&cfg.promTextfile, "prom-textfile", defaults.promTextfile, "write Prometheus metrics to this file")
	fs.StringVar(&cfg.logLevel, "log-level", defaults.logLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.logFormat, "log-format", defaults.logFormat, "text or json")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	switch cfg.mode {
	case modeSequential, modeParallel, modeBoth:
	default:
		return cfg, fmt.Errorf("invalid mode %q", cfg.mode)
	}
	if cfg.inPath == "" && cfg.size <= 0 {
		return cfg, fmt.Errorf("size must be positive, got %d", cfg.size)
	}
	if cfg.threads < 0 {
		return cfg, fmt.Errorf("threads must not be negative, got %d", cfg.threads)
	}
	if cfg.memoryLimit < 0 {
		return cfg, fmt.Errorf("memory limit must not be negative, got %d", cfg.memoryLimit)
	}
	return cfg, nil
}

// envDefaults builds the flag defaults from the environment.
func envDefaults() (config, error) {
	cfg := config{
		inPath:       getenv("PARSORT_IN", ""),
		outPath:      getenv("PARSORT_OUT", ""),
		mode:         getenv("PARSORT_MODE", modeBoth),
		dbPath:       getenv("PARSORT_DB", ""),
		promTextfile: getenv("PARSORT_PROM_TEXTFILE", ""),
		logLevel:     getenv("PARSORT_LOG_LEVEL", "info"),
		logFormat:    getenv("PARSORT_LOG_FORMAT", "text"),
	}

	var err error
	if cfg.size, err = getenvInt("PARSORT_SIZE", 10000); err != nil {
		return cfg, err
	}
	if cfg.minValue, err = getenvInt("PARSORT_MIN", 0); err != nil {
		return cfg, err
	}
	if cfg.maxValue, err = getenvInt("PARSORT_MAX", 100000); err != nil {
		return cfg, err
	}
	if cfg.threads, err = getenvInt("PARSORT_THREADS", 0); err != nil {
		return cfg, err
	}
	if cfg.seed, err = getenvInt64("PARSORT_SEED", 0); err != nil {
		return cfg, err
	}
	if cfg.memoryLimit, err = getenvInt64("PARSORT_MEMORY_LIMIT", 0); err != nil {
		return cfg, err
	}
	if cfg.trace, err = getenvBool("PARSORT_TRACE", false); err != nil {
		return cfg, err
	}
	if cfg.compare, err = getenvBool("PARSORT_COMPARE", false); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// run executes the configured sorts and writes their reports to stdout.
func run(ctx context.Context, cfg config, stdout, stderr io.Writer) error {
	logger, err := logging.New(stderr, cfg.logFormat, cfg.logLevel)
	if err != nil {
		return err
	}

	input, err := loadInput(cfg)
	if err != nil {
		return err
	}
	st := array.Describe(input)
	fmt.Fprintf(stdout, "Array: %d elements, min %d, max %d, %d bytes\n", st.Size, st.Min, st.Max, st.MemoryBytes)

	var store storage.Store
	if cfg.dbPath != "" {
		if store, err = storage.NewSQLiteStore(cfg.dbPath); err != nil {
			return fmt.Errorf("open history: %w", err)
		}
	} else {
		store = storage.NewMemoryStore()
	}
	defer store.Close()

	var collector metrics.Collector = metrics.NoopCollector{}
	var registry *prometheus.Registry
	if cfg.promTextfile != "" {
		registry = prometheus.NewRegistry()
		pc, err := metrics.NewPrometheusCollector(registry)
		if err != nil {
			return err
		}
		collector = pc
	}

	var tracer *trace.Emitter
	if cfg.trace {
		tracer = trace.New(stdout)
	}

	engine := coordinator.NewEngine(
		coordinator.WithLogger(logger.WithSize(len(input))),
		coordinator.WithTracer(tracer),
		coordinator.WithCollector(collector),
		coordinator.WithResources(resource.NewController(resource.Config{MemoryLimitBytes: cfg.memoryLimit})),
	)

	var modes []string
	switch cfg.mode {
	case modeBoth:
		modes = []string{modeSequential, modeParallel}
	default:
		modes = []string{cfg.mode}
	}

	var sorted []int
	for _, mode := range modes {
		data := slices.Clone(input)
		var m metrics.SortMetrics
		var runMode metrics.Mode

		fmt.Fprintf(stdout, "\n--- %s sort of %d elements ---\n", mode, len(data))
		switch mode {
		case modeSequential:
			runMode = metrics.ModeSequential
			m = engine.Sequential(ctx, data)
		case modeParallel:
			runMode = metrics.ModeParallel
			if m, err = engine.Parallel(ctx, data, cfg.threads); err != nil {
				return fmt.Errorf("parallel sort: %w", err)
			}
		}

		ok := array.IsSorted(data)
		fmt.Fprint(stdout, m.Report())
		fmt.Fprintf(stdout, "Sorted: %t\n", ok)
		if !ok {
			return fmt.Errorf("%s: %w", mode, errNotSorted)
		}

		if err := store.Put(storage.NewRun(mode, runMode, len(data), ok, m)); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		sorted = data
	}

	if cfg.compare {
		runs, err := store.List()
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		fmt.Fprintln(stdout)
		if err := report.Compare(stdout, runs); err != nil {
			return err
		}
	}

	if registry != nil {
		if err := prometheus.WriteToTextfile(cfg.promTextfile, registry); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	if cfg.outPath != "" {
		if err := array.SaveFile(cfg.outPath, sorted); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nSorted array saved to %s\n", cfg.outPath)
	}
	return nil
}

func loadInput(cfg config) ([]int, error) {
	if cfg.inPath != "" {
		return array.LoadFile(cfg.inPath)
	}
	return array.Generate(array.NewRNG(cfg.seed), cfg.size, cfg.minValue, cfg.maxValue), nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func getenvInt64(k string, def int64) (int64, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func getenvBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}

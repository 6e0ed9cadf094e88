// Package report renders comparison tables over recorded sort runs.
package report

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dreamware/parsort/internal/metrics"
	"github.com/dreamware/parsort/internal/storage"
)

// ErrNoRuns is returned when there is nothing to compare.
var ErrNoRuns = errors.New("no sort results to compare")

// Row is one table line.
type Row struct {
	Run           storage.Run
	PercentOfBest float64 // execution time relative to the fastest run
}

// Speedup compares a multi-threaded parallel run against a single-thread baseline.
type Speedup struct {
	Run        storage.Run
	Baseline   storage.Run
	Speedup    float64 // baseline time / run time
	Efficiency float64 // speedup / threads * 100
	Defined    bool    // false when the run took no measurable time
}

// Summary is the computed content of a comparison.
type Summary struct {
	Rows     []Row
	Fastest  storage.Run
	Slowest  storage.Run
	Speedups []Speedup
}

// Summarize computes the comparison for runs in the given order.
func Summarize(runs []storage.Run) (Summary, error) {
	if len(runs) == 0 {
		return Summary{}, ErrNoRuns
	}

	fastest, slowest := runs[0], runs[0]
	for _, r := range runs[1:] {
		if r.Metrics.ExecutionTimeMs < fastest.Metrics.ExecutionTimeMs {
			fastest = r
		}
		if r.Metrics.ExecutionTimeMs > slowest.Metrics.ExecutionTimeMs {
			slowest = r
		}
	}

	s := Summary{Fastest: fastest, Slowest: slowest, Rows: make([]Row, 0, len(runs))}
	best := fastest.Metrics.ExecutionTimeMs
	for _, r := range runs {
		pct := 100.0
		if best > 0 {
			pct = r.Metrics.ExecutionTimeMs / best * 100
		}
		s.Rows = append(s.Rows, Row{Run: r, PercentOfBest: pct})
	}

	baseline, ok := findBaseline(runs)
	if !ok {
		return s, nil
	}
	for _, r := range runs {
		if r.Mode != metrics.ModeParallel || r.Threads <= 1 {
			continue
		}
		sp := Speedup{Run: r, Baseline: baseline}
		if r.Metrics.ExecutionTimeMs > 0 {
			sp.Speedup = baseline.Metrics.ExecutionTimeMs / r.Metrics.ExecutionTimeMs
			sp.Efficiency = sp.Speedup / float64(r.Threads) * 100
			sp.Defined = true
		}
		s.Speedups = append(s.Speedups, sp)
	}
	return s, nil
}

// findBaseline prefers a sequential run, then a one-thread parallel run
func findBaseline(runs []storage.Run) (storage.Run, bool) {
	for _, r := range runs {
		if r.Mode == metrics.ModeSequential {
			return r, true
		}
	}
	for _, r := range runs {
		if r.Mode == metrics.ModeParallel && r.Threads == 1 {
			return r, true
		}
	}
	return storage.Run{}, false
}

// Compare writes a comparison table of runs to w.
//
// Output format:
//
//	=== Sort comparison ===
//	NAME        THREADS  TIME (ms)  % OF BEST  COMPARISONS  SWAPS
//	sequential  1        120.000    400.0      499500       251033
//	parallel    4        30.000     100.0      124750       63110
//
//	Fastest: parallel (30.000 ms)
//	Slowest: sequential (120.000 ms)
//	parallel (4 threads): speedup 4.00x over sequential, efficiency 100.0%
func Compare(w io.Writer, runs []storage.Run) error {
	s, err := Summarize(runs)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "=== Sort comparison ==="); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTHREADS\tTIME (ms)\t% OF BEST\tCOMPARISONS\tSWAPS")
	for _, row := range s.Rows {
		r := row.Run
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.1f\t%d\t%d\n",
			r.Name, r.Threads, r.Metrics.ExecutionTimeMs, row.PercentOfBest,
			r.Metrics.Comparisons, r.Metrics.Swaps)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nFastest: %s (%.3f ms)\nSlowest: %s (%.3f ms)\n",
		s.Fastest.Name, s.Fastest.Metrics.ExecutionTimeMs,
		s.Slowest.Name, s.Slowest.Metrics.ExecutionTimeMs); err != nil {
		return err
	}

	for _, sp := range s.Speedups {
		var err error
		if sp.Defined {
			_, err = fmt.Fprintf(w, "%s (%d threads): speedup %.2fx over %s, efficiency %.1f%%\n",
				sp.Run.Name, sp.Run.Threads, sp.Speedup, sp.Baseline.Name, sp.Efficiency)
		} else {
			_, err = fmt.Fprintf(w, "%s (%d threads): speedup n/a over %s\n",
				sp.Run.Name, sp.Run.Threads, sp.Baseline.Name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

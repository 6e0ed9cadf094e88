// Package storage records completed sort runs so that results from different
// modes, thread counts and sessions can be compared later.
//
// # Overview
//
// A Run pairs a SortMetrics with the context it was produced in: display
// name, mode, effective thread count, array size, whether the output was
// verified sorted, and when it was recorded. Every run gets a UUID.
//
// # Backends
//
// MemoryStore: process-local history
//   - Map keyed by run ID behind a sync.RWMutex
//   - Copies runs on the way in and out, so callers cannot mutate the history
//   - Lost when the process exits
//
// SQLiteStore: persistent history
//   - One sort_runs table, created on open if missing
//   - WAL journal mode for concurrent readers
//   - Extra annotations stored as a JSON object
//   - ":memory:" gives a private database for tests
//
// # Concurrency Model
//
// All Store implementations are safe for concurrent use. MemoryStore uses
// RLock for Get/List/Stats and Lock for Put/Delete. SQLiteStore holds a single
// connection, so statements are serialized by database/sql.
//
// # Usage Example
//
//	store, err := storage.NewSQLiteStore("runs.db")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	m := engine.Sequential(ctx, data)
//	run := storage.NewRun("sequential", metrics.ModeSequential, len(data), array.IsSorted(data), m)
//	if err := store.Put(run); err != nil {
//	    return err
//	}
//
//	runs, err := store.List()
//
// # See Also
//
// Related packages:
//   - internal/report: comparison table over recorded runs
//   - internal/metrics: the SortMetrics record stored in every run
package storage

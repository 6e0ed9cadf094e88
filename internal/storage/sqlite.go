package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dreamware/parsort/internal/metrics"
)

const schema = `
CREATE TABLE IF NOT EXISTS sort_runs (
	run_id        TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	mode          TEXT NOT NULL,
	threads       INTEGER NOT NULL,
	size          INTEGER NOT NULL,
	sorted        INTEGER NOT NULL,
	comparisons   INTEGER NOT NULL,
	swaps         INTEGER NOT NULL,
	execution_ms  REAL NOT NULL,
	memory_bytes  INTEGER NOT NULL,
	extra_json    TEXT,
	created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS sort_runs_created_at ON sort_runs (created_at);
`

// timeLayout has fixed-width fractional seconds so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const selectColumns = `run_id, name, mode, threads, size, sorted, comparisons, swaps,
	execution_ms, memory_bytes, extra_json, created_at`

// SQLiteStore implements Store on a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database and runs migrations.
// Use ":memory:" for a private in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Put records a run, replacing any run with the same ID.
func (s *SQLiteStore) Put(run Run) error {
	if run.ID == "" {
		return errors.New("run ID cannot be empty")
	}
	extra, err := json.Marshal(run.Metrics.Extra)
	if err != nil {
		return fmt.Errorf("marshal extra: %w", err)
	}
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO sort_runs (`+selectColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Name,
		string(run.Mode),
		run.Threads,
		run.Size,
		boolToInt(run.Sorted),
		run.Metrics.Comparisons,
		run.Metrics.Swaps,
		run.Metrics.ExecutionTimeMs,
		int64(run.Metrics.MemoryUsageBytes),
		string(extra),
		createdAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *SQLiteStore) Get(id string) (Run, error) {
	row := s.db.QueryRow(`SELECT `+selectColumns+` FROM sort_runs WHERE run_id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// Delete removes a run. Deleting a missing ID is not an error.
func (s *SQLiteStore) Delete(id string) error {
	if _, err := s.db.Exec(`DELETE FROM sort_runs WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	return nil
}

// List returns all runs, oldest first.
func (s *SQLiteStore) List() ([]Run, error) {
	rows, err := s.db.Query(`SELECT ` + selectColumns + ` FROM sort_runs ORDER BY created_at, run_id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Stats returns storage statistics.
func (s *SQLiteStore) Stats() (StoreStats, error) {
	var stats StoreStats
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(comparisons), 0), COALESCE(SUM(swaps), 0) FROM sort_runs`,
	).Scan(&stats.Runs, &stats.Comparisons, &stats.Swaps)
	if err != nil {
		return StoreStats{}, fmt.Errorf("stats: %w", err)
	}
	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run        Run
		mode       string
		sorted     int
		memory     int64
		extraJSON  sql.NullString
		createdStr string
	)
	err := sc.Scan(
		&run.ID, &run.Name, &mode, &run.Threads, &run.Size, &sorted,
		&run.Metrics.Comparisons, &run.Metrics.Swaps, &run.Metrics.ExecutionTimeMs,
		&memory, &extraJSON, &createdStr,
	)
	if err != nil {
		return Run{}, err
	}

	run.Mode = metrics.Mode(mode)
	run.Sorted = sorted != 0
	run.Metrics.MemoryUsageBytes = uint64(memory)
	run.Metrics.Extra = make(map[string]string)
	if extraJSON.Valid && extraJSON.String != "" {
		if err := json.Unmarshal([]byte(extraJSON.String), &run.Metrics.Extra); err != nil {
			return Run{}, fmt.Errorf("unmarshal extra: %w", err)
		}
		if run.Metrics.Extra == nil {
			run.Metrics.Extra = make(map[string]string)
		}
	}
	run.CreatedAt, err = time.Parse(timeLayout, createdStr)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at: %w", err)
	}
	return run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package storage

import (
	"errors"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dreamware/parsort/internal/metrics"
)

// ErrRunNotFound is returned when a run ID doesn't exist in the store
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded sort call
type Run struct {
	CreatedAt time.Time           // When the run was recorded (UTC)
	Metrics   metrics.SortMetrics // Final metrics of the call
	ID        string              // Unique run identifier (UUID)
	Name      string              // Display label, e.g. "sequential"
	Mode      metrics.Mode        // Which sort path produced the metrics
	Threads   int                 // Effective thread count
	Size      int                 // Number of sorted elements
	Sorted    bool                // Whether the output verified as sorted
}

// NewRun creates a Run with a fresh ID and timestamp.
// Threads is taken from the numThreads annotation and defaults to 1.
func NewRun(name string, mode metrics.Mode, size int, sorted bool, m metrics.SortMetrics) Run {
	threads, ok := m.NumThreads()
	if !ok {
		threads = 1
	}
	return Run{
		ID:        uuid.New().String(),
		Name:      name,
		Mode:      mode,
		Threads:   threads,
		Size:      size,
		Sorted:    sorted,
		Metrics:   m,
		CreatedAt: time.Now().UTC(),
	}
}

// clone returns a copy of r that shares no map with it
func (r Run) clone() Run {
	r.Metrics.Extra = maps.Clone(r.Metrics.Extra)
	if r.Metrics.Extra == nil {
		r.Metrics.Extra = make(map[string]string)
	}
	return r
}

// Store defines the interface for run history storage
// All implementations must be thread-safe for concurrent access
type Store interface {
	// Put records a run
	// Overwrites any existing run with the same ID
	Put(run Run) error

	// Get retrieves a run by ID
	// Returns ErrRunNotFound if the ID doesn't exist
	Get(id string) (Run, error)

	// Delete removes a run
	// No error if the ID doesn't exist
	Delete(id string) error

	// List returns all runs ordered by creation time, oldest first
	List() ([]Run, error)

	// Stats returns storage statistics
	Stats() (StoreStats, error)

	// Close releases any underlying resources
	Close() error
}

// StoreStats contains statistics about the store
type StoreStats struct {
	Runs        int   // Number of recorded runs
	Comparisons int64 // Sum of comparisons over all runs
	Swaps       int64 // Sum of swaps over all runs
}

// MemoryStore implements Store with in-memory storage
// Uses sync.RWMutex for thread-safe concurrent access
type MemoryStore struct {
	mu   sync.RWMutex   // Protects concurrent access
	runs map[string]Run // Run storage keyed by ID
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string]Run),
	}
}

// Put records a run
// Makes a copy of the run to prevent external modification
func (m *MemoryStore) Put(run Run) error {
	if run.ID == "" {
		return errors.New("run ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs[run.ID] = run.clone()
	return nil
}

// Get retrieves a run by ID
// Returns a copy of the run to prevent external modification
func (m *MemoryStore) Get(id string) (Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[id]
	if !exists {
		return Run{}, ErrRunNotFound
	}
	return run.clone(), nil
}

// Delete removes a run
// No error if the ID doesn't exist (idempotent)
func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.runs, id)
	return nil
}

// List returns copies of all runs, oldest first
func (m *MemoryStore) List() ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]Run, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run.clone())
	}
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].CreatedAt.Before(runs[j].CreatedAt)
	})
	return runs, nil
}

// Stats returns storage statistics
func (m *MemoryStore) Stats() (StoreStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := StoreStats{Runs: len(m.runs)}
	for _, run := range m.runs {
		stats.Comparisons += run.Metrics.Comparisons
		stats.Swaps += run.Metrics.Swaps
	}
	return stats, nil
}

// Close is a no-op for the in-memory store
func (m *MemoryStore) Close() error {
	return nil
}

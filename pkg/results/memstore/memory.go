// Package memstore is an in-memory results.Store for tests and dry runs.
package memstore

import (
	"context"
	"crypto/rand"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/CasperDN/flix-datalog-rewrite/pkg/results"
)

// Store is an in-memory implementation of results.Store.
type Store struct {
	mu      sync.RWMutex
	entropy *ulid.MonotonicEntropy
	runs    map[string]results.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		entropy: ulid.Monotonic(rand.Reader, 0),
		runs:    make(map[string]results.Run),
	}
}

// Close implements results.Store.
func (s *Store) Close() error { return nil }

// SaveRun stores the metrics under a fresh ULID.
func (s *Store) SaveRun(ctx context.Context, desc string, metrics map[string]float64) (results.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := results.Run{
		ID:      ulid.MustNew(ulid.Now(), s.entropy).String(),
		Desc:    desc,
		When:    time.Now().UTC(),
		Metrics: copyMetrics(metrics),
	}
	s.runs[run.ID] = run
	return copyRun(run), nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (results.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if run, ok := s.runs[id]; ok {
		return copyRun(run), true, nil
	}
	return results.Run{}, false, nil
}

// ListRuns returns runs newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]results.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]results.Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, copyRun(run))
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].When.Equal(runs[j].When) {
			return runs[i].ID > runs[j].ID
		}
		return runs[i].When.After(runs[j].When)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func copyRun(run results.Run) results.Run {
	run.Metrics = copyMetrics(run.Metrics)
	return run
}

func copyMetrics(metrics map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(metrics))
	for k, v := range metrics {
		out[k] = v
	}
	return out
}

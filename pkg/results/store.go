// Package results persists aggregated benchmark runs so repeated
// experiments can be compared and charted later.
package results

import (
	"context"
	"time"
)

// Run is one aggregated benchmark run: a ULID minted at save time, the
// block description it came from, and its averaged metrics.
type Run struct {
	ID      string
	Desc    string
	When    time.Time
	Metrics map[string]float64
}

// Store persists benchmark runs.
type Store interface {
	Close() error

	// SaveRun stores the metrics under a fresh run ID and returns the
	// stored run.
	SaveRun(ctx context.Context, desc string, metrics map[string]float64) (Run, error)

	// GetRun returns a run by ID.
	GetRun(ctx context.Context, id string) (Run, bool, error)

	// ListRuns returns the most recent runs, newest first. A non-positive
	// limit returns all runs.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

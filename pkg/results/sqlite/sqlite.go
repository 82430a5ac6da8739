// Package sqlite implements results.Store on a SQLite database.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/CasperDN/flix-datalog-rewrite/pkg/results"
)

type sqliteStore struct {
	db      *sql.DB
	entropy *ulid.MonotonicEntropy
}

// Open opens (creating if needed) a SQLite-backed run store with WAL mode
// enabled.
func Open(ctx context.Context, path string) (results.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	description TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_metrics (
	run_id TEXT NOT NULL,
	metric TEXT NOT NULL,
	value REAL NOT NULL,
	UNIQUE(run_id, metric),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *sqliteStore) SaveRun(ctx context.Context, desc string, metrics map[string]float64) (results.Run, error) {
	run := results.Run{
		ID:      ulid.MustNew(ulid.Now(), s.entropy).String(),
		Desc:    desc,
		When:    time.Now().UTC(),
		Metrics: make(map[string]float64, len(metrics)),
	}
	for k, v := range metrics {
		run.Metrics[k] = v
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return results.Run{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, description, created_at) VALUES (?, ?, ?)",
		run.ID, run.Desc, run.When.Format(time.RFC3339Nano)); err != nil {
		return results.Run{}, fmt.Errorf("insert run: %w", err)
	}

	for metric, value := range run.Metrics {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO run_metrics (run_id, metric, value) VALUES (?, ?, ?)",
			run.ID, metric, value); err != nil {
			return results.Run{}, fmt.Errorf("insert metric %s: %w", metric, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return results.Run{}, err
	}
	return run, nil
}

func (s *sqliteStore) GetRun(ctx context.Context, id string) (results.Run, bool, error) {
	var run results.Run
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, description, created_at FROM runs WHERE id = ?", id).
		Scan(&run.ID, &run.Desc, &createdAt)
	if err == sql.ErrNoRows {
		return results.Run{}, false, nil
	}
	if err != nil {
		return results.Run{}, false, err
	}

	run.When, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return results.Run{}, false, fmt.Errorf("parse created_at: %w", err)
	}

	run.Metrics, err = s.loadMetrics(ctx, id)
	if err != nil {
		return results.Run{}, false, err
	}
	return run, true, nil
}

func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]results.Run, error) {
	query := "SELECT id, description, created_at FROM runs ORDER BY created_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []results.Run
	for rows.Next() {
		var run results.Run
		var createdAt string
		if err := rows.Scan(&run.ID, &run.Desc, &createdAt); err != nil {
			return nil, err
		}
		if run.When, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		if runs[i].Metrics, err = s.loadMetrics(ctx, runs[i].ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *sqliteStore) loadMetrics(ctx context.Context, runID string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT metric, value FROM run_metrics WHERE run_id = ?", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := make(map[string]float64)
	for rows.Next() {
		var metric string
		var value float64
		if err := rows.Scan(&metric, &value); err != nil {
			return nil, err
		}
		metrics[metric] = value
	}
	return metrics, rows.Err()
}

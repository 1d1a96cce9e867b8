// Package history persists sync run outcomes to SQLite.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vmunix/collectarr/internal/collections"
)

// ErrNotFound indicates the requested run doesn't exist.
var ErrNotFound = errors.New("not found")

// Store reads and writes run history.
type Store struct {
	db *sql.DB
}

// NewStore creates a new history store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Run is a persisted sync run.
type Run struct {
	ID          int64
	StartedAt   time.Time
	FinishedAt  time.Time
	DryRun      bool
	Collections int
	Failed      int
}

// RunCollection is one collection's outcome within a run.
type RunCollection struct {
	ID       int64
	RunID    int64
	Name     string
	Status   string
	Created  bool
	Desired  int
	Observed int
	Adds     int
	Removes  int
	Error    string
}

// RecordRun persists a report and its per-collection results in one
// transaction. Returns the new run's ID.
func (s *Store) RecordRun(report *collections.Report) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO runs (started_at, finished_at, dry_run, collections, failed)
		VALUES (?, ?, ?, ?, ?)`,
		report.Started, report.Finished, report.DryRun, len(report.Results), report.Failed(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	for _, res := range report.Results {
		errText := ""
		if res.Err != nil {
			errText = res.Err.Error()
		}
		_, err := tx.Exec(`
			INSERT INTO run_collections (run_id, name, status, created, desired, observed, adds, removes, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, res.Name, string(res.Status), res.Created, res.Desired, res.Observed, res.Adds, res.Removes, errText,
		)
		if err != nil {
			return 0, fmt.Errorf("insert result for %q: %w", res.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, started_at, finished_at, dry_run, collections, failed
		FROM runs
		ORDER BY id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.DryRun, &r.Collections, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Run returns a single run by ID.
// Returns ErrNotFound if the run does not exist.
func (s *Store) Run(id int64) (*Run, error) {
	var r Run
	err := s.db.QueryRow(`
		SELECT id, started_at, finished_at, dry_run, collections, failed
		FROM runs
		WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.DryRun, &r.Collections, &r.Failed)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query run %d: %w", id, err)
	}
	return &r, nil
}

// RunCollections returns a run's per-collection outcomes in recorded order.
func (s *Store) RunCollections(runID int64) ([]RunCollection, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, name, status, created, desired, observed, adds, removes, error
		FROM run_collections
		WHERE run_id = ?
		ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run collections: %w", err)
	}
	defer rows.Close()

	var results []RunCollection
	for rows.Next() {
		var rc RunCollection
		if err := rows.Scan(&rc.ID, &rc.RunID, &rc.Name, &rc.Status, &rc.Created, &rc.Desired, &rc.Observed, &rc.Adds, &rc.Removes, &rc.Error); err != nil {
			return nil, fmt.Errorf("scan run collection: %w", err)
		}
		results = append(results, rc)
	}
	return results, rows.Err()
}

// Prune removes runs older than the given duration.
func (s *Store) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		DELETE FROM run_collections
		WHERE run_id IN (SELECT id FROM runs WHERE started_at < ?)`,
		cutoff,
	); err != nil {
		return 0, fmt.Errorf("prune run collections: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	pruned, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return pruned, nil
}

// SPDX-License-Identifier: MIT

// Package history provides SQLite persistence for completed benchmark runs.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/airchem/gcbench/internal/runner"
	_ "modernc.org/sqlite" // SQLite driver (pure Go, no CGO)
)

// Run is one recorded benchmark run.
type Run struct {
	ID          string
	BmkType     string
	ConfigPath  string
	Status      string
	DryRun      bool
	StartedAt   time.Time
	FinishedAt  time.Time
	TasksTotal  int
	TasksFailed int
}

// TaskRecord is one recorded task of a run.
type TaskRecord struct {
	RunID      string
	TaskID     string
	Comparison string
	Output     string
	Status     string
	Duration   time.Duration
	Error      string
}

// Store provides SQLite persistence for run history.
type Store struct {
	db *sql.DB
}

// NewStore initializes a new SQLite store and runs migrations.
// WAL mode plus busy_timeout keeps concurrent readers from tripping over the
// single writer.
func NewStore(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database schema migrations.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		bmk_type TEXT NOT NULL,
		config_path TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL CHECK(status IN ('success', 'failure')),
		dry_run INTEGER NOT NULL DEFAULT 0,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		tasks_total INTEGER NOT NULL DEFAULT 0,
		tasks_failed INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS run_tasks (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		task_id TEXT NOT NULL,
		comparison TEXT NOT NULL,
		output TEXT NOT NULL,
		status TEXT NOT NULL CHECK(status IN ('success', 'failure', 'skipped')),
		duration_ms INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, task_id)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_run_tasks_run ON run_tasks(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// RecordRun persists a run result and its task outcomes in one transaction.
func (s *Store) RecordRun(ctx context.Context, configPath string, res runner.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	dry := 0
	if res.DryRun {
		dry = 1
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO runs (id, bmk_type, config_path, status, dry_run, started_at, finished_at, tasks_total, tasks_failed)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, res.BmkType, configPath, res.Status, dry,
		res.StartTime.UTC().Format(time.RFC3339Nano),
		res.EndTime.UTC().Format(time.RFC3339Nano),
		len(res.Tasks), res.Failed())
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, t := range res.Tasks {
		_, err = tx.ExecContext(ctx, `
		INSERT INTO run_tasks (run_id, task_id, comparison, output, status, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
			res.RunID, t.TaskID, t.Comparison, t.Output, t.Status,
			t.Duration.Milliseconds(), t.Error)
		if err != nil {
			return fmt.Errorf("insert task %s: %w", t.TaskID, err)
		}
	}

	return tx.Commit()
}

// ListRuns retrieves the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
	SELECT id, bmk_type, config_path, status, dry_run, started_at, finished_at, tasks_total, tasks_failed
	FROM runs
	ORDER BY started_at DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var dry int
		var started, finished string

		if err := rows.Scan(&r.ID, &r.BmkType, &r.ConfigPath, &r.Status, &dry,
			&started, &finished, &r.TasksTotal, &r.TasksFailed); err != nil {
			return nil, err
		}
		r.DryRun = dry != 0
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// TasksForRun retrieves the task records of one run.
func (s *Store) TasksForRun(ctx context.Context, runID string) ([]TaskRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT run_id, task_id, comparison, output, status, duration_ms, error
	FROM run_tasks
	WHERE run_id = ?
	ORDER BY task_id`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tasks []TaskRecord
	for rows.Next() {
		var t TaskRecord
		var ms int64
		if err := rows.Scan(&t.RunID, &t.TaskID, &t.Comparison, &t.Output, &t.Status, &ms, &t.Error); err != nil {
			return nil, err
		}
		t.Duration = time.Duration(ms) * time.Millisecond
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

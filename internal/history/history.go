// Package history records completed invocations in a local SQLite
// database so past runs can be inspected after the process exits.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Invocation states.
const (
	StateCompleted = "completed"
	StateFailed    = "failed"
)

// Record is one completed invocation.
type Record struct {
	ID         int64
	RunID      string
	Component  string
	State      string
	InputFile  string
	OutputFile string
	StartedAt  time.Time
	Duration   time.Duration
	Error      string
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS invocations (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	component   TEXT NOT NULL,
	state       TEXT NOT NULL,
	input_file  TEXT NOT NULL,
	output_file TEXT NOT NULL,
	started_at  INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	error       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_invocations_started ON invocations(started_at);
`

// Store is a SQLite-backed invocation log. Safe for concurrent use; the
// database serializes writers.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default history database path.
func DefaultPath() string {
	return filepath.Join(".funcbridge", "history.db")
}

// Open creates or opens the history database at path, applying the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("prepare history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one invocation.
func (s *Store) Append(r *Record) error {
	_, err := s.db.Exec(
		`INSERT INTO invocations (run_id, component, state, input_file, output_file, started_at, duration_ms, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Component, r.State, r.InputFile, r.OutputFile,
		r.StartedAt.UnixMilli(), r.Duration.Milliseconds(), r.Error,
	)
	if err != nil {
		return fmt.Errorf("append invocation: %w", err)
	}
	return nil
}

// Recent returns the most recent invocations, newest first.
func (s *Store) Recent(limit int) ([]*Record, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, component, state, input_file, output_file, started_at, duration_ms, error
		 FROM invocations ORDER BY started_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*Record
	for rows.Next() {
		var r Record
		var startedMs, durMs int64
		if err := rows.Scan(&r.ID, &r.RunID, &r.Component, &r.State, &r.InputFile, &r.OutputFile, &startedMs, &durMs, &r.Error); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		r.StartedAt = time.UnixMilli(startedMs)
		r.Duration = time.Duration(durMs) * time.Millisecond
		records = append(records, &r)
	}
	return records, rows.Err()
}

// Count returns the number of recorded invocations.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM invocations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invocations: %w", err)
	}
	return n, nil
}

// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/history.go
// Summary: SQLite-backed store of run-mode transcripts.

package history

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Increment when schema changes require migration.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at INTEGER NOT NULL,      -- UnixNano
    command TEXT NOT NULL,
    raw TEXT NOT NULL,
    formatted TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`

// Run is one recorded command invocation.
type Run struct {
	ID        int64
	StartedAt time.Time
	Command   string
	Raw       string
	Formatted string
}

// Store persists run transcripts.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := dbPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func checkSchemaVersion(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if err == sql.ErrNoRows {
		current = 0
	} else if err != nil {
		current = 0
	}

	if current == schemaVersion {
		return nil
	}
	if current != 0 {
		log.Printf("[HISTORY] Migrating schema from version %d to %d", current, schemaVersion)
	}
	if _, err := db.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return nil
}

// Add records a run and returns its id.
func (s *Store) Add(run Run) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO runs (started_at, command, raw, formatted) VALUES (?, ?, ?, ?)",
		run.StartedAt.UnixNano(), run.Command, run.Raw, run.Formatted,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return res.LastInsertId()
}

// Get returns the run with the given id.
func (s *Store) Get(id int64) (*Run, error) {
	row := s.db.QueryRow(
		"SELECT id, started_at, command, raw, formatted FROM runs WHERE id = ?", id)
	return scanRun(row)
}

// List returns up to limit runs, newest first.
func (s *Store) List(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		"SELECT id, started_at, command, raw, formatted FROM runs ORDER BY started_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()
	return collectRuns(rows)
}

// Search returns runs whose command or output contains the query,
// newest first. LIKE wildcards in the query are matched literally.
func (s *Store) Search(query string, limit int) ([]Run, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := s.db.Query(
		`SELECT id, started_at, command, raw, formatted FROM runs
		 WHERE command LIKE ? ESCAPE '\' OR formatted LIKE ? ESCAPE '\'
		 ORDER BY started_at DESC LIMIT ?`,
		pattern, pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search runs: %w", err)
	}
	defer rows.Close()
	return collectRuns(rows)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func escapeLike(q string) string {
	q = strings.ReplaceAll(q, `\`, `\\`)
	q = strings.ReplaceAll(q, "%", `\%`)
	q = strings.ReplaceAll(q, "_", `\_`)
	return q
}

func scanRun(row *sql.Row) (*Run, error) {
	var r Run
	var ts int64
	if err := row.Scan(&r.ID, &ts, &r.Command, &r.Raw, &r.Formatted); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run not found")
		}
		return nil, fmt.Errorf("failed to read run: %w", err)
	}
	r.StartedAt = time.Unix(0, ts)
	return &r, nil
}

func collectRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var ts int64
		if err := rows.Scan(&r.ID, &ts, &r.Command, &r.Raw, &r.Formatted); err != nil {
			return nil, fmt.Errorf("failed to read run: %w", err)
		}
		r.StartedAt = time.Unix(0, ts)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

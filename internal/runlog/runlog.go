// Package runlog records one row per CLI harness invocation: which problem
// ran, the expression found (if any), wall time, and how many
// counterexamples the oracle produced along the way. Entries are persisted
// to a SQLite database via the pure-Go modernc.org/sqlite driver — no cgo,
// so the CLI harness stays a single static binary — falling back to a
// newline-delimited JSON file when the log path doesn't look like a
// database file, so a quick `cat` still works for casual use.
package runlog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one completed run record.
type Entry struct {
	RunID           string    `json:"run_id"`
	ProblemPath     string    `json:"problem_path"`
	Expr            string    `json:"expr"`
	Found           bool      `json:"found"`
	WallTime        time.Duration `json:"wall_time_ns"`
	Counterexamples int       `json:"counterexamples"`
	Timestamp       time.Time `json:"timestamp"`
}

// Log appends run entries to a backing store, either a SQLite database or
// a newline-delimited JSON file.
type Log struct {
	db       *sql.DB
	jsonPath string
}

// Open opens (creating if necessary) the run log at path. A path ending in
// ".db" or ".sqlite" is treated as a SQLite database; anything else falls
// back to the JSON-lines format.
func Open(path string) (*Log, error) {
	if strings.HasSuffix(path, ".db") || strings.HasSuffix(path, ".sqlite") {
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, fmt.Errorf("runlog: opening %s: %w", path, err)
		}
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("runlog: initializing schema: %w", err)
		}
		return &Log{db: db}, nil
	}
	return &Log{jsonPath: path}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id           TEXT PRIMARY KEY,
	problem_path     TEXT NOT NULL,
	expr             TEXT NOT NULL,
	found            INTEGER NOT NULL,
	wall_time_ns     INTEGER NOT NULL,
	counterexamples  INTEGER NOT NULL,
	ts               TEXT NOT NULL
);`

// NewRunID mints a fresh run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// Append records entry.
func (l *Log) Append(entry Entry) error {
	if l.db != nil {
		_, err := l.db.Exec(
			`INSERT INTO runs (run_id, problem_path, expr, found, wall_time_ns, counterexamples, ts)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			entry.RunID, entry.ProblemPath, entry.Expr, entry.Found,
			entry.WallTime.Nanoseconds(), entry.Counterexamples, entry.Timestamp.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("runlog: inserting run %s: %w", entry.RunID, err)
		}
		return nil
	}

	f, err := os.OpenFile(l.jsonPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("runlog: opening %s: %w", l.jsonPath, err)
	}
	defer f.Close()
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("runlog: encoding run %s: %w", entry.RunID, err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("runlog: writing %s: %w", l.jsonPath, err)
	}
	return nil
}

// Recent returns up to limit most recent entries, newest first. Only
// implemented for the SQLite backend: the JSON-lines fallback is meant for
// casual external inspection, not programmatic replay.
func (l *Log) Recent(limit int) ([]Entry, error) {
	if l.db == nil {
		return nil, fmt.Errorf("runlog: Recent requires a SQLite-backed log")
	}
	rows, err := l.db.Query(
		`SELECT run_id, problem_path, expr, found, wall_time_ns, counterexamples, ts
		 FROM runs ORDER BY ts DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("runlog: querying recent runs: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var wallNS int64
		var ts string
		if err := rows.Scan(&e.RunID, &e.ProblemPath, &e.Expr, &e.Found, &wallNS, &e.Counterexamples, &ts); err != nil {
			return nil, fmt.Errorf("runlog: scanning row: %w", err)
		}
		e.WallTime = time.Duration(wallNS)
		e.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the backing SQLite connection, if any.
func (l *Log) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Package journal persists a per-run history of executed commands and
// their outcomes to a local sqlite database.
//
// The journal is an optional subsystem: the server runs fine without it,
// and all methods are nil-receiver safe so callers never branch on its
// presence. Its purpose is post-session forensics: when the upstream
// agent built a wrong model, the journal shows exactly which commands ran
// and which faults came back.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Injectable for tests.
var (
	timeNow = time.Now
	openDB  = func(path string) (*sql.DB, error) { return sql.Open("sqlite", path) }
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	started_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS commands (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     TEXT NOT NULL REFERENCES runs(id),
	at         TEXT NOT NULL,
	command    TEXT NOT NULL,
	outcome    TEXT NOT NULL,
	elapsed_ms INTEGER NOT NULL,
	detail     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_commands_run ON commands(run_id, id);
`

// Entry is one journaled command.
type Entry struct {
	Run     string
	At      time.Time
	Command string
	Outcome string
	Elapsed time.Duration
	Detail  string
}

// Journal is a handle to the command history of one server run.
type Journal struct {
	db  *sql.DB
	run string
}

// Open creates or opens the database at path and registers a new run.
func Open(path string) (*Journal, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: init schema: %w", err)
	}
	run := uuid.NewString()
	_, err = db.Exec(`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		run, timeNow().UTC().Format(time.RFC3339))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: register run: %w", err)
	}
	return &Journal{db: db, run: run}, nil
}

// Run returns the identifier of the current run, or "" without a journal.
func (j *Journal) Run() string {
	if j == nil {
		return ""
	}
	return j.run
}

// Record appends one command outcome to the current run.
func (j *Journal) Record(command, outcome string, elapsed time.Duration, detail string) error {
	if j == nil {
		return nil
	}
	_, err := j.db.Exec(
		`INSERT INTO commands (run_id, at, command, outcome, elapsed_ms, detail) VALUES (?, ?, ?, ?, ?, ?)`,
		j.run, timeNow().UTC().Format(time.RFC3339), command, outcome, elapsed.Milliseconds(), detail)
	if err != nil {
		return fmt.Errorf("journal: record %s: %w", command, err)
	}
	return nil
}

// Recent returns up to limit entries of the current run, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if j == nil {
		return nil, nil
	}
	rows, err := j.db.Query(
		`SELECT at, command, outcome, elapsed_ms, detail FROM commands WHERE run_id = ? ORDER BY id DESC LIMIT ?`,
		j.run, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query: %w", err)
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var at string
		var ms int64
		if err := rows.Scan(&at, &e.Command, &e.Outcome, &ms, &e.Detail); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		e.Run = j.run
		e.Elapsed = time.Duration(ms) * time.Millisecond
		if t, err := time.Parse(time.RFC3339, at); err == nil {
			e.At = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	return j.db.Close()
}

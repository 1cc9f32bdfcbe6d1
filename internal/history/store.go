// Package history persists one row per attempted conversion in a local
// SQLite database. Store failures never fail a conversion; callers log and
// move on.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS conversions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    job_id TEXT NOT NULL,
    source TEXT NOT NULL,
    output TEXT NOT NULL,
    format TEXT NOT NULL,
    decoder TEXT NOT NULL DEFAULT '',
    quality REAL NOT NULL,
    status TEXT NOT NULL,
    detail TEXT NOT NULL DEFAULT '',
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversions_run ON conversions(run_id);
CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status);
`

// Store manages conversion history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Add inserts one finished conversion record.
func (s *Store) Add(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO conversions (
            run_id, job_id, source, output, format, decoder,
            quality, status, detail, started_at, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.JobID,
		rec.Source,
		rec.Output,
		rec.Format,
		rec.Decoder,
		rec.Quality,
		string(rec.Status),
		rec.Detail,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert conversion: %w", err)
	}
	return nil
}

// Recent returns the newest records, optionally only failures.
func (s *Store) Recent(ctx context.Context, limit int, failedOnly bool) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, run_id, job_id, source, output, format, decoder,
        quality, status, detail, started_at, finished_at
        FROM conversions`
	args := []any{}
	if failedOnly {
		query += ` WHERE status = ?`
		args = append(args, string(StatusFailed))
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var status, started, finished string
		if err := rows.Scan(
			&rec.ID, &rec.RunID, &rec.JobID, &rec.Source, &rec.Output,
			&rec.Format, &rec.Decoder, &rec.Quality, &status, &rec.Detail,
			&started, &finished,
		); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		rec.Status = Status(status)
		rec.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		rec.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversions: %w", err)
	}
	return records, nil
}

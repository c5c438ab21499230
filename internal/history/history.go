// Package history persists extraction run records in a local sqlite
// database so past runs can be listed and compared.
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

const dbName = "harsift.db"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source TEXT NOT NULL,
	created_at TEXT NOT NULL,
	raw_count INTEGER NOT NULL,
	kept_count INTEGER NOT NULL,
	include TEXT NOT NULL,
	exclude TEXT NOT NULL,
	custom TEXT NOT NULL
);`

// Run is one recorded extraction: the capture it came from, when it ran,
// how many raw candidates were scanned and kept, and the keyword lists
// in their pipe-delimited form.
type Run struct {
	ID        int64
	Source    string
	CreatedAt time.Time
	RawCount  int
	KeptCount int
	Include   string
	Exclude   string
	Custom    string
}

// Store is a handle to the history database.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates the history directory and database as needed and returns
// a ready Store.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	path := filepath.Join(dir, dbName)

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record inserts a run and returns it with its assigned ID. A zero
// CreatedAt is filled with the current time.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (source, created_at, raw_count, kept_count, include, exclude, custom)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Source, run.CreatedAt.Format(time.RFC3339),
		run.RawCount, run.KeptCount,
		run.Include, run.Exclude, run.Custom,
	)
	if err != nil {
		return Run{}, fmt.Errorf("recording run: %w", err)
	}

	run.ID, err = res.LastInsertId()
	if err != nil {
		return Run{}, fmt.Errorf("recording run: %w", err)
	}

	return run, nil
}

// List returns the most recent runs, newest first, capped at limit.
// A non-positive limit defaults to 20.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, created_at, raw_count, kept_count, include, exclude, custom
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run     Run
			created string
		)
		if err := rows.Scan(&run.ID, &run.Source, &created,
			&run.RawCount, &run.KeptCount,
			&run.Include, &run.Exclude, &run.Custom); err != nil {
			return nil, fmt.Errorf("reading run: %w", err)
		}
		if run.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("reading run %d: %w", run.ID, err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	return runs, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

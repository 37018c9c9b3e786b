// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest keeps a SQLite ledger of generation runs: when each run
// happened, which files it wrote, and what they contained. The ledger is
// history only; generation never consults it.
package manifest

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/resource-pdfs/pkg/types"
)

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Run is one recorded generation run.
type Run struct {
	ID        string
	StartedAt time.Time
	OutputDir string
	Generated int
	Failed    int
}

// Document is one file attempted by a run.
type Document struct {
	RunID      string
	TemplateID string
	Path       string
	Pages      int
	Bytes      int64

	// SHA256 is the hex digest of the written file; empty on failure.
	SHA256 string

	// DigestError explains a missing digest for a written file.
	DigestError string

	// Error is the failure message; empty on success.
	Error string
}

// Store manages the manifest database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the manifest database at path, creating its parent
// directory and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating manifest directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			generated INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			template_id TEXT NOT NULL,
			path TEXT NOT NULL,
			pages INTEGER NOT NULL,
			bytes INTEGER NOT NULL,
			sha256 TEXT,
			error TEXT,
			PRIMARY KEY (run_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a run summary and its documents in one transaction.
func (s *Store) Record(ctx context.Context, sum types.Summary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, output_dir, generated, failed) VALUES (?, ?, ?, ?, ?)`,
		sum.RunID, sum.StartedAt.UTC().Format(timeLayout), sum.OutputDir, sum.Generated, sum.Failed,
	); err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for i, r := range sum.Results {
		var digest, digestErr, errText sql.NullString
		if r.OK() {
			d, err := fileDigest(r.Path)
			if err != nil {
				digestErr = sql.NullString{String: err.Error(), Valid: true}
			} else {
				digest = sql.NullString{String: d, Valid: true}
			}
		} else {
			errText = sql.NullString{String: r.Err.Error(), Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (run_id, seq, template_id, path, pages, bytes, sha256, digest_error, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sum.RunID, i, r.TemplateID, r.Path, r.Pages, r.Bytes, digest, digestErr, errText,
		); err != nil {
			return fmt.Errorf("inserting document %s: %w", r.TemplateID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// Runs returns up to limit runs, newest first. A non-positive limit
// returns every run.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, output_dir, generated, failed FROM runs
		 ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.OutputDir, &r.Generated, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parsing start time of run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Documents returns the documents of a run in generation order.
func (s *Store) Documents(ctx context.Context, runID string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, template_id, path, pages, bytes, sha256, digest_error, error FROM documents
		 WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		var digest, digestErr, errText sql.NullString
		if err := rows.Scan(&d.RunID, &d.TemplateID, &d.Path, &d.Pages, &d.Bytes, &digest, &digestErr, &errText); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		d.SHA256 = digest.String
		d.DigestError = digestErr.String
		d.Error = errText.String
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus persists the accepted corpus, the review queue, the run
// ledger, and the ingestion checkpoint in one SQLite database.
//
// The corpus tables are append-only: the pipeline never mutates or
// deletes a stored record.
package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/litagent/pkg/types"
)

// FirstRunDate is the checkpoint assumed when none has been stored: the
// lower bound of the very first harvest window.
const FirstRunDate = "2010-01-01"

const checkpointKey = "last_run_date"

// recordColumns is the shared column list of the accepted and review
// tables, excluding the id primary key.
const recordColumns = `title, year, publisher, venue, authors, doi, url,
	doc_type, device_type, method, enabler_category,
	material_system, node_geometry, key_contribution,
	evidence_snippet, confidence, added_date, notes`

// Store manages the corpus SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the corpus database at cfg.Path and bootstraps
// the schema.
func Open(cfg types.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path not configured")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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
	recordTable := `(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		year INTEGER,
		publisher TEXT,
		venue TEXT,
		authors TEXT,
		doi TEXT,
		url TEXT,
		doc_type TEXT,
		device_type TEXT,
		method TEXT,
		enabler_category TEXT,
		material_system TEXT,
		node_geometry TEXT,
		key_contribution TEXT,
		evidence_snippet TEXT,
		confidence TEXT,
		added_date TEXT,
		notes TEXT
	)`

	statements := []string{
		`CREATE TABLE IF NOT EXISTS accepted ` + recordTable,
		`CREATE TABLE IF NOT EXISTS review ` + recordTable,
		`CREATE INDEX IF NOT EXISTS idx_accepted_doi ON accepted(doi)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_at TEXT NOT NULL,
			window TEXT,
			sources TEXT,
			candidates INTEGER,
			accepted INTEGER,
			review INTEGER,
			notes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func validTable(table string) error {
	switch table {
	case types.TableAccepted, types.TableReview:
		return nil
	}
	return fmt.Errorf("unknown corpus table %q", table)
}

// ReadAll returns every record in the named table in insertion order.
func (s *Store) ReadAll(ctx context.Context, table string) ([]types.Record, error) {
	if err := validTable(table); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, `+recordColumns+` FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", table, err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var (
			rec     types.Record
			id      int64
			year    sql.NullInt64
			authors string
		)
		err := rows.Scan(&id, &rec.Title, &year, &rec.Publisher, &rec.Venue,
			&authors, &rec.DOI, &rec.URL, &rec.DocType,
			&rec.DeviceType, &rec.Method, &rec.EnablerCategory,
			&rec.MaterialSystem, &rec.NodeGeometry, &rec.KeyContribution,
			&rec.EvidenceSnippet, &rec.Confidence, &rec.AddedDate, &rec.Notes)
		if err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		rec.ID = fmt.Sprintf("%d", id)
		if year.Valid {
			y := int(year.Int64)
			rec.Year = &y
		}
		if authors != "" {
			if err := json.Unmarshal([]byte(authors), &rec.Authors); err != nil {
				return nil, fmt.Errorf("decoding authors for %s/%d: %w", table, id, err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Append inserts the batch after the existing rows of the named table,
// transactionally. Callers must not pass an empty batch: persistence of
// nothing is a pipeline no-op that never reaches the store.
func (s *Store) Append(ctx context.Context, table string, records []types.Record) error {
	if err := validTable(table); err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("empty batch for table %s", table)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO `+table+` (`+recordColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		authorsJSON, err := json.Marshal(rec.Authors)
		if err != nil {
			return fmt.Errorf("encoding authors: %w", err)
		}
		var year any
		if rec.Year != nil {
			year = *rec.Year
		}
		_, err = stmt.ExecContext(ctx,
			rec.Title, year, rec.Publisher, rec.Venue, string(authorsJSON),
			rec.DOI, rec.URL, rec.DocType,
			rec.DeviceType, rec.Method, rec.EnablerCategory,
			rec.MaterialSystem, rec.NodeGeometry, rec.KeyContribution,
			rec.EvidenceSnippet, string(rec.Confidence), rec.AddedDate, rec.Notes)
		if err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Counts returns the row counts of the accepted and review tables.
func (s *Store) Counts(ctx context.Context) (accepted, review int, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT count(*) FROM accepted`).Scan(&accepted); err != nil {
		return 0, 0, fmt.Errorf("counting accepted: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, `SELECT count(*) FROM review`).Scan(&review); err != nil {
		return 0, 0, fmt.Errorf("counting review: %w", err)
	}
	return accepted, review, nil
}

// AppendRun appends one row to the run ledger.
func (s *Store) AppendRun(ctx context.Context, rec types.RunRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_at, window, sources, candidates, accepted, review, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp, rec.Window, rec.Sources,
		rec.Candidates, rec.Accepted, rec.Review, rec.Notes)
	if err != nil {
		return fmt.Errorf("appending run record: %w", err)
	}
	return nil
}

// Runs returns the most recent ledger rows, newest first, at most limit.
func (s *Store) Runs(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_at, window, sources, candidates, accepted, review, notes
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("reading run ledger: %w", err)
	}
	defer rows.Close()

	var records []types.RunRecord
	for rows.Next() {
		var rec types.RunRecord
		err := rows.Scan(&rec.Timestamp, &rec.Window, &rec.Sources,
			&rec.Candidates, &rec.Accepted, &rec.Review, &rec.Notes)
		if err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Checkpoint returns the stored last-run date, or FirstRunDate when no
// run has completed yet.
func (s *Store) Checkpoint(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM state WHERE key = ?`, checkpointKey).Scan(&value)
	if err == sql.ErrNoRows {
		return FirstRunDate, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading checkpoint: %w", err)
	}
	return value, nil
}

// SetCheckpoint stores date (YYYY-MM-DD) as the lower bound of the next
// run's window.
func (s *Store) SetCheckpoint(ctx context.Context, date string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		checkpointKey, date)
	if err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	return nil
}

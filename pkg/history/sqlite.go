// Package history persists chain invocation records.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Record represents a single chain invocation
type Record struct {
	ID           int64
	Chain        string
	Input        string
	Output       string
	Error        string
	FallbackUsed bool
	Timestamp    time.Time
}

// Store implements invocation history using a SQLite database
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite history store
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS invocations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chain TEXT NOT NULL,
			input TEXT NOT NULL,
			output TEXT,
			error TEXT,
			fallback_used INTEGER NOT NULL DEFAULT 0,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &Store{db: db}, nil
}

// Save stores an invocation record
func (s *Store) Save(ctx context.Context, record *Record) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO invocations (chain, input, output, error, fallback_used, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, record.Chain, record.Input, record.Output, record.Error, record.FallbackUsed, record.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	record.ID, _ = result.LastInsertId()
	return nil
}

// Recent returns the most recent records for a chain, newest first
func (s *Store) Recent(ctx context.Context, chain string, limit int) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, chain, input, output, error, fallback_used, timestamp
		FROM invocations
		WHERE chain = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, chain, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var record Record
		err := rows.Scan(&record.ID, &record.Chain, &record.Input, &record.Output,
			&record.Error, &record.FallbackUsed, &record.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

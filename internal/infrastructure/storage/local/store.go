// Package local provides the embedded SQLite storage backing the record
// slots, sequence table and mutation journal.
package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"simrs/internal/domain/records"
	"simrs/pkg/numerator"
)

// Store is a single-file SQLite database holding all durable state.
type Store struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// Open opens (creating if needed) the data file and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}

	// modernc sqlite allows one writer; a single connection avoids
	// SQLITE_BUSY under concurrent mutations.
	db.SetMaxOpenConns(1)

	s := &Store{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS slots (
			kind       TEXT PRIMARY KEY,
			payload    BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sys_sequences (
			key         TEXT PRIMARY KEY,
			current_val INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sys_journal (
			id                   TEXT PRIMARY KEY,
			slot                 TEXT NOT NULL,
			op                   TEXT NOT NULL,
			snapshot             BLOB,
			snapshot_compressed  BLOB,
			compression_algo     TEXT NOT NULL,
			created_at           TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_slot ON sys_journal (slot, created_at DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// GetSlot returns the payload stored under kind or records.ErrSlotNotFound.
func (s *Store) GetSlot(ctx context.Context, kind string) ([]byte, error) {
	query, args, err := s.sb.
		Select("payload").
		From("slots").
		Where(sq.Eq{"kind": kind}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var payload []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, records.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get slot %s: %w", kind, err)
	}
	return payload, nil
}

// PutSlot stores the full collection payload under kind.
func (s *Store) PutSlot(ctx context.Context, kind string, payload []byte) error {
	query, args, err := s.sb.
		Insert("slots").
		Columns("kind", "payload", "updated_at").
		Values(kind, payload, time.Now().UTC()).
		Suffix("ON CONFLICT(kind) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put slot %s: %w", kind, err)
	}
	return nil
}

// DeleteSlot removes a slot; missing slots are a no-op.
func (s *Store) DeleteSlot(ctx context.Context, kind string) error {
	query, args, err := s.sb.
		Delete("slots").
		Where(sq.Eq{"kind": kind}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete slot %s: %w", kind, err)
	}
	return nil
}

// Sequences exposes the sequence table to the numerator.
func (s *Store) Sequences() numerator.Querier {
	return sequenceQuerier{db: s.db}
}

type sequenceQuerier struct {
	db *sql.DB
}

func (q sequenceQuerier) QueryRowContext(ctx context.Context, query string, args ...any) numerator.Row {
	return q.db.QueryRowContext(ctx, query, args...)
}

// Ping checks the data file is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

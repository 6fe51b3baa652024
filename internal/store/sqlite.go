package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteFile is the database file name used inside the state directory.
const SQLiteFile = "state.db"

const createSlotsTable = `CREATE TABLE IF NOT EXISTS slots (
	name TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteSlot stores the record as a row in a SQLite database.
type SQLiteSlot struct {
	sqlDB *sql.DB
	name  string
}

// OpenSQLiteSlot opens (creating if needed) <dir>/state.db and returns the
// named slot inside it.
func OpenSQLiteSlot(dir, name string) (*SQLiteSlot, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("state path is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("slot name is required")
	}

	cleanDir := filepath.Clean(dir)
	if err := os.MkdirAll(cleanDir, 0755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	dsn := filepath.Join(cleanDir, SQLiteFile) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(createSlotsTable); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}

	return &SQLiteSlot{sqlDB: sqlDB, name: name}, nil
}

// Load reads the slot row.
func (s *SQLiteSlot) Load(ctx context.Context) ([]byte, bool, error) {
	var value []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, s.name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load slot %s: %w", s.name, err)
	}
	return value, true, nil
}

// Save upserts the slot row.
func (s *SQLiteSlot) Save(ctx context.Context, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO slots (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.name, data, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save slot %s: %w", s.name, err)
	}
	return nil
}

// Clear deletes the slot row.
func (s *SQLiteSlot) Clear(ctx context.Context) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, s.name); err != nil {
		return fmt.Errorf("clear slot %s: %w", s.name, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteSlot) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

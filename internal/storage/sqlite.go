package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteMedium persists collections to a single SQLite table as JSON blobs,
// one row per collection.
type SQLiteMedium struct {
	db   *sql.DB
	path string
}

var _ Medium = (*SQLiteMedium)(nil)

// NewSQLiteMedium opens (or creates) the database at path and ensures the
// state table exists.
func NewSQLiteMedium(path string) (*SQLiteMedium, error) {
	if path == "" {
		path = "fleetcore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SQLiteMedium{db: db, path: path}, nil
}

func (m *SQLiteMedium) Driver() Driver { return DriverSQLite }

func (m *SQLiteMedium) LoadCollection(ctx context.Context, name string) ([]byte, bool, error) {
	var payload []byte
	err := m.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select %s: %w", name, err)
	}
	return payload, true, nil
}

func (m *SQLiteMedium) SaveCollection(ctx context.Context, name string, payload []byte) error {
	if _, err := m.db.ExecContext(ctx,
		`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
		name, payload); err != nil {
		return fmt.Errorf("upsert %s: %w", name, err)
	}
	return nil
}

func (m *SQLiteMedium) Close() error { return m.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (m *SQLiteMedium) DB() *sql.DB { return m.db }

// Path returns the configured database path.
func (m *SQLiteMedium) Path() string { return m.path }

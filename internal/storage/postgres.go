package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const (
	pgDriverName = "pgx"
	// Default DSN keeps local development working without configuration.
	defaultPostgresDSN = "postgres://localhost/fleetcore?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// PostgresMedium persists collections to a Postgres state table, one JSONB
// row per collection.
type PostgresMedium struct {
	db *sql.DB
}

var _ Medium = (*PostgresMedium)(nil)

// NewPostgresMedium opens a connection using the provided DSN (falls back to
// defaultPostgresDSN), pings it, and ensures the state table exists.
func NewPostgresMedium(ctx context.Context, dsn string) (*PostgresMedium, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}
	openMu.Lock()
	db, err := sqlOpen(pgDriverName, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	ddl := `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure state table: %w", err)
	}
	return &PostgresMedium{db: db}, nil
}

func (m *PostgresMedium) Driver() Driver { return DriverPostgres }

func (m *PostgresMedium) LoadCollection(ctx context.Context, name string) ([]byte, bool, error) {
	var payload []byte
	err := m.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = $1`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select %s: %w", name, err)
	}
	return payload, true, nil
}

func (m *PostgresMedium) SaveCollection(ctx context.Context, name string, payload []byte) error {
	if _, err := m.db.ExecContext(ctx,
		`INSERT INTO state(bucket,payload) VALUES($1,$2) ON CONFLICT(bucket) DO UPDATE SET payload=EXCLUDED.payload`,
		name, payload); err != nil {
		return fmt.Errorf("upsert %s: %w", name, err)
	}
	return nil
}

func (m *PostgresMedium) Close() error { return m.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (m *PostgresMedium) DB() *sql.DB { return m.db }

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}

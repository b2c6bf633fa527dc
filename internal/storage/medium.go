// Package storage provides the persistence media the fleet store snapshots
// into. A Medium holds one opaque JSON payload per collection; the store
// serializes full collections and swaps them atomically.
package storage

import "context"

// Driver identifies a persistence backend.
type Driver string

const (
	DriverMemory     Driver = "memory"
	DriverFilesystem Driver = "fs"
	DriverSQLite     Driver = "sqlite"
	DriverPostgres   Driver = "postgres"
	DriverS3         Driver = "s3"
)

// Medium is a keyed payload store. LoadCollection reports absence via the
// second return rather than an error so first-run seeding can tell "never
// written" apart from "written empty".
type Medium interface {
	LoadCollection(ctx context.Context, name string) (payload []byte, ok bool, err error)
	SaveCollection(ctx context.Context, name string, payload []byte) error
	Driver() Driver
	Close() error
}

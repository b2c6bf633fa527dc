package storage

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// OpenFromEnv selects a persistence medium using environment variables.
// Defaults to the filesystem driver when unset.
//
//	FLEETCORE_STORAGE_DRIVER: memory|fs|sqlite|postgres|s3 (default fs)
//	FLEETCORE_FS_ROOT:        data directory for the fs driver (default ./fleetdata)
//	FLEETCORE_SQLITE_PATH:    path to sqlite file (default fleetcore.db)
//	FLEETCORE_POSTGRES_DSN:   postgres DSN when driver=postgres
//	FLEETCORE_S3_BUCKET:      bucket name when driver=s3 (required)
//	FLEETCORE_S3_REGION:      region (default us-east-1)
//	FLEETCORE_S3_PREFIX:      optional object key prefix
//	FLEETCORE_S3_ENDPOINT:    optional custom endpoint (e.g. MinIO)
//	FLEETCORE_S3_PATH_STYLE:  true|false (default false)
func OpenFromEnv(ctx context.Context) (Medium, error) {
	driver := os.Getenv("FLEETCORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverMemory:
		return NewMemoryMedium(), nil
	case DriverFilesystem:
		return NewFSMedium(os.Getenv("FLEETCORE_FS_ROOT"))
	case DriverSQLite:
		return NewSQLiteMedium(os.Getenv("FLEETCORE_SQLITE_PATH"))
	case DriverPostgres:
		return NewPostgresMedium(ctx, os.Getenv("FLEETCORE_POSTGRES_DSN"))
	case DriverS3:
		bucket := os.Getenv("FLEETCORE_S3_BUCKET")
		if bucket == "" {
			return nil, fmt.Errorf("FLEETCORE_S3_BUCKET required for s3 driver")
		}
		cfg := S3Config{
			Bucket:    bucket,
			Region:    os.Getenv("FLEETCORE_S3_REGION"),
			Prefix:    os.Getenv("FLEETCORE_S3_PREFIX"),
			Endpoint:  os.Getenv("FLEETCORE_S3_ENDPOINT"),
			PathStyle: strings.EqualFold(os.Getenv("FLEETCORE_S3_PATH_STYLE"), "true"),
		}
		return NewS3Medium(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}

package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Get when no blob exists under the key.
var ErrKeyNotFound = errors.New("storage: key not found")

// Backend is the persistence contract for whole-collection blobs. Each
// collection is stored as one serialized value under a fixed key, mirroring
// the browser local-storage model the store was designed around.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, blob []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Drivers accepted by Open.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPebble   = "pebble"
	DriverPostgres = "postgres"
)

// Open constructs a backend for the configured driver. dsn is the data
// directory for file and pebble drivers and the connection URL for postgres.
func Open(ctx context.Context, driver, dsn string) (Backend, error) {
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		return NewFile(dsn)
	case DriverPebble:
		return NewPebble(dsn)
	case DriverPostgres:
		return NewPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

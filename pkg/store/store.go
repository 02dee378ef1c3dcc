// Package store keeps the serialized task collection in a single key of a
// local blob store.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Key is the one blob key holding the task array.
const Key = "mytodo-tasks"

// ErrNotFound is returned by Read when nothing has been written yet.
var ErrNotFound = errors.New("store: no data")

const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
)

// Persistence defines the persistence contract for the task blob.
type Persistence interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

// Load opens the Persistence selected by cfg.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	switch cfg.Backend() {
	case "", BackendDiskv:
		return openDiskv(cfg.BasePath())
	case BackendSQLite:
		return openSQLite(cfg.BasePath())
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

type diskvPersistence struct {
	d        *diskv.Diskv
	basePath string
}

func openDiskv(basePath string) (*diskvPersistence, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &diskvPersistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		TempDir:      filepath.Join(basePath, ".tmp"),
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

func (p *diskvPersistence) Read(ctx context.Context) ([]byte, error) {
	// Bypass the cache so writes from other processes are seen.
	rc, err := p.d.ReadStream(Key, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (p *diskvPersistence) Write(ctx context.Context, data []byte) error {
	return p.d.Write(Key, data)
}

func (p *diskvPersistence) Watch(ctx context.Context) (<-chan Event, error) {
	return watchFiles(ctx, p.basePath, func(name string) bool {
		return filepath.Base(name) == Key
	})
}

func (p *diskvPersistence) Close() error {
	return nil
}

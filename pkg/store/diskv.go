package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

const tempDirName = ".tmp"

// Diskv keeps each key as a file directly under a base directory.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

// OpenDiskv prepares basePath and returns a file backed KV.
func OpenDiskv(basePath string) (*Diskv, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(filepath.Join(basePath, tempDirName), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath: basePath,
			// Writes land in TempDir first and are renamed into place.
			TempDir: filepath.Join(basePath, tempDirName),
			// No cache: other processes write the same files and the watch
			// daemon must always see what is on disk.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
	}, nil
}

// BasePath is the directory holding the key files.
func (p *Diskv) BasePath() string {
	return p.basePath
}

func (p *Diskv) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *Diskv) Write(ctx context.Context, key string, val []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.d.Write(key, val); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *Diskv) Close() error {
	return nil
}

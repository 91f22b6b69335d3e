// Package store provides the key-value persistence behind the planner. Every
// logical collection is stored as one complete JSON document under a fixed key.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Logical keys, one per collection.
const (
	KeyTasks    = "tasks"
	KeyGoals    = "goals"
	KeySettings = "settings"
)

// Keys lists every logical key in load order.
var Keys = []string{KeyTasks, KeyGoals, KeySettings}

// ErrKeyNotFound is returned by Read when nothing is stored under a key.
var ErrKeyNotFound = errors.New("store: key not found")

// KV is the persistence contract: whole values read and written by key.
type KV interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, val []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Open builds the KV selected by cfg.
func Open(ctx context.Context, cfg Config) (KV, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	switch b := cfg.Backend(); b {
	case "", BackendDiskv:
		return OpenDiskv(cfg.BasePath())
	case BackendSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath())
	case BackendRedis:
		return OpenRedis(ctx, cfg.RedisURL())
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", b)
	}
}

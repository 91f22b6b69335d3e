package store

import (
	"context"
	"sync"
)

// Memory is a process local KV, used for the ephemeral backend and tests.
type Memory struct {
	mu   sync.Mutex
	vals map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{vals: make(map[string][]byte)}
}

func (m *Memory) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vals[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Write(_ context.Context, key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = append([]byte(nil), val...)
	return nil
}

func (m *Memory) Close() error {
	return nil
}

package store

import (
	"slices"
	"sync"
)

// Memory is an in-process Store. Nothing survives Close.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{records: map[string][]byte{}}
}

func (m *Memory) Ping() error { return nil }

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	v, ok := m.records[key]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	return slices.Clone(v), nil
}

func (m *Memory) Put(key string, value []byte) error {
	m.mu.Lock()
	m.records[key] = slices.Clone(value)
	m.mu.Unlock()

	return nil
}

func (m *Memory) Close() error { return nil }

package storage

import (
	"context"
	"sync"
)

// MemoryMedium keeps payloads in a map. Used for tests and ephemeral runs.
type MemoryMedium struct {
	mu       sync.RWMutex
	payloads map[string][]byte
}

var _ Medium = (*MemoryMedium)(nil)

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{payloads: make(map[string][]byte)}
}

func (m *MemoryMedium) Driver() Driver { return DriverMemory }

func (m *MemoryMedium) LoadCollection(ctx context.Context, name string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.payloads[name]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, true, nil
}

func (m *MemoryMedium) SaveCollection(ctx context.Context, name string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(payload))
	copy(stored, payload)
	m.payloads[name] = stored
	return nil
}

func (m *MemoryMedium) Close() error { return nil }

package adapter

import (
	"context"
	"sync"

	"class-companion/internal/domain"
)

// MemoryStoreAdapter is a process-local domain.Store. Contents are lost on restart.
type MemoryStoreAdapter struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStoreAdapter() *MemoryStoreAdapter {
	return &MemoryStoreAdapter{data: make(map[string]string)}
}

func (m *MemoryStoreAdapter) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return val, nil
}

func (m *MemoryStoreAdapter) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStoreAdapter) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStoreAdapter) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Len returns the number of stored keys.
func (m *MemoryStoreAdapter) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

package prefs

import (
	"context"
	"sync"
)

// MemoryBackend keeps preferences for the lifetime of the process.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]map[Key]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]map[Key]string)}
}

func (b *MemoryBackend) Load(_ context.Context, profile string, key Key) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.data[profile][key]
	return v, ok, nil
}

func (b *MemoryBackend) Save(_ context.Context, profile string, key Key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.data[profile]
	if !ok {
		m = make(map[Key]string)
		b.data[profile] = m
	}
	m[key] = value
	return nil
}

var _ Backend = (*MemoryBackend)(nil)

package storage

import (
	"context"
	"sync"

	"github.com/vovakirdan/affine-affinity/internal/progress"
)

// Memory is an in-process backend. Progress is lost when the process exits.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]string)}
}

// Profile returns a backend scoped to one player.
func (m *Memory) Profile(name string) progress.Backend {
	return &memoryProfile{mem: m, name: name}
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

type memoryProfile struct {
	mem  *Memory
	name string
}

func (p *memoryProfile) Get(_ context.Context, key string) (string, bool, error) {
	p.mem.mu.RLock()
	defer p.mem.mu.RUnlock()

	v, ok := p.mem.data[p.name][key]
	return v, ok, nil
}

func (p *memoryProfile) Set(_ context.Context, key, value string) error {
	p.mem.mu.Lock()
	defer p.mem.mu.Unlock()

	if p.mem.data[p.name] == nil {
		p.mem.data[p.name] = make(map[string]string)
	}
	p.mem.data[p.name][key] = value
	return nil
}

func (p *memoryProfile) Delete(_ context.Context, key string) error {
	p.mem.mu.Lock()
	defer p.mem.mu.Unlock()

	delete(p.mem.data[p.name], key)
	return nil
}

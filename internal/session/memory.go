package session

import (
	"context"
	"sync"
)

// MemoryBackend keeps the session in process memory.
type MemoryBackend struct {
	id     string
	mu     sync.RWMutex
	fields map[string]string
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend(id string) *MemoryBackend {
	return &MemoryBackend{id: id, fields: map[string]string{}}
}

func (b *MemoryBackend) ID() string {
	return b.id
}

func (b *MemoryBackend) Load(ctx context.Context) (map[string]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]string, len(b.fields))
	for k, v := range b.fields {
		out[k] = v
	}
	return out, nil
}

func (b *MemoryBackend) Save(ctx context.Context, fields map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for k, v := range fields {
		if v == "" {
			delete(b.fields, k)
			continue
		}
		b.fields[k] = v
	}
	return nil
}

func (b *MemoryBackend) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.fields = map[string]string{}
	return nil
}

// MemoryPool hands out one MemoryBackend per session id. The server uses it
// when no redis is configured.
type MemoryPool struct {
	mu       sync.Mutex
	backends map[string]*MemoryBackend
}

// NewMemoryPool returns an empty pool.
func NewMemoryPool() *MemoryPool {
	return &MemoryPool{backends: map[string]*MemoryBackend{}}
}

// Backend returns the backend for id, creating it on first use.
func (p *MemoryPool) Backend(id string) Backend {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.backends[id]
	if !ok {
		b = NewMemoryBackend(id)
		p.backends[id] = b
	}
	return b
}

package memory

import (
	"context"
	"sync"

	"github.com/jo-hoe/gobrush/internal/cache"
)

// Provider implements a simple in-memory cache. When more than maxEntries
// objects are stored the oldest one is evicted. Zero means unbounded.
type Provider struct {
	cache      map[string][]byte
	order      []string
	maxEntries int
	mutex      sync.RWMutex
}

// New returns a new Provider holding at most maxEntries objects
func New(maxEntries int) *Provider {
	return &Provider{
		cache:      make(map[string][]byte),
		maxEntries: maxEntries,
	}
}

// Get returns an object from the cache if it exists
func (p *Provider) Get(ctx context.Context, key string) (data []byte, err error) {
	p.mutex.RLock()
	data, exists := p.cache[key]
	p.mutex.RUnlock()

	if !exists {
		return nil, cache.ErrNotFound
	}

	return data, nil
}

// Set adds an object to the cache
func (p *Provider) Set(ctx context.Context, key string, data []byte) (err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if _, exists := p.cache[key]; !exists {
		p.order = append(p.order, key)
	}
	p.cache[key] = data

	for p.maxEntries > 0 && len(p.order) > p.maxEntries {
		delete(p.cache, p.order[0])
		p.order = p.order[1:]
	}
	return nil
}

// Len returns the number of cached objects
func (p *Provider) Len() int {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return len(p.cache)
}

// Shutdown drops every cached object
func (p *Provider) Shutdown() {
	p.mutex.Lock()
	p.cache = make(map[string][]byte)
	p.order = nil
	p.mutex.Unlock()
}

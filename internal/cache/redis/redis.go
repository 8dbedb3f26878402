package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jo-hoe/gobrush/internal/cache"
)

// Provider implements a redis cache
type Provider struct {
	client *goredis.Client
	ttl    time.Duration
}

// New returns a new Provider instance. Entries expire after ttl; a zero ttl
// keeps them until evicted by the server.
func New(ctx context.Context, address string, poolSize int, ttl time.Duration) (*Provider, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     address,
		PoolSize: poolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", address, err)
	}

	return &Provider{
		client: client,
		ttl:    ttl,
	}, nil
}

// Get returns an object from the cache if it exists
func (p *Provider) Get(ctx context.Context, key string) (data []byte, err error) {
	data, err = p.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, cache.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set adds an object to the cache
func (p *Provider) Set(ctx context.Context, key string, data []byte) (err error) {
	return p.client.Set(ctx, key, data, p.ttl).Err()
}

// Shutdown shuts down the cache
func (p *Provider) Shutdown() {
	p.client.Close()
}

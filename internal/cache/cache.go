package cache

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"
)

// Provider is an interface for getting and setting cached objects
type Provider interface {
	Get(ctx context.Context, key string) (data []byte, err error)
	Set(ctx context.Context, key string, data []byte) (err error)
	Shutdown()
}

// LoaderFunc is a function for loading data into a cache
type LoaderFunc func(ctx context.Context, key string) (data []byte, err error)

// Auto is a cache that automatically attempts to load objects if they don't exist
type Auto struct {
	Provider    Provider
	Loader      LoaderFunc
	lookupGroup singleflight.Group
}

// Get returns an object from the cache if it exists, otherwise it loads it into the cache and returns it
func (a *Auto) Get(ctx context.Context, key string) (data []byte, err error) {
	return a.GetWith(ctx, key, a.Loader)
}

// GetWith behaves like Get but loads missing objects with the given loader.
// Concurrent misses for the same key share a single load. A failure to
// store the loaded object is logged and the object is still returned.
func (a *Auto) GetWith(ctx context.Context, key string, loader LoaderFunc) (data []byte, err error) {
	data, err = a.Provider.Get(ctx, key)
	if !errors.Is(err, ErrNotFound) {
		return
	}

	var v any
	v, err, _ = a.lookupGroup.Do(key, func() (any, error) {
		data, err := loader(ctx, key)
		if err != nil {
			return nil, err
		}

		if err := a.Provider.Set(ctx, key, data); err != nil {
			slog.Warn("cache: failed to store object", "key", key, "error", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	data, _ = v.([]byte)
	return data, nil
}

// Errors
var (
	ErrNotFound = errors.New("not found in cache")
)

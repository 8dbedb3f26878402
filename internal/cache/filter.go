package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"

	"github.com/jo-hoe/gobrush/internal/imaging"
	"github.com/jo-hoe/gobrush/internal/pipeline"
)

// Filter memoizes the results of another filter. Entries are keyed by the
// filter's fingerprint and a digest of the input image.
type Filter struct {
	next        pipeline.Filter
	fingerprint string
	auto        *Auto
}

// NewFilter wraps next with a cache held by provider
func NewFilter(provider Provider, next pipeline.Filter, fingerprint string) *Filter {
	return &Filter{
		next:        next,
		fingerprint: fingerprint,
		auto:        &Auto{Provider: provider},
	}
}

// Key returns the cache key for applying the filter to img
func (f *Filter) Key(img *imaging.Image) (string, error) {
	data, err := img.MarshalBinary()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return "gobrush:" + f.fingerprint + ":" + hex.EncodeToString(sum[:]), nil
}

// Apply returns the cached result for img, computing it on a miss. Cache
// failures are logged and fall back to the wrapped filter.
func (f *Filter) Apply(ctx context.Context, img *imaging.Image) (*imaging.Image, error) {
	key, err := f.Key(img)
	if err != nil {
		slog.Warn("cache: cannot derive key, bypassing cache", "error", err)
		return f.next.Apply(ctx, img)
	}

	var filterErr error
	data, err := f.auto.GetWith(ctx, key, func(ctx context.Context, key string) ([]byte, error) {
		out, err := f.next.Apply(ctx, img)
		if err != nil {
			filterErr = err
			return nil, err
		}
		return out.MarshalBinary()
	})
	if err != nil {
		if filterErr != nil || isStageError(err) {
			return nil, err
		}
		slog.Warn("cache: lookup failed, bypassing cache", "key", key, "error", err)
		return f.next.Apply(ctx, img)
	}

	out := &imaging.Image{}
	if err := out.UnmarshalBinary(data); err != nil {
		slog.Warn("cache: corrupt entry, bypassing cache", "key", key, "error", err)
		return f.next.Apply(ctx, img)
	}
	slog.Debug("cache: served filter result", "key", key)
	return out, nil
}

// isStageError reports whether err came from the wrapped filter of another
// caller sharing the same in-flight load.
func isStageError(err error) bool {
	var fe *pipeline.FilterError
	return errors.As(err, &fe)
}

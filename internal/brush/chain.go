package brush

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jo-hoe/gobrush/internal/imaging"
	"github.com/jo-hoe/gobrush/internal/pipeline"
)

// Chain applies a sequence of brushes in order
type Chain struct {
	brushes     []Brush
	fingerprint string
}

// NewChain builds a chain from configurations using the registry
func NewChain(registry *Registry, configs []Config) (*Chain, error) {
	brushes := make([]Brush, 0, len(configs))
	for i, cfg := range configs {
		slog.Debug("creating brush", "index", i, "brush_name", cfg.Name, "params", cfg.Params)

		b, err := registry.Create(cfg.Name, cfg.Params)
		if err != nil {
			return nil, fmt.Errorf("failed to create brush at index %d (%s): %w", i, cfg.Name, err)
		}
		brushes = append(brushes, b)
	}

	encoded, err := json.Marshal(configs)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint brush chain: %w", err)
	}
	sum := sha256.Sum256(encoded)

	return &Chain{
		brushes:     brushes,
		fingerprint: hex.EncodeToString(sum[:]),
	}, nil
}

// Len returns the number of brushes in the chain
func (c *Chain) Len() int {
	return len(c.brushes)
}

// Names returns the brush names in application order
func (c *Chain) Names() []string {
	names := make([]string, len(c.brushes))
	for i, b := range c.brushes {
		names[i] = b.Name()
	}
	return names
}

// Fingerprint identifies the chain's brushes and parameters
func (c *Chain) Fingerprint() string {
	return c.fingerprint
}

// Apply runs every brush on the image in sequence. Failures are returned as
// *pipeline.FilterError naming the brush.
func (c *Chain) Apply(ctx context.Context, img *imaging.Image) (*imaging.Image, error) {
	start := time.Now()

	if img.Empty() {
		return nil, &pipeline.FilterError{Index: -1, Err: imaging.ErrEmpty}
	}

	slog.Info("starting brush chain",
		"brush_count", len(c.brushes),
		"width", img.W,
		"height", img.H,
		"channels", img.C)

	if len(c.brushes) == 0 {
		slog.Debug("no brushes to apply, returning copy of original image")
		return img.Copy(), nil
	}

	current := img
	for idx, b := range c.brushes {
		if err := ctx.Err(); err != nil {
			return nil, &pipeline.FilterError{Brush: b.Name(), Index: idx, Err: err}
		}

		brushStart := time.Now()
		out, err := b.Apply(current)
		if err != nil {
			slog.Error("brush failed",
				"index", idx,
				"brush_name", b.Name(),
				"error", err,
				"channels", current.C)
			return nil, &pipeline.FilterError{Brush: b.Name(), Index: idx, Err: err}
		}

		slog.Debug("brush completed",
			"index", idx,
			"brush_name", b.Name(),
			"duration_ms", time.Since(brushStart).Milliseconds(),
			"output_width", out.W,
			"output_height", out.H,
			"output_channels", out.C)

		current = out
	}

	slog.Info("brush chain completed",
		"total_duration_ms", time.Since(start).Milliseconds(),
		"brush_count", len(c.brushes))

	return current, nil
}

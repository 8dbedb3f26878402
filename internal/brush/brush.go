package brush

import "github.com/jo-hoe/gobrush/internal/imaging"

// Brush is one stylization step. Apply must not modify its input.
type Brush interface {
	Name() string
	Apply(img *imaging.Image) (*imaging.Image, error)
}

// Factory creates a brush from configuration parameters
type Factory func(params map[string]any) (Brush, error)

// Config names a registered brush and carries its parameters
type Config struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

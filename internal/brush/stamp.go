package brush

import (
	"fmt"
	"math"

	"github.com/jo-hoe/gobrush/internal/imaging"
)

// StampParams represents typed parameters for the stamp brush
type StampParams struct {
	Size    int     // mask width and height, odd
	Sigma   float64 // falloff of the mask
	Spacing int     // distance between dab centres
	Opacity float64
}

// NewStampParamsFromMap creates StampParams from a generic map
func NewStampParamsFromMap(params map[string]any) (*StampParams, error) {
	p := &StampParams{
		Size:    GetIntParam(params, "size", 9),
		Sigma:   GetFloatParam(params, "sigma", 2),
		Spacing: GetIntParam(params, "spacing", 6),
		Opacity: GetFloatParam(params, "opacity", 0.8),
	}

	if p.Size <= 0 || p.Size%2 == 0 {
		return nil, fmt.Errorf("size must be a positive odd number, got %d", p.Size)
	}
	if p.Sigma <= 0 {
		return nil, fmt.Errorf("sigma must be positive, got %f", p.Sigma)
	}
	if p.Spacing <= 0 {
		return nil, fmt.Errorf("spacing must be positive, got %d", p.Spacing)
	}
	if p.Opacity < 0 || p.Opacity > 1 {
		return nil, fmt.Errorf("opacity must be between 0 and 1, got %f", p.Opacity)
	}
	return p, nil
}

// StampBrush paints a grid of soft round dabs, each carrying the colour
// found under its centre.
type StampBrush struct {
	name   string
	params *StampParams
	mask   *imaging.Image
}

// NewStampBrush creates a stamp brush
func NewStampBrush(params map[string]any) (Brush, error) {
	p, err := NewStampParamsFromMap(params)
	if err != nil {
		return nil, err
	}
	return &StampBrush{name: "stamp", params: p, mask: stampMask(p.Size, p.Sigma)}, nil
}

func stampMask(size int, sigma float64) *imaging.Image {
	mask := imaging.New(size, size, 1)
	r := size / 2
	for j := -r; j <= r; j++ {
		for i := -r; i <= r; i++ {
			v := math.Exp(-float64(i*i+j*j) / (2 * sigma * sigma))
			mask.Set(i+r, j+r, 0, float32(v))
		}
	}
	imaging.FeatureNormalizeInPlace(mask)
	return mask
}

func (b *StampBrush) Name() string {
	return b.name
}

// GetParams returns the typed parameters
func (b *StampBrush) GetParams() *StampParams {
	return b.params
}

func (b *StampBrush) Apply(img *imaging.Image) (*imaging.Image, error) {
	if img.Empty() {
		return nil, imaging.ErrEmpty
	}

	out := img.Copy()
	step := b.params.Spacing
	for cy := step / 2; cy < img.H; cy += step {
		for cx := step / 2; cx < img.W; cx += step {
			imaging.DabInPlace(out, img, b.mask, cx, cy, float32(b.params.Opacity))
		}
	}
	return out, nil
}

package brush

import (
	"fmt"
	"math"

	"github.com/jo-hoe/gobrush/internal/imaging"
)

// ResizeParams represents typed parameters for the resize brush.
// A nil dimension is derived from the other one keeping the aspect ratio.
type ResizeParams struct {
	Width  *int
	Height *int
	Method string
}

// NewResizeParamsFromMap creates ResizeParams from a generic map
func NewResizeParamsFromMap(params map[string]any) (*ResizeParams, error) {
	p := &ResizeParams{
		Method: GetStringParam(params, "method", "bilinear"),
	}

	if _, ok := params["width"]; ok {
		w := GetIntParam(params, "width", 0)
		if w <= 0 {
			return nil, fmt.Errorf("width must be positive, got %d", w)
		}
		p.Width = &w
	}
	if _, ok := params["height"]; ok {
		h := GetIntParam(params, "height", 0)
		if h <= 0 {
			return nil, fmt.Errorf("height must be positive, got %d", h)
		}
		p.Height = &h
	}
	if p.Width == nil && p.Height == nil {
		return nil, fmt.Errorf("at least one of width or height is required")
	}

	switch p.Method {
	case "nearest", "bilinear":
	default:
		return nil, fmt.Errorf("unknown resize method: %s", p.Method)
	}
	return p, nil
}

// ResizeBrush scales the image to a target size
type ResizeBrush struct {
	name   string
	params *ResizeParams
}

// NewResizeBrush creates a resize brush
func NewResizeBrush(params map[string]any) (Brush, error) {
	p, err := NewResizeParamsFromMap(params)
	if err != nil {
		return nil, err
	}
	return &ResizeBrush{name: "resize", params: p}, nil
}

func (b *ResizeBrush) Name() string {
	return b.name
}

// GetParams returns the typed parameters
func (b *ResizeBrush) GetParams() *ResizeParams {
	return b.params
}

// targetSize resolves the output dimensions for an image of w x h
func (b *ResizeBrush) targetSize(w, h int) (int, int) {
	switch {
	case b.params.Width != nil && b.params.Height != nil:
		return *b.params.Width, *b.params.Height
	case b.params.Width != nil:
		tw := *b.params.Width
		return tw, max(1, int(math.Round(float64(h)*float64(tw)/float64(w))))
	default:
		th := *b.params.Height
		return max(1, int(math.Round(float64(w)*float64(th)/float64(h)))), th
	}
}

func (b *ResizeBrush) Apply(img *imaging.Image) (*imaging.Image, error) {
	if img.Empty() {
		return nil, imaging.ErrEmpty
	}
	w, h := b.targetSize(img.W, img.H)
	if b.params.Method == "nearest" {
		return imaging.ResizeNearest(img, w, h)
	}
	return imaging.ResizeBilinear(img, w, h)
}

package brush

import (
	"fmt"
	"math"

	"github.com/jo-hoe/gobrush/internal/imaging"
)

// GrayscaleBrush converts RGB to luma
type GrayscaleBrush struct {
	name string
}

// NewGrayscaleBrush creates a grayscale brush. It takes no parameters.
func NewGrayscaleBrush(params map[string]any) (Brush, error) {
	return &GrayscaleBrush{name: "grayscale"}, nil
}

func (b *GrayscaleBrush) Name() string {
	return b.name
}

func (b *GrayscaleBrush) Apply(img *imaging.Image) (*imaging.Image, error) {
	return imaging.Grayscale(img)
}

// HSVParams represents typed parameters for the hsv brush
type HSVParams struct {
	HueShift   float64 // added to hue, in turns (1 = full circle)
	Saturation float64 // saturation multiplier
	Value      float64 // value multiplier
}

// NewHSVParamsFromMap creates HSVParams from a generic map
func NewHSVParamsFromMap(params map[string]any) (*HSVParams, error) {
	p := &HSVParams{
		HueShift:   GetFloatParam(params, "hueShift", 0),
		Saturation: GetFloatParam(params, "saturation", 1),
		Value:      GetFloatParam(params, "value", 1),
	}
	if p.Saturation < 0 {
		return nil, fmt.Errorf("saturation must not be negative, got %f", p.Saturation)
	}
	if p.Value < 0 {
		return nil, fmt.Errorf("value must not be negative, got %f", p.Value)
	}
	return p, nil
}

// HSVBrush adjusts hue, saturation and value
type HSVBrush struct {
	name   string
	params *HSVParams
}

// NewHSVBrush creates an hsv adjustment brush
func NewHSVBrush(params map[string]any) (Brush, error) {
	p, err := NewHSVParamsFromMap(params)
	if err != nil {
		return nil, err
	}
	return &HSVBrush{name: "hsv", params: p}, nil
}

func (b *HSVBrush) Name() string {
	return b.name
}

// GetParams returns the typed parameters
func (b *HSVBrush) GetParams() *HSVParams {
	return b.params
}

func (b *HSVBrush) Apply(img *imaging.Image) (*imaging.Image, error) {
	hsv, err := imaging.RGBToHSV(img)
	if err != nil {
		return nil, err
	}

	hue := hsv.Plane(0)
	shift := float32(b.params.HueShift - math.Floor(b.params.HueShift))
	for i, h := range hue {
		h += shift
		if h >= 1 {
			h -= 1
		}
		hue[i] = h
	}
	imaging.ScaleInPlace(hsv, 1, float32(b.params.Saturation))
	imaging.ScaleInPlace(hsv, 2, float32(b.params.Value))
	imaging.ClampInPlace(hsv)

	out, err := imaging.HSVToRGB(hsv)
	if err != nil {
		return nil, err
	}
	imaging.ClampInPlace(out)
	return out, nil
}

// ClampBrush limits values to [0,1]
type ClampBrush struct {
	name string
}

// NewClampBrush creates a clamp brush. It takes no parameters.
func NewClampBrush(params map[string]any) (Brush, error) {
	return &ClampBrush{name: "clamp"}, nil
}

func (b *ClampBrush) Name() string {
	return b.name
}

func (b *ClampBrush) Apply(img *imaging.Image) (*imaging.Image, error) {
	out := img.Copy()
	imaging.ClampInPlace(out)
	return out, nil
}

// SobelBrush renders colourized edges
type SobelBrush struct {
	name string
}

// NewSobelBrush creates a colorized sobel brush. It takes no parameters.
func NewSobelBrush(params map[string]any) (Brush, error) {
	return &SobelBrush{name: "sobel"}, nil
}

func (b *SobelBrush) Name() string {
	return b.name
}

func (b *SobelBrush) Apply(img *imaging.Image) (*imaging.Image, error) {
	return imaging.ColorizeSobel(img)
}

package brush

import (
	"fmt"

	"github.com/jo-hoe/gobrush/internal/imaging"
)

// kernelBrush convolves the image with a fixed kernel
type kernelBrush struct {
	name     string
	kernel   *imaging.Image
	preserve bool
	clamp    bool
}

func (b *kernelBrush) Name() string {
	return b.name
}

func (b *kernelBrush) Apply(img *imaging.Image) (*imaging.Image, error) {
	out, err := imaging.Convolve(img, b.kernel, b.preserve)
	if err != nil {
		return nil, err
	}
	if b.clamp {
		imaging.ClampInPlace(out)
	}
	return out, nil
}

// BoxParams represents typed parameters for the box blur brush
type BoxParams struct {
	Size int
}

// NewBoxParamsFromMap creates BoxParams from a generic map
func NewBoxParamsFromMap(params map[string]any) (*BoxParams, error) {
	size := GetIntParam(params, "size", 3)
	if size <= 0 {
		return nil, fmt.Errorf("size must be positive, got %d", size)
	}
	return &BoxParams{Size: size}, nil
}

// NewBoxBrush creates a box blur brush
func NewBoxBrush(params map[string]any) (Brush, error) {
	p, err := NewBoxParamsFromMap(params)
	if err != nil {
		return nil, err
	}
	k, err := imaging.BoxKernel(p.Size)
	if err != nil {
		return nil, err
	}
	return &kernelBrush{name: "box", kernel: k, preserve: true}, nil
}

// GaussianParams represents typed parameters for the gaussian blur brush
type GaussianParams struct {
	Sigma float64
}

// NewGaussianParamsFromMap creates GaussianParams from a generic map
func NewGaussianParamsFromMap(params map[string]any) (*GaussianParams, error) {
	sigma := GetFloatParam(params, "sigma", 1)
	if sigma <= 0 {
		return nil, fmt.Errorf("sigma must be positive, got %f", sigma)
	}
	return &GaussianParams{Sigma: sigma}, nil
}

// NewGaussianBrush creates a gaussian blur brush
func NewGaussianBrush(params map[string]any) (Brush, error) {
	p, err := NewGaussianParamsFromMap(params)
	if err != nil {
		return nil, err
	}
	k, err := imaging.GaussianKernel(p.Sigma)
	if err != nil {
		return nil, err
	}
	return &kernelBrush{name: "gaussian", kernel: k, preserve: true}, nil
}

// NewSharpenBrush creates a sharpening brush. It takes no parameters.
func NewSharpenBrush(params map[string]any) (Brush, error) {
	return &kernelBrush{name: "sharpen", kernel: imaging.SharpenKernel(), preserve: true, clamp: true}, nil
}

// NewEmbossBrush creates an emboss brush. It takes no parameters.
func NewEmbossBrush(params map[string]any) (Brush, error) {
	return &kernelBrush{name: "emboss", kernel: imaging.EmbossKernel(), preserve: true, clamp: true}, nil
}

// NewHighpassBrush creates an edge brush. The channels are summed into one
// unless `preserve` is set.
func NewHighpassBrush(params map[string]any) (Brush, error) {
	preserve := GetBoolParam(params, "preserve", false)
	return &kernelBrush{name: "highpass", kernel: imaging.HighpassKernel(), preserve: preserve, clamp: true}, nil
}

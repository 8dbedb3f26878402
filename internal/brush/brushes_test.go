package brush

import (
	"errors"
	"math"
	"testing"

	"github.com/jo-hoe/gobrush/internal/imaging"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func ramp(w, h int) *imaging.Image {
	im := imaging.New(w, h, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < 3; c++ {
				im.Set(x, y, c, float32(x+y)/float32(w+h))
			}
		}
	}
	return im
}

func create(t *testing.T, name string, params map[string]any) Brush {
	t.Helper()
	b, err := NewDefaultRegistry().Create(name, params)
	if err != nil {
		t.Fatalf("Expected no error creating %s, got %v", name, err)
	}
	if b.Name() != name {
		t.Fatalf("Expected name %s, got %s", name, b.Name())
	}
	return b
}

func TestBrushes_FlatImageStaysFlat(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]any
	}{
		{"box", map[string]any{"size": 5}},
		{"gaussian", map[string]any{"sigma": 1.5}},
		{"sharpen", nil},
		{"emboss", nil},
		{"clamp", nil},
		{"stamp", nil},
		{"hsv", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := solid(12, 10, 3, 0.4)
			out, err := create(t, tt.name, tt.params).Apply(in)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !out.SameShape(in) {
				t.Fatalf("Expected shape %dx%dx%d, got %dx%dx%d", in.W, in.H, in.C, out.W, out.H, out.C)
			}
			for i, v := range out.Data {
				if !near(v, 0.4) {
					t.Fatalf("Expected 0.4 at %d, got %f", i, v)
				}
			}
		})
	}
}

func TestBrushes_DoNotMutateInput(t *testing.T) {
	for _, name := range NewDefaultRegistry().Names() {
		t.Run(name, func(t *testing.T) {
			params := map[string]any{}
			if name == "resize" {
				params["width"] = 5
			}
			in := ramp(8, 6)
			before := in.Copy()
			if _, err := create(t, name, params).Apply(in); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			for i := range in.Data {
				if in.Data[i] != before.Data[i] {
					t.Fatalf("Expected input unchanged at %d", i)
				}
			}
		})
	}
}

func TestHighpassBrush_SingleChannel(t *testing.T) {
	out, err := create(t, "highpass", nil).Apply(solid(6, 6, 3, 0.7))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.C != 1 {
		t.Fatalf("Expected 1 channel, got %d", out.C)
	}
	for _, v := range out.Data {
		if v != 0 {
			t.Fatalf("Expected 0 on flat input, got %f", v)
		}
	}
}

func TestHighpassBrush_Preserve(t *testing.T) {
	out, err := create(t, "highpass", map[string]any{"preserve": "true"}).Apply(ramp(6, 6))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.C != 3 {
		t.Fatalf("Expected 3 channels, got %d", out.C)
	}
}

func TestGrayscaleBrush(t *testing.T) {
	b := create(t, "grayscale", nil)

	out, err := b.Apply(solid(3, 3, 3, 1))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.C != 1 {
		t.Fatalf("Expected 1 channel, got %d", out.C)
	}
	if !near(out.At(1, 1, 0), 1) {
		t.Fatalf("Expected 1, got %f", out.At(1, 1, 0))
	}

	if _, err := b.Apply(solid(3, 3, 1, 1)); err == nil {
		t.Fatal("Expected error for single channel input")
	}
}

func TestHSVBrush_ValueZeroIsBlack(t *testing.T) {
	out, err := create(t, "hsv", map[string]any{"value": 0}).Apply(ramp(4, 4))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, v := range out.Data {
		if v != 0 {
			t.Fatalf("Expected 0, got %f", v)
		}
	}
}

func TestHSVBrush_HueShiftRotatesPrimaries(t *testing.T) {
	in := imaging.New(1, 1, 3)
	in.Set(0, 0, 0, 1)

	out, err := create(t, "hsv", map[string]any{"hueShift": 1.0 / 3.0}).Apply(in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !near(out.At(0, 0, 0), 0) || !near(out.At(0, 0, 1), 1) || !near(out.At(0, 0, 2), 0) {
		t.Fatalf("Expected pure green, got (%f, %f, %f)", out.At(0, 0, 0), out.At(0, 0, 1), out.At(0, 0, 2))
	}
}

func TestClampBrush(t *testing.T) {
	in := imaging.New(2, 1, 1)
	in.Data[0] = -0.5
	in.Data[1] = 1.5

	out, err := create(t, "clamp", nil).Apply(in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.Data[0] != 0 || out.Data[1] != 1 {
		t.Fatalf("Expected [0 1], got %v", out.Data)
	}
}

func TestSobelBrush_RGBOutput(t *testing.T) {
	out, err := create(t, "sobel", nil).Apply(ramp(6, 6))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.C != 3 || out.W != 6 || out.H != 6 {
		t.Fatalf("Expected 6x6x3, got %dx%dx%d", out.W, out.H, out.C)
	}
}

func TestSobelBrush_RejectsGray(t *testing.T) {
	_, err := create(t, "sobel", nil).Apply(imaging.New(4, 4, 1))
	if !errors.Is(err, imaging.ErrChannels) {
		t.Fatalf("Expected ErrChannels, got %v", err)
	}
}

func TestResizeBrush_AspectRatio(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]any
		w, h   int
	}{
		{"width only", map[string]any{"width": 4}, 4, 2},
		{"height only", map[string]any{"height": 8}, 16, 8},
		{"both", map[string]any{"width": 3, "height": 7}, 3, 7},
		{"nearest", map[string]any{"width": 4, "method": "nearest"}, 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := create(t, "resize", tt.params).Apply(ramp(8, 4))
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if out.W != tt.w || out.H != tt.h {
				t.Fatalf("Expected %dx%d, got %dx%d", tt.w, tt.h, out.W, out.H)
			}
		})
	}
}

func TestStampBrush_PaintsCentreColour(t *testing.T) {
	in := ramp(12, 12)
	out, err := create(t, "stamp", map[string]any{"size": 3, "spacing": 6, "opacity": 1.0}).Apply(in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// the dab centred at (3,3) fully covers its neighbourhood centre
	if !near(out.At(3, 3, 0), in.At(3, 3, 0)) {
		t.Fatalf("Expected %f at dab centre, got %f", in.At(3, 3, 0), out.At(3, 3, 0))
	}
	changed := false
	for i := range out.Data {
		if !near(out.Data[i], in.Data[i]) {
			changed = true
			break
		}
	}
	if !changed {
		t.Fatal("Expected stamping to alter a gradient")
	}
}

func TestStampBrush_ZeroOpacityIsIdentity(t *testing.T) {
	in := ramp(10, 10)
	out, err := create(t, "stamp", map[string]any{"opacity": 0}).Apply(in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for i := range in.Data {
		if out.Data[i] != in.Data[i] {
			t.Fatalf("Expected identity at %d, got %f vs %f", i, out.Data[i], in.Data[i])
		}
	}
}

func TestBrushFactories_RejectInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		brush  string
		params map[string]any
	}{
		{"box zero size", "box", map[string]any{"size": 0}},
		{"gaussian negative sigma", "gaussian", map[string]any{"sigma": -1.0}},
		{"hsv negative saturation", "hsv", map[string]any{"saturation": -0.5}},
		{"resize no dimensions", "resize", map[string]any{}},
		{"resize zero width", "resize", map[string]any{"width": 0}},
		{"resize bad method", "resize", map[string]any{"width": 2, "method": "cubic"}},
		{"stamp even size", "stamp", map[string]any{"size": 4}},
		{"stamp zero spacing", "stamp", map[string]any{"spacing": 0}},
		{"stamp opacity above one", "stamp", map[string]any{"opacity": 1.5}},
	}

	r := NewDefaultRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Create(tt.brush, tt.params); err == nil {
				t.Fatal("Expected error, got nil")
			}
		})
	}
}

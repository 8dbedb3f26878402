package imaging

import "testing"

func gradient(w, h int) *Image {
	im := New(w, h, 1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			im.Set(x, y, 0, float32(x)/float32(w-1))
		}
	}
	return im
}

func TestResizeNearest_Dimensions(t *testing.T) {
	out, err := ResizeNearest(New(4, 3, 3), 8, 6)
	if err != nil {
		t.Fatalf("ResizeNearest failed: %v", err)
	}
	if out.W != 8 || out.H != 6 || out.C != 3 {
		t.Errorf("Expected 8x6x3, got %dx%dx%d", out.W, out.H, out.C)
	}
}

func TestResizeNearest_UpscaleRepeatsPixels(t *testing.T) {
	im := New(2, 1, 1)
	im.Data = []float32{0, 1}
	out, err := ResizeNearest(im, 4, 1)
	if err != nil {
		t.Fatalf("ResizeNearest failed: %v", err)
	}
	want := []float32{0, 0, 1, 1}
	for i := range want {
		if out.Data[i] != want[i] {
			t.Errorf("index %d: expected %v, got %v", i, want[i], out.Data[i])
		}
	}
}

func TestResizeBilinear_ConstantStaysConstant(t *testing.T) {
	out, err := ResizeBilinear(filled(5, 5, 3, 0.3), 13, 7)
	if err != nil {
		t.Fatalf("ResizeBilinear failed: %v", err)
	}
	for i, v := range out.Data {
		if !near(v, 0.3) {
			t.Fatalf("index %d: expected 0.3, got %v", i, v)
		}
	}
}

func TestResizeBilinear_Interpolates(t *testing.T) {
	im := New(2, 1, 1)
	im.Data = []float32{0, 1}
	out, err := ResizeBilinear(im, 4, 1)
	if err != nil {
		t.Fatalf("ResizeBilinear failed: %v", err)
	}
	want := []float32{0, 0.25, 0.75, 1}
	for i := range want {
		if !near(out.Data[i], want[i]) {
			t.Errorf("index %d: expected %v, got %v", i, want[i], out.Data[i])
		}
	}
}

func TestResizeBilinear_Monotonic(t *testing.T) {
	out, err := ResizeBilinear(gradient(8, 2), 20, 2)
	if err != nil {
		t.Fatalf("ResizeBilinear failed: %v", err)
	}
	for x := 1; x < out.W; x++ {
		if out.At(x, 0, 0) < out.At(x-1, 0, 0) {
			t.Fatalf("Expected non-decreasing row at x=%d", x)
		}
	}
}

func TestResize_InvalidTarget(t *testing.T) {
	if _, err := ResizeNearest(New(2, 2, 1), 0, 2); err == nil {
		t.Error("Expected error for zero width")
	}
	if _, err := ResizeBilinear(New(2, 2, 1), 2, -1); err == nil {
		t.Error("Expected error for negative height")
	}
	if _, err := ResizeBilinear(New(0, 0, 1), 2, 2); err == nil {
		t.Error("Expected error for empty source")
	}
}

package imaging

import "testing"

func sum(im *Image) float32 {
	var s float32
	for _, v := range im.Data {
		s += v
	}
	return s
}

func TestBoxKernel(t *testing.T) {
	k, err := BoxKernel(3)
	if err != nil {
		t.Fatalf("BoxKernel failed: %v", err)
	}
	if k.W != 3 || k.H != 3 || k.C != 1 {
		t.Errorf("Expected 3x3x1, got %dx%dx%d", k.W, k.H, k.C)
	}
	if !near(sum(k), 1) {
		t.Errorf("Expected kernel to sum to 1, got %v", sum(k))
	}
	if _, err := BoxKernel(0); err == nil {
		t.Error("Expected error for zero size")
	}
}

func TestGaussianKernel_SizeAndNormalization(t *testing.T) {
	testCases := []struct {
		sigma float64
		width int
	}{
		{1, 7},
		{0.5, 3},
		{2, 13},
		{1.4, 9},
	}
	for _, tc := range testCases {
		k, err := GaussianKernel(tc.sigma)
		if err != nil {
			t.Fatalf("GaussianKernel(%v) failed: %v", tc.sigma, err)
		}
		if k.W != tc.width || k.H != tc.width {
			t.Errorf("sigma %v: expected width %d, got %dx%d", tc.sigma, tc.width, k.W, k.H)
		}
		if !near(sum(k), 1) {
			t.Errorf("sigma %v: expected sum 1, got %v", tc.sigma, sum(k))
		}
		c := k.W / 2
		if k.At(c, c, 0) < k.At(0, 0, 0) {
			t.Errorf("sigma %v: expected peak at centre", tc.sigma)
		}
	}
	if _, err := GaussianKernel(0); err == nil {
		t.Error("Expected error for zero sigma")
	}
}

func TestFixedKernels_Sums(t *testing.T) {
	testCases := []struct {
		name string
		k    *Image
		want float32
	}{
		{"highpass", HighpassKernel(), 0},
		{"sharpen", SharpenKernel(), 1},
		{"emboss", EmbossKernel(), 1},
		{"gx", GxKernel(), 0},
		{"gy", GyKernel(), 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sum(tc.k); got != tc.want {
				t.Errorf("Expected sum %v, got %v", tc.want, got)
			}
		})
	}
}

func TestL1NormalizeInPlace(t *testing.T) {
	im := New(2, 1, 2)
	im.Data = []float32{1, 3, 0, 0}
	L1NormalizeInPlace(im)
	want := []float32{0.25, 0.75, 0.5, 0.5}
	for i := range want {
		if !near(im.Data[i], want[i]) {
			t.Errorf("index %d: expected %v, got %v", i, want[i], im.Data[i])
		}
	}
}

func TestFeatureNormalizeInPlace(t *testing.T) {
	im := New(3, 1, 1)
	im.Data = []float32{-2, 0, 2}
	FeatureNormalizeInPlace(im)
	want := []float32{0, 0.5, 1}
	for i := range want {
		if !near(im.Data[i], want[i]) {
			t.Errorf("index %d: expected %v, got %v", i, want[i], im.Data[i])
		}
	}

	flat := filled(2, 2, 1, 0.7)
	FeatureNormalizeInPlace(flat)
	for i, v := range flat.Data {
		if v != 0 {
			t.Errorf("index %d: expected flat image to become 0, got %v", i, v)
		}
	}
}

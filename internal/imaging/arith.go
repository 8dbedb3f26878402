package imaging

import "fmt"

func combine(a, b *Image, op func(x, y float32) float32) (*Image, error) {
	if !a.SameShape(b) {
		return nil, fmt.Errorf("%dx%dx%d vs %dx%dx%d: %w", a.W, a.H, a.C, b.W, b.H, b.C, ErrShape)
	}
	out := New(a.W, a.H, a.C)
	for i := range out.Data {
		out.Data[i] = op(a.Data[i], b.Data[i])
	}
	return out, nil
}

// Add returns the pixel-wise sum of two images of equal shape
func Add(a, b *Image) (*Image, error) {
	return combine(a, b, func(x, y float32) float32 { return x + y })
}

// Sub returns the pixel-wise difference a - b of two images of equal shape
func Sub(a, b *Image) (*Image, error) {
	return combine(a, b, func(x, y float32) float32 { return x - y })
}

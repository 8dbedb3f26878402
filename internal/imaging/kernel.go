package imaging

import (
	"fmt"
	"math"
)

// L1NormalizeInPlace scales each channel so its values sum to one.
// A channel summing to zero becomes uniform.
func L1NormalizeInPlace(im *Image) {
	n := im.W * im.H
	for c := 0; c < im.C; c++ {
		plane := im.Plane(c)
		var sum float32
		for _, v := range plane {
			sum += v
		}
		for i := range plane {
			if sum != 0 {
				plane[i] /= sum
			} else {
				plane[i] = 1 / float32(n)
			}
		}
	}
}

// FeatureNormalizeInPlace rescales the whole image linearly so that its
// minimum maps to 0 and its maximum to 1. A flat image becomes all zeros.
func FeatureNormalizeInPlace(im *Image) {
	if len(im.Data) == 0 {
		return
	}
	lo, hi := im.Data[0], im.Data[0]
	for _, v := range im.Data {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	for i, v := range im.Data {
		if span != 0 {
			im.Data[i] = (v - lo) / span
		} else {
			im.Data[i] = 0
		}
	}
}

// BoxKernel returns a w x w averaging kernel
func BoxKernel(w int) (*Image, error) {
	if w <= 0 {
		return nil, fmt.Errorf("box kernel size must be positive, got %d", w)
	}
	k := New(w, w, 1)
	for i := range k.Data {
		k.Data[i] = 1 / float32(w*w)
	}
	return k, nil
}

// GaussianKernel returns a normalized gaussian kernel. Its width is
// ceil(6*sigma), bumped to the next odd number.
func GaussianKernel(sigma float64) (*Image, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("gaussian sigma must be positive, got %f", sigma)
	}
	w := int(math.Ceil(sigma * 6))
	if w%2 == 0 {
		w++
	}
	r := w / 2
	k := New(w, w, 1)
	for j := -r; j <= r; j++ {
		for i := -r; i <= r; i++ {
			v := 1 / (2 * math.Pi * sigma * sigma) * math.Exp(-float64(i*i+j*j)/(2*sigma*sigma))
			k.Set(i+r, j+r, 0, float32(v))
		}
	}
	L1NormalizeInPlace(k)
	return k, nil
}

func kernel3(values [9]float32) *Image {
	k := New(3, 3, 1)
	copy(k.Data, values[:])
	return k
}

// HighpassKernel returns the 4-neighbour laplacian edge kernel
func HighpassKernel() *Image {
	return kernel3([9]float32{
		0, -1, 0,
		-1, 4, -1,
		0, -1, 0,
	})
}

// SharpenKernel returns the identity plus the highpass kernel
func SharpenKernel() *Image {
	return kernel3([9]float32{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	})
}

// EmbossKernel returns a diagonal relief kernel
func EmbossKernel() *Image {
	return kernel3([9]float32{
		-2, -1, 0,
		-1, 1, 1,
		0, 1, 2,
	})
}

// GxKernel returns the horizontal sobel kernel
func GxKernel() *Image {
	return kernel3([9]float32{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	})
}

// GyKernel returns the vertical sobel kernel
func GyKernel() *Image {
	return kernel3([9]float32{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	})
}

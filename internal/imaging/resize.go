package imaging

import (
	"fmt"
	"math"
)

func checkResize(im *Image, w, h int) error {
	if im.Empty() {
		return fmt.Errorf("resize: %w", ErrEmpty)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("resize target must be positive, got %dx%d", w, h)
	}
	return nil
}

// ResizeNearest scales the image to w x h using nearest-neighbour sampling
func ResizeNearest(im *Image, w, h int) (*Image, error) {
	if err := checkResize(im, w, h); err != nil {
		return nil, err
	}
	out := New(w, h, im.C)
	sx := float64(im.W) / float64(w)
	sy := float64(im.H) / float64(h)
	parallelFor(h, func(y int) {
		srcY := int(math.Round(-0.5 + sy*(float64(y)+0.5)))
		for x := 0; x < w; x++ {
			srcX := int(math.Round(-0.5 + sx*(float64(x)+0.5)))
			for c := 0; c < im.C; c++ {
				out.Data[x+y*w+c*w*h] = im.At(srcX, srcY, c)
			}
		}
	})
	return out, nil
}

// bilinear samples channel c at a fractional coordinate
func (im *Image) bilinear(fx, fy float64, c int) float32 {
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	dx := float32(fx - float64(x0))
	dy := float32(fy - float64(y0))

	ul := im.At(x0, y0, c)
	ur := im.At(x0+1, y0, c)
	dl := im.At(x0, y0+1, c)
	dr := im.At(x0+1, y0+1, c)

	top := ul*(1-dx) + ur*dx
	bottom := dl*(1-dx) + dr*dx
	return top*(1-dy) + bottom*dy
}

// ResizeBilinear scales the image to w x h using bilinear interpolation
func ResizeBilinear(im *Image, w, h int) (*Image, error) {
	if err := checkResize(im, w, h); err != nil {
		return nil, err
	}
	out := New(w, h, im.C)
	sx := float64(im.W) / float64(w)
	sy := float64(im.H) / float64(h)
	parallelFor(h, func(y int) {
		fy := -0.5 + sy*(float64(y)+0.5)
		for x := 0; x < w; x++ {
			fx := -0.5 + sx*(float64(x)+0.5)
			for c := 0; c < im.C; c++ {
				out.Data[x+y*w+c*w*h] = im.bilinear(fx, fy, c)
			}
		}
	})
	return out, nil
}

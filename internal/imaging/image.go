package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

var (
	// ErrChannels is returned when an operation does not support the channel count of its input
	ErrChannels = errors.New("unsupported channel count")
	// ErrShape is returned when two images that must match in size do not
	ErrShape = errors.New("image shapes differ")
	// ErrEmpty is returned for images with no pixels
	ErrEmpty = errors.New("image is empty")
)

// Image is a planar float32 pixel buffer.
// Channel c of pixel (x, y) is stored at index x + y*W + c*W*H.
// Values are normalized to [0,1]; intermediate results may leave that range.
type Image struct {
	W    int
	H    int
	C    int
	Data []float32
}

// New allocates a zeroed image. Negative dimensions are treated as zero.
func New(w, h, c int) *Image {
	w, h, c = max(w, 0), max(h, 0), max(c, 0)
	return &Image{
		W:    w,
		H:    h,
		C:    c,
		Data: make([]float32, w*h*c),
	}
}

// Empty reports whether the image holds no pixels
func (im *Image) Empty() bool {
	return im == nil || im.W == 0 || im.H == 0 || im.C == 0
}

// SameShape reports whether both images have identical dimensions and channel counts
func (im *Image) SameShape(other *Image) bool {
	return im.W == other.W && im.H == other.H && im.C == other.C
}

func (im *Image) clampXY(x, y int) (int, int) {
	if x < 0 {
		x = 0
	} else if x >= im.W {
		x = im.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= im.H {
		y = im.H - 1
	}
	return x, y
}

// At returns the value of channel c at (x, y). Coordinates outside the grid
// are clamped to the nearest edge pixel.
func (im *Image) At(x, y, c int) float32 {
	x, y = im.clampXY(x, y)
	return im.Data[x+y*im.W+c*im.W*im.H]
}

// Set writes channel c at (x, y), clamping the coordinate like At.
func (im *Image) Set(x, y, c int, v float32) {
	x, y = im.clampXY(x, y)
	im.Data[x+y*im.W+c*im.W*im.H] = v
}

// Plane returns the slice backing channel c
func (im *Image) Plane(c int) []float32 {
	n := im.W * im.H
	return im.Data[c*n : (c+1)*n]
}

// Copy returns a deep copy of the image
func (im *Image) Copy() *Image {
	out := New(im.W, im.H, im.C)
	copy(out.Data, im.Data)
	return out
}

// ClampInPlace limits every value to [0,1]
func ClampInPlace(im *Image) {
	for i, v := range im.Data {
		if v < 0 {
			im.Data[i] = 0
		} else if v > 1 {
			im.Data[i] = 1
		}
	}
}

// ShiftInPlace adds v to every value of channel c
func ShiftInPlace(im *Image, c int, v float32) {
	plane := im.Plane(c)
	for i := range plane {
		plane[i] += v
	}
}

// ScaleInPlace multiplies every value of channel c by v
func ScaleInPlace(im *Image, c int, v float32) {
	plane := im.Plane(c)
	for i := range plane {
		plane[i] *= v
	}
}

// FromImage converts a decoded image into a float image. Grayscale sources
// produce one channel, everything else produces RGB. Alpha is dropped; the
// premultiplied colour is kept, which composites transparent pixels over black.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		out := New(w, h, 1)
		parallelFor(h, func(y int) {
			for x := 0; x < w; x++ {
				g := color.Gray16Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
				out.Data[x+y*w] = float32(g.Y) / 0xffff
			}
		})
		return out
	}

	out := New(w, h, 3)
	n := w * h
	parallelFor(h, func(y int) {
		for x := 0; x < w; x++ {
			r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := x + y*w
			out.Data[i] = float32(r) / 0xffff
			out.Data[i+n] = float32(g) / 0xffff
			out.Data[i+2*n] = float32(bl) / 0xffff
		}
	})
	return out
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}

// ToImage converts the float image to an 8-bit image suitable for encoding.
// Only 1 and 3 channel images can be converted.
func ToImage(im *Image) (image.Image, error) {
	if im.Empty() {
		return nil, ErrEmpty
	}
	w, h := im.W, im.H
	switch im.C {
	case 1:
		out := image.NewGray(image.Rect(0, 0, w, h))
		parallelFor(h, func(y int) {
			for x := 0; x < w; x++ {
				out.Pix[y*out.Stride+x] = to8(im.Data[x+y*w])
			}
		})
		return out, nil
	case 3:
		out := image.NewRGBA(image.Rect(0, 0, w, h))
		n := w * h
		parallelFor(h, func(y int) {
			for x := 0; x < w; x++ {
				i := x + y*w
				o := y*out.Stride + x*4
				out.Pix[o] = to8(im.Data[i])
				out.Pix[o+1] = to8(im.Data[i+n])
				out.Pix[o+2] = to8(im.Data[i+2*n])
				out.Pix[o+3] = 255
			}
		})
		return out, nil
	default:
		return nil, fmt.Errorf("cannot convert %d channel image: %w", im.C, ErrChannels)
	}
}

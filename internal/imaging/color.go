package imaging

import (
	"fmt"
	"math"
)

// Luma weights used for RGB to grayscale conversion
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

func requireRGB(im *Image, op string) error {
	if im.Empty() {
		return fmt.Errorf("%s: %w", op, ErrEmpty)
	}
	if im.C != 3 {
		return fmt.Errorf("%s needs 3 channels, got %d: %w", op, im.C, ErrChannels)
	}
	return nil
}

// Grayscale converts an RGB image to a single luma channel
func Grayscale(im *Image) (*Image, error) {
	if err := requireRGB(im, "grayscale"); err != nil {
		return nil, err
	}
	n := im.W * im.H
	out := New(im.W, im.H, 1)
	for i := 0; i < n; i++ {
		out.Data[i] = lumaR*im.Data[i] + lumaG*im.Data[i+n] + lumaB*im.Data[i+2*n]
	}
	return out, nil
}

// RGBToHSV returns a copy of an RGB image with channels replaced by hue,
// saturation and value, each in [0,1).
func RGBToHSV(im *Image) (*Image, error) {
	if err := requireRGB(im, "rgb to hsv"); err != nil {
		return nil, err
	}
	n := im.W * im.H
	out := New(im.W, im.H, 3)
	for i := 0; i < n; i++ {
		r, g, b := im.Data[i], im.Data[i+n], im.Data[i+2*n]

		v := max(r, g, b)
		m := min(r, g, b)
		c := v - m

		var s float32
		if v > 0 {
			s = c / v
		}

		var hh float32
		if c != 0 {
			switch v {
			case r:
				hh = (g - b) / c
			case g:
				hh = (b-r)/c + 2
			default:
				hh = (r-g)/c + 4
			}
		}
		h := hh / 6
		if h < 0 {
			h += 1
		}
		if h >= 1 {
			h -= 1
		}

		out.Data[i] = h
		out.Data[i+n] = s
		out.Data[i+2*n] = v
	}
	return out, nil
}

// HSVToRGB is the inverse of RGBToHSV
func HSVToRGB(im *Image) (*Image, error) {
	if err := requireRGB(im, "hsv to rgb"); err != nil {
		return nil, err
	}
	n := im.W * im.H
	out := New(im.W, im.H, 3)
	for i := 0; i < n; i++ {
		h, s, v := im.Data[i], im.Data[i+n], im.Data[i+2*n]

		c := v * s
		m := v - c
		hh := h * 6
		x := c * float32(1-math.Abs(math.Mod(float64(hh), 2)-1))

		var r, g, b float32
		switch {
		case c == 0:
			r, g, b = 0, 0, 0
		case hh < 1:
			r, g, b = c, x, 0
		case hh < 2:
			r, g, b = x, c, 0
		case hh < 3:
			r, g, b = 0, c, x
		case hh < 4:
			r, g, b = 0, x, c
		case hh < 5:
			r, g, b = x, 0, c
		default:
			r, g, b = c, 0, x
		}

		out.Data[i] = r + m
		out.Data[i+n] = g + m
		out.Data[i+2*n] = b + m
	}
	return out, nil
}

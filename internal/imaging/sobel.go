package imaging

import (
	"fmt"
	"math"
)

// Sobel returns the gradient magnitude and direction (radians) of im.
// Both results have a single channel.
func Sobel(im *Image) (magnitude, direction *Image, err error) {
	gx, err := Convolve(im, GxKernel(), false)
	if err != nil {
		return nil, nil, fmt.Errorf("sobel gx: %w", err)
	}
	gy, err := Convolve(im, GyKernel(), false)
	if err != nil {
		return nil, nil, fmt.Errorf("sobel gy: %w", err)
	}

	magnitude = New(im.W, im.H, 1)
	direction = New(im.W, im.H, 1)
	for i := range gx.Data {
		x, y := float64(gx.Data[i]), float64(gy.Data[i])
		magnitude.Data[i] = float32(math.Hypot(x, y))
		direction.Data[i] = float32(math.Atan2(y, x))
	}
	return magnitude, direction, nil
}

// ColorizeSobel renders edges as colour: hue follows the gradient direction,
// saturation and value follow its magnitude.
func ColorizeSobel(im *Image) (*Image, error) {
	if err := requireRGB(im, "colorize sobel"); err != nil {
		return nil, err
	}
	mag, dir, err := Sobel(im)
	if err != nil {
		return nil, err
	}
	FeatureNormalizeInPlace(mag)
	FeatureNormalizeInPlace(dir)

	n := im.W * im.H
	hsv := New(im.W, im.H, 3)
	copy(hsv.Data[:n], dir.Data)
	copy(hsv.Data[n:2*n], mag.Data)
	copy(hsv.Data[2*n:], mag.Data)
	return HSVToRGB(hsv)
}

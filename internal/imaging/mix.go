package imaging

import "fmt"

// DabInPlace stamps one brush dab into dst. The mask's first channel is the
// opacity; it is centred on (cx, cy) and paints the colour src holds at
// (cx, cy). Footprint pixels outside dst are skipped.
func DabInPlace(dst, src, mask *Image, cx, cy int, opacity float32) {
	ox := cx - mask.W/2
	oy := cy - mask.H/2
	n := dst.W * dst.H
	for by := 0; by < mask.H; by++ {
		y := oy + by
		if y < 0 || y >= dst.H {
			continue
		}
		for bx := 0; bx < mask.W; bx++ {
			x := ox + bx
			if x < 0 || x >= dst.W {
				continue
			}
			alpha := mask.Data[bx+by*mask.W] * opacity
			if alpha == 0 {
				continue
			}
			i := x + y*dst.W
			for c := 0; c < dst.C; c++ {
				dst.Data[i+c*n] = dst.Data[i+c*n]*(1-alpha) + src.At(cx, cy, c)*alpha
			}
		}
	}
}

// Mix blends the colour under the centre of the brush into base across the
// brush footprint anchored at the image origin.
func Mix(base, brush *Image) (*Image, error) {
	if base.Empty() {
		return nil, fmt.Errorf("mix: %w", ErrEmpty)
	}
	if brush.Empty() {
		return nil, fmt.Errorf("mix brush: %w", ErrEmpty)
	}
	out := base.Copy()
	DabInPlace(out, base, brush, brush.W/2, brush.H/2, 1)
	return out, nil
}

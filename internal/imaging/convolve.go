package imaging

import "fmt"

// Convolve applies kernel k to im with clamp-to-edge borders. The kernel must
// have one channel (shared by all image channels) or as many channels as the
// image. With preserve the output keeps the image's channels; without it the
// per-channel responses are summed into a single channel.
func Convolve(im, k *Image, preserve bool) (*Image, error) {
	if im.Empty() {
		return nil, fmt.Errorf("convolve: %w", ErrEmpty)
	}
	if k.Empty() {
		return nil, fmt.Errorf("convolve kernel: %w", ErrEmpty)
	}
	if k.C != 1 && k.C != im.C {
		return nil, fmt.Errorf("kernel has %d channels, image has %d: %w", k.C, im.C, ErrChannels)
	}

	outC := 1
	if preserve {
		outC = im.C
	}
	out := New(im.W, im.H, outC)
	w, h := im.W, im.H
	rx, ry := k.W/2, k.H/2

	parallelFor(h, func(y int) {
		for x := 0; x < w; x++ {
			var total float32
			for c := 0; c < im.C; c++ {
				kc := 0
				if k.C != 1 {
					kc = c
				}
				var sum float32
				for b := 0; b < k.H; b++ {
					for a := 0; a < k.W; a++ {
						sum += im.At(x-rx+a, y-ry+b, c) * k.Data[a+b*k.W+kc*k.W*k.H]
					}
				}
				if preserve {
					out.Data[x+y*w+c*w*h] = sum
				}
				total += sum
			}
			if !preserve {
				out.Data[x+y*w] = total
			}
		}
	})
	return out, nil
}

package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	_ "image/gif"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/jo-hoe/gobrush/internal/imaging"
)

// DecodeOptions configures decoding of inputs without an intrinsic size
type DecodeOptions struct {
	SVGFallbackWidth  int
	SVGFallbackHeight int
}

// Decode parses JPEG, PNG, GIF, BMP, TIFF, WebP or SVG data. It returns the
// image and the detected format name.
func Decode(data []byte, opts DecodeOptions) (*imaging.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("failed to decode image: no data")
	}

	if isSVG(data) {
		w, h, ok := svgSize(data)
		if !ok {
			w, h = opts.SVGFallbackWidth, opts.SVGFallbackHeight
		}
		if w <= 0 || h <= 0 {
			return nil, "svg", fmt.Errorf("SVG has no explicit size and no fallback size is configured")
		}
		src, err := rasterizeSVG(data, w, h)
		if err != nil {
			return nil, "svg", err
		}
		return imaging.FromImage(src), "svg", nil
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return imaging.FromImage(src), format, nil
}

// Encode writes img in the given format. quality only affects JPEG.
func Encode(w io.Writer, img *imaging.Image, format Format, quality int) error {
	src, err := imaging.ToImage(img)
	if err != nil {
		return fmt.Errorf("failed to convert image: %w", err)
	}

	switch format {
	case JPEG:
		err = jpeg.Encode(w, src, &jpeg.Options{Quality: quality})
	case PNG:
		err = png.Encode(w, src)
	case BMP:
		err = bmp.Encode(w, src)
	case TIFF:
		err = tiff.Encode(w, src, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode image as %s: %w", format, err)
	}
	return nil
}

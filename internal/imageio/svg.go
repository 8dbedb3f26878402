package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"regexp"
	"strconv"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

var (
	svgTagPattern  = regexp.MustCompile(`(?is)<svg\b[^>]*>`)
	svgSizePattern = regexp.MustCompile(`(?i)\s(width|height)\s*=\s*["']\s*([0-9]+)`)
)

// isSVG performs a lightweight detection of SVG content in the leading bytes
func isSVG(data []byte) bool {
	head := data[:min(len(data), 4096)]
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

// svgSize extracts explicit integer width and height attributes from the
// root svg element. viewBox is not treated as a pixel size.
func svgSize(data []byte) (int, int, bool) {
	tag := svgTagPattern.Find(data[:min(len(data), 8192)])
	if tag == nil {
		return 0, 0, false
	}
	var w, h int
	for _, m := range svgSizePattern.FindAllSubmatch(tag, -1) {
		v, err := strconv.Atoi(string(m[2]))
		if err != nil {
			continue
		}
		switch string(bytes.ToLower(m[1])) {
		case "width":
			w = v
		case "height":
			h = v
		}
	}
	return w, h, w > 0 && h > 0
}

// rasterizeSVG renders SVG data onto a white canvas of the given size
func rasterizeSVG(data []byte, w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid target dimensions for SVG rendering: %dx%d", w, h)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return dst, nil
}

package imageio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an encodable output format
type Format string

const (
	JPEG Format = "jpg"
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// Formats lists the supported output formats
var Formats = []Format{JPEG, PNG, BMP, TIFF}

// ParseFormat maps a format name or file extension to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "jpg", "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return "", fmt.Errorf("unsupported output format: %q", s)
}

// ContentType returns the MIME type of encoded images in this format
func (f Format) ContentType() string {
	switch f {
	case PNG:
		return "image/png"
	case BMP:
		return "image/bmp"
	case TIFF:
		return "image/tiff"
	default:
		return "image/jpeg"
	}
}

// outputPath resolves the file a result named name is written to. Names that
// already end in a supported extension keep it; others get the default one.
func outputPath(dir, name string, def Format) (string, Format) {
	if f, err := ParseFormat(filepath.Ext(name)); err == nil && filepath.Ext(name) != "" {
		return filepath.Join(dir, name), f
	}
	return filepath.Join(dir, name+"."+string(def)), def
}

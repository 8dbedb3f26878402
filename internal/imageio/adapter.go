package imageio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/jo-hoe/gobrush/internal/imaging"
	"github.com/jo-hoe/gobrush/internal/pipeline"
)

// Options configures an Adapter
type Options struct {
	OutputDir string // prefix for output names, may be empty
	Format    Format // format used when a name has no known extension
	Quality   int    // JPEG quality 1-100
	Decode    DecodeOptions
}

// Adapter loads and saves images through an afero filesystem
type Adapter struct {
	fs   afero.Fs
	opts Options
}

// NewAdapter creates an adapter. Zero options fall back to JPEG at quality 100.
func NewAdapter(fs afero.Fs, opts Options) *Adapter {
	if opts.Format == "" {
		opts.Format = JPEG
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = 100
	}
	return &Adapter{fs: fs, opts: opts}
}

// Load reads and decodes the image at path. Failures are *pipeline.LoadError.
func (a *Adapter) Load(ctx context.Context, path string) (*imaging.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, &pipeline.LoadError{Path: path, Err: err}
	}

	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		slog.Error("imageio: failed to read input", "path", path, "error", err)
		return nil, &pipeline.LoadError{Path: path, Err: err}
	}

	img, format, err := Decode(data, a.opts.Decode)
	if err != nil {
		slog.Error("imageio: failed to decode input", "path", path, "error", err)
		return nil, &pipeline.LoadError{Path: path, Err: err}
	}

	slog.Debug("imageio: loaded image",
		"path", path,
		"format", format,
		"size", humanize.Bytes(uint64(len(data))),
		"width", img.W,
		"height", img.H,
		"channels", img.C)
	return img, nil
}

// Path returns the file a result named name is written to and its format
func (a *Adapter) Path(name string) (string, Format) {
	return outputPath(a.opts.OutputDir, name, a.opts.Format)
}

// Save encodes img and writes it under name. Failures are *pipeline.SaveError.
func (a *Adapter) Save(ctx context.Context, img *imaging.Image, name string) error {
	if err := ctx.Err(); err != nil {
		return &pipeline.SaveError{Name: name, Err: err}
	}
	if name == "" {
		return &pipeline.SaveError{Name: name, Err: fmt.Errorf("output name cannot be empty")}
	}

	file, format := a.Path(name)

	var buf bytes.Buffer
	if err := Encode(&buf, img, format, a.opts.Quality); err != nil {
		slog.Error("imageio: failed to encode output", "name", name, "error", err)
		return &pipeline.SaveError{Name: name, Err: err}
	}

	if err := a.ensureDir(filepath.Dir(file)); err != nil {
		return &pipeline.SaveError{Name: name, Err: err}
	}
	if err := afero.WriteFile(a.fs, file, buf.Bytes(), 0644); err != nil {
		slog.Error("imageio: failed to write output", "file", file, "error", err)
		return &pipeline.SaveError{Name: name, Err: err}
	}

	slog.Info("imageio: saved image",
		"file", file,
		"format", string(format),
		"size", humanize.Bytes(uint64(buf.Len())))
	return nil
}

func (a *Adapter) ensureDir(dir string) error {
	exists, err := afero.DirExists(a.fs, dir)
	if err != nil {
		return fmt.Errorf("failed to check directory %s: %w", dir, err)
	}
	if exists {
		return nil
	}
	if err := a.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

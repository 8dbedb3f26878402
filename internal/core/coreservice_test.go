package core

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/jo-hoe/gobrush/internal/config"
	"github.com/jo-hoe/gobrush/internal/database"
	"github.com/jo-hoe/gobrush/internal/imageio"
	"github.com/jo-hoe/gobrush/internal/imaging"
	"github.com/jo-hoe/gobrush/internal/pipeline"
)

func encodedTestImage(t *testing.T, format imageio.Format) []byte {
	t.Helper()
	im := imaging.New(16, 12, 3)
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			im.Set(x, y, 0, float32(x)/float32(im.W))
			im.Set(x, y, 1, float32(y)/float32(im.H))
			im.Set(x, y, 2, 0.5)
		}
	}
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, im, format, 90); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func newTestFs(t *testing.T, paths ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, p := range paths {
		if err := afero.WriteFile(fs, p, encodedTestImage(t, imageio.JPEG), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}
	return fs
}

func newTestCoreService(t *testing.T, yaml string, fs afero.Fs) *CoreService {
	t.Helper()
	cfg, err := config.Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("failed to parse config: %v", err)
	}
	svc, err := NewCoreService(context.Background(), cfg, fs)
	if err != nil {
		t.Fatalf("NewCoreService error: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestRun_DefaultJobs(t *testing.T) {
	fs := newTestFs(t, filepath.Join("data", "flower.jpg"), filepath.Join("data", "sunset_small.jpg"))
	svc := newTestCoreService(t, "", fs)

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(report.Completed) != 2 {
		t.Fatalf("Expected 2 completed jobs, got %d", len(report.Completed))
	}
	for _, out := range []string{"flower.jpg", "sunset.jpg"} {
		if exists, _ := afero.Exists(fs, out); !exists {
			t.Errorf("Expected %s to be written", out)
		}
	}
	if names := svc.ChainNames(); len(names) != 3 || names[1] != "stamp" {
		t.Errorf("Expected default chain, got %v", names)
	}
}

func TestRun_StopsAtFirstLoadFailure(t *testing.T) {
	fs := newTestFs(t, "a.jpg", "c.jpg")
	svc := newTestCoreService(t, `
jobs:
  - {input: a.jpg, output: a}
  - {input: b.jpg, output: b}
  - {input: c.jpg, output: c}
brushes:
  - name: grayscale
output:
  format: png
database:
  type: sqlite
`, fs)

	report, err := svc.Run(context.Background())
	var le *pipeline.LoadError
	if !errors.As(err, &le) || le.Path != "b.jpg" {
		t.Fatalf("Expected LoadError for b.jpg, got %v", err)
	}
	if len(report.Completed) != 1 {
		t.Fatalf("Expected 1 completed job, got %d", len(report.Completed))
	}
	if exists, _ := afero.Exists(fs, "a.png"); !exists {
		t.Error("Expected a.png to remain")
	}
	if exists, _ := afero.Exists(fs, "c.png"); exists {
		t.Error("Expected c.png not to be written")
	}

	runs, err := svc.Database().GetRuns()
	if err != nil {
		t.Fatalf("GetRuns error: %v", err)
	}
	if len(runs) != 1 || runs[0].Status != database.StatusFailed {
		t.Fatalf("Expected one failed run, got %+v", runs)
	}
}

func TestRun_FilterFailureIsFilterError(t *testing.T) {
	fs := afero.NewMemMapFs()
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, imaging.New(4, 4, 1), imageio.PNG, 0); err != nil {
		t.Fatalf("failed to encode gray image: %v", err)
	}
	if err := afero.WriteFile(fs, "gray.png", buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write gray.png: %v", err)
	}

	svc := newTestCoreService(t, `
jobs:
  - {input: gray.png, output: g}
brushes:
  - name: sobel
`, fs)

	_, err := svc.Run(context.Background())
	var fe *pipeline.FilterError
	if !errors.As(err, &fe) || fe.Brush != "sobel" {
		t.Fatalf("Expected FilterError from sobel, got %v", err)
	}
	if exists, _ := afero.Exists(fs, "g.jpg"); exists {
		t.Error("Expected no output after filter failure")
	}
}

func TestNewCoreService_UnknownBrush(t *testing.T) {
	cfg, err := config.Parse([]byte("brushes:\n  - name: watercolor\n"))
	if err != nil {
		t.Fatalf("failed to parse config: %v", err)
	}
	if _, err := NewCoreService(context.Background(), cfg, afero.NewMemMapFs()); err == nil {
		t.Fatal("Expected error for unknown brush")
	}
}

func TestNewCoreService_UnreachableCacheIsTolerated(t *testing.T) {
	fs := newTestFs(t, "a.jpg")
	svc := newTestCoreService(t, `
jobs:
  - {input: a.jpg, output: a}
cache:
  type: redis
  address: 127.0.0.1:1
`, fs)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Expected run without cache to succeed, got %v", err)
	}
}

func TestProcess(t *testing.T) {
	svc := newTestCoreService(t, "brushes:\n  - name: emboss\ncache:\n  type: memory\n", afero.NewMemMapFs())
	input := encodedTestImage(t, imageio.PNG)

	first, err := svc.Process(context.Background(), input, imageio.PNG)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	second, err := svc.Process(context.Background(), input, imageio.PNG)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("Expected identical output for identical input")
	}

	_, err = svc.Process(context.Background(), []byte("nope"), imageio.PNG)
	var le *pipeline.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Expected LoadError for undecodable upload, got %v", err)
	}
}

func TestSetupLogging(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	if err := SetupLogging(&buf, "warn"); err != nil {
		t.Fatalf("SetupLogging error: %v", err)
	}
	slog.Info("hidden")
	slog.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("Expected only warn output, got %q", buf.String())
	}
	if err := SetupLogging(&buf, "verbose"); err == nil {
		t.Fatal("Expected error for unknown level")
	}
}

func TestParseLogLevel_MatchesConfigLevels(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		if _, err := ParseLogLevel(level); err != nil {
			t.Errorf("Expected %q to parse, got %v", level, err)
		}
	}
	for _, level := range []string{"warning", "WARN", "trace"} {
		if _, err := ParseLogLevel(level); err == nil {
			t.Errorf("Expected %q to be rejected", level)
		}
	}
}

package brush

import (
	"testing"

	"github.com/jo-hoe/gobrush/internal/imaging"
)

type nopBrush struct{ name string }

func (b *nopBrush) Name() string { return b.name }

func (b *nopBrush) Apply(img *imaging.Image) (*imaging.Image, error) {
	return img.Copy(), nil
}

func nopFactory(params map[string]any) (Brush, error) {
	return &nopBrush{name: "nop"}, nil
}

func TestRegistry_RegisterAndCreate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("nop", nopFactory); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !r.IsRegistered("nop") {
		t.Fatal("Expected nop to be registered")
	}

	b, err := r.Create("nop", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if b.Name() != "nop" {
		t.Fatalf("Expected name nop, got %s", b.Name())
	}
}

func TestRegistry_RegisterRejectsInvalid(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("", nopFactory); err == nil {
		t.Fatal("Expected error for empty name")
	}
	if err := r.Register("nop", nil); err == nil {
		t.Fatal("Expected error for nil factory")
	}
	if err := r.Register("nop", nopFactory); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := r.Register("nop", nopFactory); err == nil {
		t.Fatal("Expected error for duplicate registration")
	}
}

func TestRegistry_CreateUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create("missing", nil); err == nil {
		t.Fatal("Expected error for unknown brush")
	}
}

func TestRegistry_CreateWrapsFactoryError(t *testing.T) {
	r := NewDefaultRegistry()
	_, err := r.Create("box", map[string]any{"size": -1})
	if err == nil {
		t.Fatal("Expected error for invalid params")
	}
}

func TestNewDefaultRegistry_Names(t *testing.T) {
	expected := []string{
		"box", "clamp", "emboss", "gaussian", "grayscale", "highpass",
		"hsv", "resize", "sharpen", "sobel", "stamp",
	}

	names := NewDefaultRegistry().Names()
	if len(names) != len(expected) {
		t.Fatalf("Expected %d brushes, got %d (%v)", len(expected), len(names), names)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("Expected %s at position %d, got %s", name, i, names[i])
		}
	}
}

func TestRegistries_AreIndependent(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	if err := a.Register("nop", nopFactory); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if b.IsRegistered("nop") {
		t.Fatal("Expected registration to stay local to its registry")
	}
}

func TestDefaultConfigs_BuildWithDefaultRegistry(t *testing.T) {
	chain, err := NewChain(NewDefaultRegistry(), DefaultConfigs())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if chain.Len() != 3 {
		t.Fatalf("Expected 3 brushes, got %d", chain.Len())
	}
}

package brush

import (
	"fmt"
	"sort"
)

// Registry maps brush names to factories. Registries are plain values;
// build one with NewDefaultRegistry and pass it where brushes are created.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a brush factory to the registry
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("brush name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("brush factory cannot be nil")
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("brush %s is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Create instantiates a brush by name with the given parameters
func (r *Registry) Create(name string, params map[string]any) (Brush, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown brush: %s", name)
	}

	b, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create brush %s: %w", name, err)
	}
	return b, nil
}

// IsRegistered checks if a brush with the given name is registered
func (r *Registry) IsRegistered(name string) bool {
	_, exists := r.factories[name]
	return exists
}

// Names returns the registered brush names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDefaultRegistry returns a registry with every built-in brush
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	builtins := map[string]Factory{
		"box":       NewBoxBrush,
		"gaussian":  NewGaussianBrush,
		"sharpen":   NewSharpenBrush,
		"emboss":    NewEmbossBrush,
		"highpass":  NewHighpassBrush,
		"sobel":     NewSobelBrush,
		"grayscale": NewGrayscaleBrush,
		"hsv":       NewHSVBrush,
		"resize":    NewResizeBrush,
		"stamp":     NewStampBrush,
		"clamp":     NewClampBrush,
	}
	for name, factory := range builtins {
		if err := r.Register(name, factory); err != nil {
			panic(fmt.Sprintf("failed to register brush %s: %v", name, err))
		}
	}
	return r
}

// DefaultConfigs is the chain used when no brushes are configured:
// a light blur, painterly dabs, then sharpening.
func DefaultConfigs() []Config {
	return []Config{
		{Name: "gaussian", Params: map[string]any{"sigma": 1.0}},
		{Name: "stamp", Params: map[string]any{"size": 9, "sigma": 2.0, "spacing": 6, "opacity": 0.8}},
		{Name: "sharpen"},
	}
}

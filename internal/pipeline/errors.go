package pipeline

import "fmt"

// LoadError reports that an input could not be read or decoded
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load image %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FilterError reports that a brush could not process an image.
// Brush and Index are empty/-1 when the failing step is unknown.
type FilterError struct {
	Brush string
	Index int
	Err   error
}

func (e *FilterError) Error() string {
	if e.Brush == "" {
		return fmt.Sprintf("failed to apply brushes: %v", e.Err)
	}
	return fmt.Sprintf("failed to apply brush %s (index %d): %v", e.Brush, e.Index, e.Err)
}

func (e *FilterError) Unwrap() error { return e.Err }

// SaveError reports that a result could not be encoded or written
type SaveError struct {
	Name string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save image %s: %v", e.Name, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

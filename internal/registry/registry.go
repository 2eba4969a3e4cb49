// Package registry provides a global registry for image renderers.
// Renderers register themselves in init() functions, allowing the CLI and
// the web surface to pick an output format by name without hardcoded
// dependencies.
package registry

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/vovakirdan/affine-affinity/internal/affine"
)

// ErrUnknownFormat is returned by Create for formats nobody registered.
var ErrUnknownFormat = errors.New("registry: unknown format")

// Kind tells which of the two level images a scene shows.
type Kind string

const (
	KindGoal Kind = "goal"
	KindLive Kind = "live"
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindGoal, KindLive:
		return Kind(s), nil
	}
	return "", fmt.Errorf("registry: unknown image kind %q", s)
}

// Scene is one mascot image: which level, which side and the transform
// applied to the mascot about its centre.
type Scene struct {
	Level     int
	Kind      Kind
	Transform affine.VisualTransform
	Width     int // 0 means the renderer's default
	Height    int // 0 means the renderer's default
}

// Options are the colors and default size shared by every renderer.
type Options struct {
	Size       int    // default image edge in pixels
	Background string // hex colors
	Body       string
	Accent     string
	Ghost      string
}

// Renderer draws scenes in one output format.
type Renderer interface {
	// Format returns the registry key, also used as file extension.
	Format() string

	// Title returns a human-readable name for listings.
	Title() string

	// ContentType returns the MIME type of the output.
	ContentType() string

	// Render writes the scene to w.
	Render(w io.Writer, scene Scene) error
}

// Info contains metadata about a registered renderer.
type Info struct {
	Format      string
	Title       string
	ContentType string
}

// Factory creates a renderer configured with opts.
type Factory func(opts Options) Renderer

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

// Register adds a renderer factory to the registry.
// Typically called from an init() function.
// Panics if a renderer with the same format is already registered.
func Register(format string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[format]; exists {
		panic(fmt.Sprintf("registry: format %q already registered", format))
	}

	factories[format] = f

	r := f(Options{})
	infos[format] = Info{Format: format, Title: r.Title(), ContentType: r.ContentType()}
}

// List returns information about all registered renderers, sorted by format.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Format < result[j].Format
	})

	return result
}

// Create instantiates a renderer by format.
func Create(format string, opts Options) (Renderer, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[format]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}

	return f(opts), nil
}

// Exists checks if a renderer for format is registered.
func Exists(format string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[format]
	return ok
}

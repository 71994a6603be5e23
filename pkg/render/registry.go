package render

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrRendererNotFound is returned for names nothing was registered under.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Descriptor advertises one registered output format.
type Descriptor struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
}

// Registry maps output format names to renderers. The HTTP server and the
// CLI both resolve formats through it.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry returns a registry with the given renderers registered.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{renderers: make(map[string]Renderer, len(renderers))}
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds renderer under its trimmed Name. Names are unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.renderers == nil {
		r.renderers = make(map[string]Renderer)
	}
	if _, taken := r.renderers[name]; taken {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// Get looks a renderer up by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Describe lists every renderer with its content type, sorted by name.
func (r *Registry) Describe() []Descriptor {
	names := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		if renderer, ok := r.renderers[name]; ok {
			out = append(out, Descriptor{Name: name, ContentType: renderer.ContentType()})
		}
	}
	return out
}

// Render renders groups with the named renderer and reports the content type
// of the result.
func (r *Registry) Render(ctx context.Context, name string, groups []model.Group, options RenderOptions) ([]byte, string, error) {
	renderer, err := r.Get(name)
	if err != nil {
		return nil, "", err
	}
	body, err := renderer.Render(ctx, groups, options)
	if err != nil {
		return nil, "", fmt.Errorf("render: %s: %w", renderer.Name(), err)
	}
	return body, renderer.ContentType(), nil
}

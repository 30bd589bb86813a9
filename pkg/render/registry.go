package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrRendererNotFound is returned by Get for unknown names.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry maps names to preview renderers. Lookups ignore case, and the
// first renderer registered answers requests that name none.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
	names  []string
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Register adds r under r.Name().
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	key := normalizeName(renderer.Name())
	if key == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[key]; exists {
		return fmt.Errorf("render: renderer %q already registered", key)
	}
	r.byName[key] = renderer
	r.names = append(r.names, key)
	return nil
}

// Get returns the renderer called name, or the default one when name is
// blank.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := normalizeName(name)
	if key == "" && len(r.names) > 0 {
		key = r.names[0]
	}
	renderer, ok := r.byName[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// Names lists renderer names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cvgen/pkg/model"
	"github.com/goliatone/go-cvgen/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(_ context.Context, doc model.Document, _ render.RenderOptions) ([]byte, error) {
	return []byte(doc.Personal.FullName), nil
}

func TestRegistry_LookupAndDefault(t *testing.T) {
	registry := render.NewRegistry()
	for _, name := range []string{"html", "Text"} {
		if err := registry.Register(namedRenderer(name)); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	if diff := cmp.Diff([]string{"html", "text"}, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	cases := map[string]string{"": "html", "  ": "html", "TEXT": "Text", "html": "html"}
	for name, want := range cases {
		got, err := registry.Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if got.Name() != want {
			t.Fatalf("Get(%q): want %s, got %s", name, want, got.Name())
		}
	}
}

func TestRegistry_Errors(t *testing.T) {
	registry := render.NewRegistry()
	if _, err := registry.Get(""); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("empty registry has no default, got %v", err)
	}
	if err := registry.Register(namedRenderer("html")); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := registry.Register(namedRenderer("HTML")); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if err := registry.Register(namedRenderer(" ")); err == nil {
		t.Fatalf("expected empty name error")
	}
	if _, err := registry.Get("pdf"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

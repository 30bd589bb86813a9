package schema_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-cvgen/pkg/schema"
)

func TestParseSource(t *testing.T) {
	cases := []struct {
		location string
		kind     schema.SourceKind
	}{
		{"cv.json", schema.SourceKindFile},
		{"./backup/../cv.json", schema.SourceKindFile},
		{"https://example.com/cv.json", schema.SourceKindURL},
		{"HTTP://example.com/cv.json", schema.SourceKindURL},
	}
	for _, tc := range cases {
		src, err := schema.ParseSource(tc.location)
		if err != nil {
			t.Fatalf("ParseSource(%q): %v", tc.location, err)
		}
		if src.Kind() != tc.kind {
			t.Fatalf("ParseSource(%q): want %s, got %s", tc.location, tc.kind, src.Kind())
		}
	}
	if src, _ := schema.ParseSource("./backup/../cv.json"); src.Location() != "cv.json" {
		t.Fatalf("expected cleaned path, got %q", src.Location())
	}
	if _, err := schema.ParseSource("   "); !errors.Is(err, schema.ErrSource) {
		t.Fatalf("expected ErrSource, got %v", err)
	}
}

func TestSourceFromURL_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	schema.SourceFromURL("not a url")
}

func TestLoader_FileAndFS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.json")
	if err := os.WriteFile(path, []byte(`{"summary":"x"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	loader := schema.NewLoader(schema.LoaderOptions{
		FileSystem: fstest.MapFS{"shared.json": {Data: []byte(`{}`)}},
	})
	ctx := context.Background()

	data, err := loader.Load(ctx, schema.SourceFromFile(path))
	if err != nil || string(data) != `{"summary":"x"}` {
		t.Fatalf("file load: %q, %v", data, err)
	}

	data, err = loader.Load(ctx, schema.SourceFromFS(nil, "shared.json"))
	if err != nil || string(data) != `{}` {
		t.Fatalf("fs load: %q, %v", data, err)
	}

	own := fstest.MapFS{"own.json": {Data: []byte(`[]`)}}
	if data, err = loader.Load(ctx, schema.SourceFromFS(own, "own.json")); err != nil || string(data) != `[]` {
		t.Fatalf("own fs load: %q, %v", data, err)
	}

	if _, err := loader.Load(ctx, schema.SourceFromFile(filepath.Join(t.TempDir(), "missing.json"))); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hobbies":[]}`))
	}))
	defer server.Close()
	ctx := context.Background()

	if _, err := schema.NewLoader(schema.LoaderOptions{}).Load(ctx, schema.SourceFromURL(server.URL)); !errors.Is(err, schema.ErrHTTPDisabled) {
		t.Fatalf("expected ErrHTTPDisabled, got %v", err)
	}

	loader := schema.NewLoader(schema.LoaderOptions{HTTPClient: server.Client()})
	data, err := loader.Load(ctx, schema.SourceFromURL(server.URL+"/cv.json"))
	if err != nil || string(data) != `{"hobbies":[]}` {
		t.Fatalf("http load: %q, %v", data, err)
	}

	_, err = loader.Load(ctx, schema.SourceFromURL(server.URL+"/missing"))
	if !errors.Is(err, schema.ErrSource) || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected 404 source error, got %v", err)
	}
}

func TestLoader_RejectsOversizedDocument(t *testing.T) {
	files := fstest.MapFS{"big.json": {Data: make([]byte, schema.MaxDocumentSize+1)}}
	_, err := schema.NewLoader(schema.LoaderOptions{FileSystem: files}).Load(context.Background(), schema.SourceFromFS(nil, "big.json"))
	if !errors.Is(err, schema.ErrSource) {
		t.Fatalf("expected ErrSource, got %v", err)
	}
}

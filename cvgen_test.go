package cvgen

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-cvgen/pkg/export"
	"github.com/goliatone/go-cvgen/pkg/gallery"
	"github.com/goliatone/go-cvgen/pkg/persist"
	"github.com/goliatone/go-cvgen/pkg/renderers/html"
	"github.com/goliatone/go-cvgen/pkg/schema"
	"github.com/goliatone/go-cvgen/pkg/testsupport"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), html.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), "var(--accent)") {
		t.Fatalf("expected stylesheet to use the accent variable")
	}
}

func TestEmbeddedTemplatesHasEveryPage(t *testing.T) {
	for _, tpl := range gallery.Default().Templates() {
		if _, err := fs.Stat(EmbeddedTemplates(), tpl.Name+".tmpl"); err != nil {
			t.Fatalf("missing page for %s: %v", tpl.Name, err)
		}
	}
}

func TestParse(t *testing.T) {
	raw, err := json.Marshal(testsupport.SampleDocument())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Personal.FullName != "Budi Santoso" {
		t.Fatalf("unexpected document %+v", doc.Personal)
	}

	if _, err := Parse([]byte(`{"skills":[{"level":11}]}`)); !errors.Is(err, schema.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestPreviewAndExport(t *testing.T) {
	ctx := context.Background()
	doc := testsupport.SampleDocument()

	page, err := PreviewHTML(ctx, doc, RenderOptions{Template: gallery.Formal})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(string(page), "cv--formal") {
		t.Fatalf("expected the formal page")
	}

	name, data, err := ExportDOCX(ctx, doc, export.Options{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "Budi_Santoso_Site_Engineer.docx" || len(data) == 0 {
		t.Fatalf("unexpected export %q (%d bytes)", name, len(data))
	}
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), persist.NewMemorySlot())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if got := s.Document(); len(got.Skills) != 0 || got.Personal.FullName != NewDocument().Personal.FullName {
		t.Fatalf("expected a fresh document")
	}
}

package text_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-cvgen/pkg/gallery"
	"github.com/goliatone/go-cvgen/pkg/model"
	"github.com/goliatone/go-cvgen/pkg/render"
	"github.com/goliatone/go-cvgen/pkg/renderers/text"
	"github.com/goliatone/go-cvgen/pkg/testsupport"
)

func TestRenderer_Sections(t *testing.T) {
	out, err := text.New().Render(context.Background(), testsupport.SampleDocument(), render.RenderOptions{
		Template:   gallery.Professional,
		ThemeColor: "ignored",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	mustContain(t, string(out),
		"BUDI SANTOSO\n",
		"Site Engineer | PT Karya Nusantara\n",
		"* Go [#######...]\n",
		"  Backend services\n",
		"* Site Engineer - PT Karya Nusantara, Dinas PUPR, Cirebon (Maret 2018 - Saat Ini)\n",
		"  Insinyur sipil dengan 8 tahun pengalaman.\n",
	)
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("markup leaked into text output")
	}
}

func TestRenderer_FormalLayout(t *testing.T) {
	out, err := text.New().Render(context.Background(), testsupport.SampleDocument(), render.RenderOptions{Template: gallery.Formal})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	mustContain(t, string(out),
		"1. Posisi yang diusulkan : Site Engineer\n",
		"- Mengawasi pekerjaan struktur\n",
		"Pengalaman 1 (Tahun 2018)\n",
	)
}

func TestRenderer_EmptyDocumentInEnglish(t *testing.T) {
	out, err := text.New().Render(context.Background(), model.Default(), render.RenderOptions{Template: "nope", Locale: "en"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	mustContain(t, string(out), "YOUR FULL NAME\n", "[Position]\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := text.New().Render(ctx, model.Default(), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func mustContain(t *testing.T, page string, parts ...string) {
	t.Helper()
	for _, part := range parts {
		if !strings.Contains(page, part) {
			t.Fatalf("expected output to contain %q in:\n%s", part, page)
		}
	}
}

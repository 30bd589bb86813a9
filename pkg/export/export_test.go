package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cvgen/pkg/export"
	"github.com/goliatone/go-cvgen/pkg/formal"
	"github.com/goliatone/go-cvgen/pkg/i18n"
	"github.com/goliatone/go-cvgen/pkg/model"
	"github.com/goliatone/go-cvgen/pkg/testsupport"
)

func TestRender_ParagraphsFollowFormalLayout(t *testing.T) {
	doc := testsupport.SampleDocument()
	opts := export.Options{Locale: "id", Translator: i18n.MustDefault()}

	data, err := export.Render(context.Background(), doc, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got, err := export.Paragraphs(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var want []string
	for _, line := range formal.Layout(doc, formal.Options{Locale: "id", Translator: opts.Translator}) {
		want = append(want, line.Text())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paragraph mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_EmptyDocumentIsExplicit(t *testing.T) {
	data, err := export.Render(context.Background(), model.Default(), export.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got, err := export.Paragraphs(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got[0] != "1. Posisi yang diusulkan\t: N/A" {
		t.Fatalf("unexpected first paragraph %q", got[0])
	}
	if got[len(got)-1] != "- Tidak ada pengalaman kerja -" {
		t.Fatalf("unexpected last paragraph %q", got[len(got)-1])
	}
}

func TestRender_CorePropertiesAndFooter(t *testing.T) {
	doc := testsupport.SampleDocument()
	data, err := export.Render(context.Background(), doc, export.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	props, err := export.CoreProperties(data)
	if err != nil {
		t.Fatalf("core properties: %v", err)
	}
	want := export.Properties{
		Title:       "Daftar Riwayat Hidup",
		Creator:     export.DocumentCreator,
		Description: "Daftar Riwayat Hidup untuk Budi Santoso",
	}
	if diff := cmp.Diff(want, props); diff != "" {
		t.Fatalf("core properties mismatch (-want +got):\n%s", diff)
	}

	footer, err := export.Footer(data)
	if err != nil {
		t.Fatalf("footer: %v", err)
	}
	for _, part := range []string{`<w:jc w:val="center"/>`, `w:instr=" PAGE "`} {
		if !strings.Contains(string(footer), part) {
			t.Fatalf("expected footer to contain %q, got %s", part, footer)
		}
	}

	if _, err := export.Paragraphs(data); err != nil {
		t.Fatalf("finished package no longer parses: %v", err)
	}
}

func TestPropertiesFor_UnnamedDocument(t *testing.T) {
	got := export.PropertiesFor(model.Default())
	if got.Description != "Daftar Riwayat Hidup untuk Personil" {
		t.Fatalf("unexpected description %q", got.Description)
	}
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := export.Render(ctx, model.Default(), export.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFileName(t *testing.T) {
	cases := []struct {
		name, fullName, position, want string
	}{
		{"both", "  Budi   Santoso ", "Site Engineer", "Budi_Santoso_Site_Engineer.docx"},
		{"name only", "Ada", "", "Ada.docx"},
		{"position only", "", "QA Lead", "QA_Lead.docx"},
		{"neither", " ", "", export.DefaultFileName},
		{"separators", "a/b\\c", "x:y", "abc_xy.docx"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := model.Default()
			doc.Personal.FullName = tc.fullName
			doc.Personal.ProposedPosition = tc.position
			if got := export.FileName(doc); got != tc.want {
				t.Fatalf("FileName = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExporter_RejectsOverlappingExports(t *testing.T) {
	exporter := export.NewExporter()
	release := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once

	slow := func(ctx context.Context, name string, data []byte) error {
		once.Do(func() { close(entered) })
		<-release
		return nil
	}

	first := exporter.Start(context.Background(), testsupport.SampleDocument(), slow)
	<-entered

	if !exporter.Busy() {
		t.Fatalf("expected exporter to be busy")
	}
	second := exporter.Export(context.Background(), model.Default(), slow)
	if !errors.Is(second.Err, export.ErrExportInProgress) {
		t.Fatalf("expected ErrExportInProgress, got %v", second.Err)
	}
	rejected := <-exporter.Start(context.Background(), model.Default(), slow)
	if !errors.Is(rejected.Err, export.ErrExportInProgress) {
		t.Fatalf("expected ErrExportInProgress from Start, got %v", rejected.Err)
	}

	close(release)
	select {
	case res := <-first:
		if res.Err != nil || res.Name != "Budi_Santoso_Site_Engineer.docx" || res.Bytes == 0 {
			t.Fatalf("unexpected result %+v", res)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("export did not finish")
	}
	if exporter.Busy() {
		t.Fatalf("busy flag not cleared")
	}
}

func TestExporter_FailureClearsBusyFlag(t *testing.T) {
	exporter := export.NewExporter()
	boom := errors.New("disk full")

	res := exporter.Export(context.Background(), model.Default(), func(context.Context, string, []byte) error {
		return boom
	})
	if !errors.Is(res.Err, boom) {
		t.Fatalf("expected sink error, got %v", res.Err)
	}
	if exporter.Busy() {
		t.Fatalf("busy flag not cleared after failure")
	}
}

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	exporter := export.NewExporter()

	res := exporter.Export(context.Background(), model.Default(), export.DirSink(dir))
	if res.Err != nil {
		t.Fatalf("export: %v", res.Err)
	}
	info, err := os.Stat(filepath.Join(dir, export.DefaultFileName))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != int64(res.Bytes) {
		t.Fatalf("size mismatch: file=%d result=%d", info.Size(), res.Bytes)
	}
}

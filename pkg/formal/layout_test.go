package formal_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-cvgen/pkg/formal"
	"github.com/goliatone/go-cvgen/pkg/i18n"
	"github.com/goliatone/go-cvgen/pkg/model"
	"github.com/goliatone/go-cvgen/pkg/testsupport"
)

func render(lines []formal.Line) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line.Text())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestLayout_SampleMatchesGolden(t *testing.T) {
	doc := testsupport.SampleDocument()
	before := doc.Clone()

	got := render(formal.Layout(doc, formal.Options{Locale: "id", Translator: i18n.MustDefault()}))

	const golden = "testdata/sample.golden"
	if testsupport.WriteMaybeGolden(t, golden, []byte(got)) {
		return
	}
	if diff := testsupport.CompareGolden(testsupport.MustReadGoldenString(t, golden), got); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}
	if diff := testsupport.CompareGolden(before, doc); diff != "" {
		t.Fatalf("layout mutated the document:\n%s", diff)
	}
}

func TestLayout_EmptyDocumentUsesPlaceholders(t *testing.T) {
	lines := formal.Layout(model.Default(), formal.Options{})

	want := map[string]bool{
		"1. Posisi yang diusulkan\t: N/A":          true,
		"4. Tempat/Tanggal Lahir\t: N/A, N/A":      true,
		"- Tidak ada data pendidikan formal -":     true,
		"- Tidak ada data pendidikan non-formal -": true,
		"- Tidak ada pengalaman kerja -":           true,
	}
	for _, line := range lines {
		if strings.HasSuffix(line.Text(), ": ") && line.Kind == formal.Field {
			t.Fatalf("blank value rendered: %q", line.Text())
		}
		delete(want, line.Text())
	}
	if len(want) != 0 {
		t.Fatalf("missing placeholder lines: %v", want)
	}
}

func TestLayout_SectionOrderIsFixed(t *testing.T) {
	var headings []string
	for _, line := range formal.Layout(testsupport.SampleDocument(), formal.Options{}) {
		if line.Kind == formal.Heading {
			headings = append(headings, line.Label)
		}
	}
	want := []string{"5. Pendidikan", "6. Pendidikan Non Formal", "7. Penguasaan Bahasa", "8. Pengalaman Kerja"}
	if diff := testsupport.CompareGolden(want, headings); diff != "" {
		t.Fatalf("headings mismatch (-want +got):\n%s", diff)
	}
}

func TestLayout_TranslatedPlaceholders(t *testing.T) {
	catalog := i18n.MustDefault()
	lines := formal.Layout(model.Default(), formal.Options{
		Locale:       "en",
		Translator:   catalog,
		Placeholders: formal.Placeholders{Translator: catalog, Locale: "en"},
	})

	var texts []string
	for _, line := range lines {
		texts = append(texts, line.Text())
	}
	joined := strings.Join(texts, "\n")
	for _, want := range []string{"No formal education data.", "No work experience.", "[Not filled]"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in layout:\n%s", want, joined)
		}
	}
}

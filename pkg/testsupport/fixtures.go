package testsupport

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cvgen/pkg/model"
)

// SampleDocument returns a fully populated document covering the shapes the
// projections care about: both education groups, an experience with blank
// responsibility lines, one with nothing filled in, and markup in free text.
func SampleDocument() model.Document {
	doc := model.Default()
	doc.Personal = model.Personal{
		FullName:         "Budi Santoso",
		ProposedPosition: "Site Engineer",
		LastCompany:      "PT Karya Nusantara",
		PlaceOfBirth:     "Bandung",
		DateOfBirth:      "1990-08-17",
		Nationality:      "Indonesia",
		Address:          "Jl. Merdeka 1, Bandung",
		Email:            "budi@example.com",
		Phone:            "0812-3456-7890",
		LinkedIn:         "linkedin.com/in/budi",
	}
	doc.Summary = "Insinyur sipil dengan <b>8 tahun</b> pengalaman.<script>alert(1)</script>"
	doc.Education = []model.Education{
		{ID: "edu-1", Degree: "S1 Teknik Sipil", InstitutionName: "Institut Teknologi Bandung", GraduationYear: "2012", IsFormal: true},
		{ID: "edu-2", Degree: "Pelatihan K3", InstitutionName: "Kemnaker", GraduationYear: "2015", IsFormal: false},
		{ID: "edu-3", Degree: "S2 Manajemen Konstruksi", InstitutionName: "Universitas Indonesia", IsFormal: true},
	}
	doc.Experience = []model.Experience{
		{
			ID:               "exp-1",
			ActivityName:     "Pembangunan Jembatan",
			Location:         "Cirebon",
			ClientName:       "Dinas PUPR",
			CompanyName:      "PT Karya Nusantara",
			Responsibilities: []string{"Mengawasi pekerjaan struktur", " ", "Menyusun laporan mingguan"},
			StartDate:        "2018-03",
			EndDate:          "present",
			JobTitle:         "Site Engineer",
			EmploymentStatus: "Tetap",
			ReferenceInfo:    "Terlampir",
		},
		{
			ID:               "exp-2",
			Responsibilities: []string{""},
		},
	}
	doc.LanguageProficiency.Foreign = "Cukup"
	doc.Skills = []model.Skill{
		{ID: "skill-1", Name: "Go", Level: 7, Description: "Backend services"},
		{ID: "skill-2", Name: "AutoCAD", Level: 9},
	}
	doc.Languages = []model.Language{{ID: "lang-1", Name: "Inggris", Level: 6}}
	doc.References = []model.Reference{{ID: "ref-1", Name: "Ir. Siti Aminah", Company: "PT Waskita", Contact: "0812-0000-1111"}}
	doc.Hobbies = []model.Hobby{{ID: "hobby-1", Name: "Bersepeda"}}
	return doc
}

// SequenceIDs returns a deterministic generator yielding prefix-1, prefix-2...
func SequenceIDs(prefix string) model.IDGenerator {
	var (
		mu sync.Mutex
		n  int
	)
	return model.IDGeneratorFunc(func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	})
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

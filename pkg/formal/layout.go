// Package formal lays out the numbered eight-section personnel form. The
// section order, numbering and sub-item lettering are fixed: readers compare
// these documents against a bureaucratic template.
package formal

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-cvgen/pkg/dates"
	"github.com/goliatone/go-cvgen/pkg/i18n"
	"github.com/goliatone/go-cvgen/pkg/model"
)

// Kind classifies a layout line.
type Kind int

const (
	// Field is a "label<TAB>: value" line.
	Field Kind = iota
	// Heading opens a numbered list section.
	Heading
	// Item is a list entry ("- ...").
	Item
	// Entry titles one work experience block.
	Entry
)

// Indents and label widths, in twips.
const (
	DefaultLabelWidth  = 2500
	LanguageLabelWidth = 2200
	ListIndent         = 360
	SubItemIndent      = 720
	DutyIndent         = 1440
	HeadingSpacing     = 200
	FirstEntrySpacing  = 50
)

// NotAvailable fills empty values.
const NotAvailable = "N/A"

// Line is one paragraph of the form.
type Line struct {
	Kind          Kind
	Label         string
	Value         string
	Indent        int
	LabelWidth    int
	Bold          bool
	Italic        bool
	SpacingBefore int
	// Placeholder is set when Value (or the whole item) stands in for missing
	// data.
	Placeholder bool
}

// Text renders the line as plain text, the tab written as "\t".
func (l Line) Text() string {
	if l.Kind == Field {
		return l.Label + "\t: " + l.Value
	}
	return l.Label
}

// Placeholders resolves the stand-in text for missing values. The zero value
// produces the fixed Indonesian placeholders of the printed form.
type Placeholders struct {
	Translator i18n.Translator
	Locale     string
}

func (p Placeholders) text(key, fallback string) string {
	if p.Translator == nil {
		return fallback
	}
	return i18n.Text(p.Translator, p.Locale, key, func(string, string, []any, error) string {
		return fallback
	})
}

// Options tune Layout.
type Options struct {
	Placeholders Placeholders
	// Locale controls month names and the "present" label; empty means the
	// default locale.
	Locale     string
	Translator i18n.Translator
}

// Layout projects doc onto the numbered form. It only reads doc.
func Layout(doc model.Document, opts Options) []Line {
	b := builder{opts: opts}
	p := doc.Personal

	b.field("1. Posisi yang diusulkan", p.ProposedPosition, false)
	b.field("2. Nama Perusahaan", p.LastCompany, false)
	b.field("3. Nama Personil", p.FullName, true)
	b.birth(p)

	b.heading("5. Pendidikan")
	b.education(doc.FormalEducation(), "Lulus",
		b.ph("unfilledDegree", "[Gelar/Jurusan]"),
		b.ph("unfilledInstitution", "[Institusi]"),
		b.ph("unfilledYear", "[Tahun Lulus]"),
		b.ph("noFormalEducation", "- Tidak ada data pendidikan formal -"),
	)

	b.heading("6. Pendidikan Non Formal")
	b.education(doc.NonFormalEducation(), "Selesai",
		b.ph("unfilledTraining", "[Nama Pelatihan]"),
		b.ph("unfilledProvider", "[Penyelenggara]"),
		b.ph("unfilledYear", "[Tahun Selesai]"),
		b.ph("noNonFormalEducation", "- Tidak ada data pendidikan non-formal -"),
	)

	b.heading("7. Penguasaan Bahasa")
	lp := doc.LanguageProficiency
	b.sub("   a. Bahasa Indonesia", lp.National, ListIndent, LanguageLabelWidth)
	b.sub("   b. Bahasa Inggris", lp.Foreign, ListIndent, LanguageLabelWidth)
	b.sub("   c. Bahasa Setempat", lp.Local, ListIndent, LanguageLabelWidth)

	b.heading("8. Pengalaman Kerja")
	for i, exp := range doc.Experience {
		b.experience(i, exp)
	}
	if len(doc.Experience) == 0 {
		b.item(b.ph("noWorkExperience", "- Tidak ada pengalaman kerja -"), ListIndent, true)
	}
	return b.lines
}

type builder struct {
	opts  Options
	lines []Line
}

func (b *builder) ph(key, fallback string) string {
	return b.opts.Placeholders.text(key, fallback)
}

func (b *builder) orNA(value string) (string, bool) {
	if strings.TrimSpace(value) == "" {
		return b.ph("unfilled", NotAvailable), true
	}
	return value, false
}

func (b *builder) field(label, value string, bold bool) {
	value, missing := b.orNA(value)
	b.lines = append(b.lines, Line{
		Kind:        Field,
		Label:       label,
		Value:       value,
		LabelWidth:  DefaultLabelWidth,
		Bold:        bold,
		Placeholder: missing,
	})
}

func (b *builder) birth(p model.Personal) {
	place, placeMissing := orText(p.PlaceOfBirth, b.ph("unfilledBirthPlace", NotAvailable))
	date := dates.Format(p.DateOfBirth, dates.Full, b.opts.Locale, b.opts.Translator)
	date, dateMissing := orText(date, b.ph("unfilledBirthDate", NotAvailable))
	b.lines = append(b.lines, Line{
		Kind:        Field,
		Label:       "4. Tempat/Tanggal Lahir",
		Value:       place + ", " + date,
		LabelWidth:  DefaultLabelWidth,
		Placeholder: placeMissing && dateMissing,
	})
}

func (b *builder) heading(label string) {
	b.lines = append(b.lines, Line{Kind: Heading, Label: label, SpacingBefore: HeadingSpacing})
}

func (b *builder) item(text string, indent int, placeholder bool) {
	b.lines = append(b.lines, Line{
		Kind:        Item,
		Label:       text,
		Indent:      indent,
		Italic:      placeholder,
		Placeholder: placeholder,
	})
}

func (b *builder) sub(label, value string, indent, width int) {
	value, missing := b.orNA(value)
	b.lines = append(b.lines, Line{
		Kind:        Field,
		Label:       label,
		Value:       value,
		Indent:      indent,
		LabelWidth:  width,
		Placeholder: missing,
	})
}

func (b *builder) education(list []model.Education, verb, degreePH, institutionPH, yearPH, empty string) {
	if len(list) == 0 {
		b.item(empty, ListIndent, true)
		return
	}
	for _, edu := range list {
		degree, _ := orText(edu.Degree, degreePH)
		institution, _ := orText(edu.InstitutionName, institutionPH)
		year, _ := orText(edu.GraduationYear, yearPH)
		b.item(fmt.Sprintf("- %s, %s, %s %s", degree, institution, verb, year), ListIndent, false)
	}
}

func (b *builder) experience(index int, exp model.Experience) {
	year := dates.Year(exp.StartDate)
	if year == "" {
		year = "TAHUN"
	}
	spacing := HeadingSpacing
	if index == 0 {
		spacing = FirstEntrySpacing
	}
	b.lines = append(b.lines, Line{
		Kind:          Entry,
		Label:         fmt.Sprintf("Pengalaman %d (Tahun %s)", index+1, year),
		Indent:        ListIndent,
		Bold:          true,
		SpacingBefore: spacing,
	})

	b.sub("   a. Nama Kegiatan", exp.ActivityName, SubItemIndent, DefaultLabelWidth)
	b.sub("   b. Lokasi", exp.Location, SubItemIndent, DefaultLabelWidth)
	b.sub("   c. Pengguna Jasa", exp.ClientName, SubItemIndent, DefaultLabelWidth)
	b.sub("   d. Nama Perusahaan", exp.CompanyName, SubItemIndent, DefaultLabelWidth)

	b.lines = append(b.lines, Line{
		Kind:       Field,
		Label:      "   e. Uraian Tugas",
		Indent:     SubItemIndent,
		LabelWidth: LanguageLabelWidth + ListIndent,
	})
	duties := 0
	for _, resp := range exp.Responsibilities {
		if strings.TrimSpace(resp) == "" {
			continue
		}
		duties++
		b.item("- "+resp, DutyIndent, false)
	}
	if duties == 0 {
		b.item(b.ph("noResponsibilities", "- Tidak ada uraian tugas spesifik -"), DutyIndent, true)
	}

	start := dates.Format(exp.StartDate, dates.MonthYear, b.opts.Locale, b.opts.Translator)
	end := dates.Format(exp.EndDate, dates.MonthYear, b.opts.Locale, b.opts.Translator)
	start, _ = orText(start, b.ph("unfilledStart", NotAvailable))
	end, _ = orText(end, b.ph("unfilledEnd", NotAvailable))
	b.lines = append(b.lines, Line{
		Kind:       Field,
		Label:      "   f. Waktu Pelaksanaan",
		Value:      start + " s/d " + end,
		Indent:     SubItemIndent,
		LabelWidth: DefaultLabelWidth,
	})

	b.sub("   g. Posisi Penugasan", exp.JobTitle, SubItemIndent, DefaultLabelWidth)
	b.sub("   h. Status Kepegawaian", exp.EmploymentStatus, SubItemIndent, DefaultLabelWidth)
	b.sub("   i. Surat Referensi", exp.ReferenceInfo, SubItemIndent, DefaultLabelWidth)
}

func orText(value, fallback string) (string, bool) {
	if strings.TrimSpace(value) == "" {
		return fallback, true
	}
	return value, false
}

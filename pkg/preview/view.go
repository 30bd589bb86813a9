// Package preview projects a Document onto a renderer-agnostic visual tree.
// Templates only format what Build hands them: placeholders, date labels and
// the education split are all decided here.
package preview

import "github.com/goliatone/go-cvgen/pkg/formal"

// Section keys, in document order.
const (
	SectionSummary             = "summary"
	SectionFormalEducation     = "formalEducation"
	SectionNonFormalEducation  = "nonFormalEducation"
	SectionExperience          = "experience"
	SectionLanguageProficiency = "languageProficiency"
	SectionSkills              = "skills"
	SectionReferences          = "references"
	SectionHobbies             = "hobbies"
	SectionLanguages           = "languages"
)

// View is the projected document.
type View struct {
	Template   string
	ThemeColor string
	Locale     string
	Header     Header
	Sections   []Section
	// Formal holds the numbered form lines; only set for the formal template.
	Formal []formal.Line
}

// Section returns the section with key, if present.
func (v View) Section(key string) (Section, bool) {
	for _, section := range v.Sections {
		if section.Key == key {
			return section, true
		}
	}
	return Section{}, false
}

// Keys lists section keys in render order.
func (v View) Keys() []string {
	keys := make([]string, 0, len(v.Sections))
	for _, section := range v.Sections {
		keys = append(keys, section.Key)
	}
	return keys
}

// Header is the identity block.
type Header struct {
	Name                string
	NamePlaceholder     bool
	Position            string
	PositionPlaceholder bool
	Company             string
	Birth               string
	Nationality         string
	// Photo is a data URI, empty when no picture is set.
	Photo    string
	Contacts []Contact
	Details  []Contact
}

// Contact is a labelled header value.
type Contact struct {
	Key   string
	Label string
	Value string
}

// Section is one titled block of items.
type Section struct {
	Key   string
	Title string
	Items []Item
}

// Item is one entry inside a section.
type Item struct {
	ID       string
	Title    string
	Subtitle string
	Period   string
	Lines    []string
	// Rating is a 0..10 level; HasRating distinguishes a zero level from no
	// rating at all.
	Rating    int
	HasRating bool
	// Percent is Rating scaled to 0..100 for bar widths.
	Percent     int
	Placeholder bool
}

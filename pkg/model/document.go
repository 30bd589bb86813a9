package model

import "slices"

// Top-level section keys, matching the persisted JSON.
const (
	SectionPersonal            = "personal"
	SectionSummary             = "summary"
	SectionEducation           = "education"
	SectionExperience          = "experience"
	SectionLanguageProficiency = "languageProficiency"
	SectionSkills              = "skills"
	SectionReferences          = "references"
	SectionHobbies             = "hobbies"
	SectionLanguages           = "languages"
)

// DefaultNationalProficiency seeds the national language rating.
const DefaultNationalProficiency = "Baik (Aktif dan Pasif)"

// Document is the full resume graph for one session.
type Document struct {
	Personal            Personal            `json:"personal"`
	Summary             string              `json:"summary"`
	Education           []Education         `json:"education"`
	Experience          []Experience        `json:"experience"`
	LanguageProficiency LanguageProficiency `json:"languageProficiency"`
	Skills              []Skill             `json:"skills"`
	References          []Reference         `json:"references"`
	Hobbies             []Hobby             `json:"hobbies"`
	Languages           []Language          `json:"languages"`
}

// Default returns a fresh document with empty (non-nil) lists.
func Default() Document {
	return Document{
		Education:  []Education{},
		Experience: []Experience{},
		LanguageProficiency: LanguageProficiency{
			National: DefaultNationalProficiency,
		},
		Skills:     []Skill{},
		References: []Reference{},
		Hobbies:    []Hobby{},
		Languages:  []Language{},
	}
}

// Clone returns a deep copy that shares no slices or pointers with d.
func (d Document) Clone() Document {
	out := d
	out.Personal = d.Personal.clone()
	out.Education = cloneList(d.Education)
	out.Experience = make([]Experience, len(d.Experience))
	for i, exp := range d.Experience {
		exp.Responsibilities = slices.Clone(exp.Responsibilities)
		if exp.Responsibilities == nil {
			exp.Responsibilities = []string{}
		}
		out.Experience[i] = exp
	}
	out.Skills = cloneList(d.Skills)
	out.References = cloneList(d.References)
	out.Hobbies = cloneList(d.Hobbies)
	out.Languages = cloneList(d.Languages)
	return out
}

// WithField replaces a top-level scalar section. Only the summary is a
// document-level scalar.
func (d Document) WithField(field string, value any) Document {
	switch field {
	case SectionSummary:
		d.Summary = asString("document", field, value)
	default:
		panic(unknownField("document", field))
	}
	return d
}

// FormalEducation returns the formal entries in document order.
func (d Document) FormalEducation() []Education {
	return filterEducation(d.Education, true)
}

// NonFormalEducation returns the non-formal entries in document order.
func (d Document) NonFormalEducation() []Education {
	return filterEducation(d.Education, false)
}

// EntryIDs lists every entry identifier in the document, section by section.
func (d Document) EntryIDs() []string {
	var ids []string
	ids = appendIDs(ids, d.Education)
	ids = appendIDs(ids, d.Experience)
	ids = appendIDs(ids, d.Skills)
	ids = appendIDs(ids, d.References)
	ids = appendIDs(ids, d.Hobbies)
	ids = appendIDs(ids, d.Languages)
	return ids
}

func filterEducation(list []Education, formal bool) []Education {
	out := make([]Education, 0, len(list))
	for _, edu := range list {
		if edu.IsFormal == formal {
			out = append(out, edu)
		}
	}
	return out
}

func appendIDs[T Identified](ids []string, list []T) []string {
	for _, item := range list {
		ids = append(ids, item.EntryID())
	}
	return ids
}

func cloneList[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}

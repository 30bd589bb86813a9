package store

import (
	"slices"

	"github.com/goliatone/go-cvgen/pkg/model"
)

// Mutator exposes the document mutation API. Every method takes the current
// document and returns the next one; the argument is never written. When an
// operation is a no-op (index out of range, unknown id) the input document is
// returned as is.
type Mutator struct {
	ids        model.IDGenerator
	education  EntryList[model.Education]
	experience EntryList[model.Experience]
	skills     EntryList[model.Skill]
	languages  EntryList[model.Language]
	references EntryList[model.Reference]
	hobbies    EntryList[model.Hobby]
}

// NewMutator builds a Mutator drawing identifiers from ids.
func NewMutator(ids model.IDGenerator) *Mutator {
	if ids == nil {
		ids = model.DefaultIDs
	}
	return &Mutator{
		ids:        ids,
		education:  NewEntryList[model.Education](ids),
		experience: NewEntryList[model.Experience](ids),
		skills:     NewEntryList[model.Skill](ids),
		languages:  NewEntryList[model.Language](ids),
		references: NewEntryList[model.Reference](ids),
		hobbies:    NewEntryList[model.Hobby](ids),
	}
}

// IDs returns the generator backing the mutator.
func (m *Mutator) IDs() model.IDGenerator {
	return m.ids
}

// AddEducation appends an empty education entry in the requested group.
func (m *Mutator) AddEducation(doc model.Document, isFormal bool) model.Document {
	doc.Education = m.education.Add(doc.Education, model.Education{IsFormal: isFormal})
	return doc
}

func (m *Mutator) UpdateEducation(doc model.Document, index int, field string, value any) model.Document {
	doc.Education = m.education.Update(doc.Education, index, field, value)
	return doc
}

func (m *Mutator) RemoveEducation(doc model.Document, id string) model.Document {
	doc.Education = m.education.Remove(doc.Education, id)
	return doc
}

// AddExperience appends an experience entry. Without defaults the entry
// starts from model.NewExperience.
func (m *Mutator) AddExperience(doc model.Document, defaults ...model.Experience) model.Document {
	entry := model.NewExperience()
	if len(defaults) > 0 {
		entry = defaults[0]
		entry.Responsibilities = slices.Clone(entry.Responsibilities)
		if len(entry.Responsibilities) == 0 {
			entry.Responsibilities = []string{""}
		}
	}
	doc.Experience = m.experience.Add(doc.Experience, entry)
	return doc
}

func (m *Mutator) UpdateExperience(doc model.Document, index int, field string, value any) model.Document {
	doc.Experience = m.experience.Update(doc.Experience, index, field, value)
	return doc
}

func (m *Mutator) RemoveExperience(doc model.Document, id string) model.Document {
	doc.Experience = m.experience.Remove(doc.Experience, id)
	return doc
}

// AddResponsibility appends an empty responsibility line to the experience
// at expIndex.
func (m *Mutator) AddResponsibility(doc model.Document, expIndex int) model.Document {
	doc.Experience = m.experience.Map(doc.Experience, expIndex, func(exp model.Experience) model.Experience {
		exp.Responsibilities = append(slices.Clip(exp.Responsibilities), "")
		return exp
	})
	return doc
}

// UpdateResponsibility replaces one responsibility line. Either index out of
// range is a no-op.
func (m *Mutator) UpdateResponsibility(doc model.Document, expIndex, respIndex int, value string) model.Document {
	if !m.hasResponsibility(doc, expIndex, respIndex) {
		return doc
	}
	doc.Experience = m.experience.Map(doc.Experience, expIndex, func(exp model.Experience) model.Experience {
		exp.Responsibilities = replaceAt(exp.Responsibilities, respIndex, value)
		return exp
	})
	return doc
}

// RemoveResponsibility drops one responsibility line. Removing the last line
// leaves a single empty one.
func (m *Mutator) RemoveResponsibility(doc model.Document, expIndex, respIndex int) model.Document {
	if !m.hasResponsibility(doc, expIndex, respIndex) {
		return doc
	}
	doc.Experience = m.experience.Map(doc.Experience, expIndex, func(exp model.Experience) model.Experience {
		exp.Responsibilities = slices.Delete(slices.Clone(exp.Responsibilities), respIndex, respIndex+1)
		if len(exp.Responsibilities) == 0 {
			exp.Responsibilities = []string{""}
		}
		return exp
	})
	return doc
}

func (m *Mutator) hasResponsibility(doc model.Document, expIndex, respIndex int) bool {
	if expIndex < 0 || expIndex >= len(doc.Experience) {
		return false
	}
	return respIndex >= 0 && respIndex < len(doc.Experience[expIndex].Responsibilities)
}

// AddSkill appends a skill, model.NewSkill unless defaults are given.
func (m *Mutator) AddSkill(doc model.Document, defaults ...model.Skill) model.Document {
	entry := model.NewSkill()
	if len(defaults) > 0 {
		entry = defaults[0]
		entry.Level = model.ClampLevel(entry.Level)
	}
	doc.Skills = m.skills.Add(doc.Skills, entry)
	return doc
}

func (m *Mutator) UpdateSkill(doc model.Document, index int, field string, value any) model.Document {
	doc.Skills = m.skills.Update(doc.Skills, index, field, value)
	return doc
}

func (m *Mutator) RemoveSkill(doc model.Document, id string) model.Document {
	doc.Skills = m.skills.Remove(doc.Skills, id)
	return doc
}

// AddLanguage appends a language, model.NewLanguage unless defaults are given.
func (m *Mutator) AddLanguage(doc model.Document, defaults ...model.Language) model.Document {
	entry := model.NewLanguage()
	if len(defaults) > 0 {
		entry = defaults[0]
		entry.Level = model.ClampLevel(entry.Level)
	}
	doc.Languages = m.languages.Add(doc.Languages, entry)
	return doc
}

func (m *Mutator) UpdateLanguage(doc model.Document, index int, field string, value any) model.Document {
	doc.Languages = m.languages.Update(doc.Languages, index, field, value)
	return doc
}

func (m *Mutator) RemoveLanguage(doc model.Document, id string) model.Document {
	doc.Languages = m.languages.Remove(doc.Languages, id)
	return doc
}

func (m *Mutator) AddReference(doc model.Document, defaults ...model.Reference) model.Document {
	var entry model.Reference
	if len(defaults) > 0 {
		entry = defaults[0]
	}
	doc.References = m.references.Add(doc.References, entry)
	return doc
}

func (m *Mutator) UpdateReference(doc model.Document, index int, field string, value any) model.Document {
	doc.References = m.references.Update(doc.References, index, field, value)
	return doc
}

func (m *Mutator) RemoveReference(doc model.Document, id string) model.Document {
	doc.References = m.references.Remove(doc.References, id)
	return doc
}

func (m *Mutator) AddHobby(doc model.Document, defaults ...model.Hobby) model.Document {
	var entry model.Hobby
	if len(defaults) > 0 {
		entry = defaults[0]
	}
	doc.Hobbies = m.hobbies.Add(doc.Hobbies, entry)
	return doc
}

func (m *Mutator) UpdateHobby(doc model.Document, index int, field string, value any) model.Document {
	doc.Hobbies = m.hobbies.Update(doc.Hobbies, index, field, value)
	return doc
}

func (m *Mutator) RemoveHobby(doc model.Document, id string) model.Document {
	doc.Hobbies = m.hobbies.Remove(doc.Hobbies, id)
	return doc
}

// UpdatePersonal replaces one personal field. Unknown fields panic with
// *model.FieldError.
func (m *Mutator) UpdatePersonal(doc model.Document, field string, value any) model.Document {
	doc.Personal = doc.Personal.WithField(field, value)
	return doc
}

func (m *Mutator) UpdateLanguageProficiency(doc model.Document, field string, value any) model.Document {
	doc.LanguageProficiency = doc.LanguageProficiency.WithField(field, value)
	return doc
}

// UpdateDocumentField replaces a document-level scalar such as the summary.
func (m *Mutator) UpdateDocumentField(doc model.Document, field string, value any) model.Document {
	return doc.WithField(field, value)
}

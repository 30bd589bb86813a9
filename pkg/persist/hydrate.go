package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-cvgen/pkg/model"
)

// ErrUnparsable marks stored data that is not a JSON object at all.
var ErrUnparsable = errors.New("persist: stored document is not parsable")

// SectionError reports a top-level section whose stored shape could not be
// decoded. The section keeps its default value.
type SectionError struct {
	Section string
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("persist: section %q: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error { return e.Err }

// Backfill describes an identifier fix applied during hydration.
type Backfill struct {
	Section string
	Index   int
	OldID   string
	NewID   string
}

// Report summarizes a hydration pass.
type Report struct {
	Sections  []string
	Backfills []Backfill
	Errors    []error
}

// Err joins the section errors, nil when every present section decoded.
func (r Report) Err() error {
	return errors.Join(r.Errors...)
}

// Earlier builds stored some sections under different names. Canonical names
// win when both are present.
var sectionAliases = map[string]string{
	"personalData":   model.SectionPersonal,
	"aboutMe":        model.SectionSummary,
	"workExperience": model.SectionExperience,
}

var proficiencyAliases = map[string]string{
	"indonesia": model.ProficiencyNational,
	"inggris":   model.ProficiencyForeign,
	"setempat":  model.ProficiencyLocal,
}

// Hydrate merges raw onto model.Default section by section and backfills
// entry identifiers from ids. Raw data that is not a JSON object yields the
// default document and an error wrapping ErrUnparsable.
func Hydrate(raw []byte, ids model.IDGenerator) (model.Document, error) {
	doc, report := HydrateReport(raw, ids)
	return doc, report.Err()
}

// HydrateReport is Hydrate with the full list of merged sections and
// identifier fixes.
func HydrateReport(raw []byte, ids model.IDGenerator) (model.Document, Report) {
	if ids == nil {
		ids = model.DefaultIDs
	}
	doc := model.Default()
	var report Report

	sections, err := decodeSections(raw)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Errorf("%w: %v", ErrUnparsable, err))
		return doc, report
	}

	merge := func(name string, apply func(json.RawMessage) error) {
		data, ok := sections[name]
		if !ok {
			return
		}
		if err := apply(data); err != nil {
			report.Errors = append(report.Errors, &SectionError{Section: name, Err: err})
			return
		}
		report.Sections = append(report.Sections, name)
	}

	merge(model.SectionPersonal, func(data json.RawMessage) error {
		next := doc.Personal
		if err := json.Unmarshal(data, &next); err != nil {
			return err
		}
		doc.Personal = next
		return nil
	})
	merge(model.SectionSummary, func(data json.RawMessage) error {
		return json.Unmarshal(data, &doc.Summary)
	})
	merge(model.SectionEducation, func(data json.RawMessage) error {
		return replaceList(data, &doc.Education)
	})
	merge(model.SectionExperience, func(data json.RawMessage) error {
		return replaceList(data, &doc.Experience)
	})
	merge(model.SectionLanguageProficiency, func(data json.RawMessage) error {
		return mergeProficiency(data, &doc.LanguageProficiency)
	})
	merge(model.SectionSkills, func(data json.RawMessage) error {
		return replaceList(data, &doc.Skills)
	})
	merge(model.SectionReferences, func(data json.RawMessage) error {
		return replaceList(data, &doc.References)
	})
	merge(model.SectionHobbies, func(data json.RawMessage) error {
		return replaceList(data, &doc.Hobbies)
	})
	merge(model.SectionLanguages, func(data json.RawMessage) error {
		return replaceList(data, &doc.Languages)
	})

	report.Backfills = backfill(&doc, ids)
	return doc, report
}

// decodeSections splits the stored object into raw sections, dropping null
// values and folding legacy aliases.
func decodeSections(raw []byte) (map[string]json.RawMessage, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, err
	}
	if sections == nil {
		return nil, errors.New("document is null")
	}
	for alias, canonical := range sectionAliases {
		if data, ok := sections[alias]; ok {
			if _, exists := sections[canonical]; !exists {
				sections[canonical] = data
			}
			delete(sections, alias)
		}
	}
	for name, data := range sections {
		if isNull(data) {
			delete(sections, name)
		}
	}
	return sections, nil
}

func isNull(data json.RawMessage) bool {
	return len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

func replaceList[T any](data json.RawMessage, target *[]T) error {
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	if list == nil {
		list = []T{}
	}
	*target = list
	return nil
}

func mergeProficiency(data json.RawMessage, target *model.LanguageProficiency) error {
	var fields map[string]*string
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	next := *target
	apply := func(key string, value *string) {
		if value == nil {
			return
		}
		switch key {
		case model.ProficiencyNational:
			next.National = *value
		case model.ProficiencyForeign:
			next.Foreign = *value
		case model.ProficiencyLocal:
			next.Local = *value
		}
	}
	for alias, canonical := range proficiencyAliases {
		if _, exists := fields[canonical]; !exists {
			apply(canonical, fields[alias])
		}
	}
	for key, value := range fields {
		apply(key, value)
	}
	*target = next
	return nil
}

// backfill assigns identifiers to entries that have none or that repeat an
// identifier seen earlier in the document, then normalizes the invariants a
// hand-edited or older payload may violate.
func backfill(doc *model.Document, ids model.IDGenerator) []Backfill {
	seen := make(map[string]struct{})
	var fixes []Backfill

	doc.Education = backfillList(model.SectionEducation, doc.Education, ids, seen, &fixes)
	doc.Experience = backfillList(model.SectionExperience, doc.Experience, ids, seen, &fixes)
	doc.Skills = backfillList(model.SectionSkills, doc.Skills, ids, seen, &fixes)
	doc.References = backfillList(model.SectionReferences, doc.References, ids, seen, &fixes)
	doc.Hobbies = backfillList(model.SectionHobbies, doc.Hobbies, ids, seen, &fixes)
	doc.Languages = backfillList(model.SectionLanguages, doc.Languages, ids, seen, &fixes)

	for i := range doc.Experience {
		if len(doc.Experience[i].Responsibilities) == 0 {
			doc.Experience[i].Responsibilities = []string{""}
		}
	}
	for i := range doc.Skills {
		doc.Skills[i].Level = model.ClampLevel(doc.Skills[i].Level)
	}
	for i := range doc.Languages {
		doc.Languages[i].Level = model.ClampLevel(doc.Languages[i].Level)
	}
	return fixes
}

func backfillList[T model.Entry[T]](section string, list []T, ids model.IDGenerator, seen map[string]struct{}, fixes *[]Backfill) []T {
	for i, item := range list {
		id := item.EntryID()
		if _, dup := seen[id]; id != "" && !dup {
			seen[id] = struct{}{}
			continue
		}
		next := ids.NewID()
		for {
			if _, dup := seen[next]; !dup {
				break
			}
			next = ids.NewID()
		}
		seen[next] = struct{}{}
		list[i] = item.WithID(next)
		*fixes = append(*fixes, Backfill{Section: section, Index: i, OldID: id, NewID: next})
	}
	return list
}

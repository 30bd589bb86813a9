package editor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-cvgen/pkg/model"
	"github.com/goliatone/go-cvgen/pkg/store"
)

// entryList describes how one repeatable section is listed and edited.
type entryList[T model.Identified] struct {
	title  string
	items  func(model.Document) []T
	label  func(index int, item T) string
	add    func(*store.Mutator, model.Document) model.Document
	remove func(*store.Mutator, model.Document, string) model.Document
	edit   func(ctx context.Context, id string) error
}

// editList shows the entries of one section followed by Add and Back. New
// entries go straight into their edit flow.
func editList[T model.Identified](ctx context.Context, e *Editor, l entryList[T]) error {
	for {
		items := l.items(e.store.Snapshot())
		options := make([]string, 0, len(items)+2)
		for i, item := range items {
			options = append(options, fmt.Sprintf("%d. %s", i+1, l.label(i, item)))
		}
		addIdx := len(options)
		options = append(options, e.text("menu.add"), e.text("menu.back"))

		idx, err := e.driver.Select(ctx, SelectConfig{
			Message:      l.title,
			Options:      options,
			DefaultIndex: addIdx,
			PageSize:     pageSize,
		})
		if err != nil {
			return err
		}

		switch {
		case idx == addIdx:
			items = l.items(e.apply(l.add))
			id := items[len(items)-1].EntryID()
			e.logger.Debug("entry added", zap.String("section", l.title), zap.String("id", id))
			if err := l.edit(ctx, id); err != nil {
				return err
			}
		case idx >= 0 && idx < len(items):
			if err := entryMenu(ctx, e, l, idx, items[idx]); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func entryMenu[T model.Identified](ctx context.Context, e *Editor, l entryList[T], index int, item T) error {
	options := []string{e.text("menu.edit"), e.text("menu.remove"), e.text("menu.back")}
	choice, err := e.driver.Select(ctx, SelectConfig{Message: l.label(index, item), Options: options})
	if err != nil {
		return err
	}
	id := item.EntryID()
	switch choice {
	case 0:
		return l.edit(ctx, id)
	case 1:
		e.apply(func(m *store.Mutator, doc model.Document) model.Document {
			return l.remove(m, doc, id)
		})
		e.logger.Debug("entry removed", zap.String("section", l.title), zap.String("id", id))
	}
	return nil
}

func indexByID[T model.Identified](list []T, id string) int {
	for i, item := range list {
		if item.EntryID() == id {
			return i
		}
	}
	return -1
}

func (e *Editor) editEducation(ctx context.Context, isFormal bool) error {
	title, items := e.text("formalEducationTitle"), model.Document.FormalEducation
	if !isFormal {
		title, items = e.text("nonFormalEducationTitle"), model.Document.NonFormalEducation
	}
	return editList(ctx, e, entryList[model.Education]{
		title: title,
		items: items,
		label: func(_ int, edu model.Education) string {
			return e.orUnfilled(joinNonBlank(" - ", edu.Degree, edu.InstitutionName, edu.GraduationYear))
		},
		add: func(m *store.Mutator, doc model.Document) model.Document {
			return m.AddEducation(doc, isFormal)
		},
		remove: (*store.Mutator).RemoveEducation,
		edit:   e.editEducationEntry,
	})
}

func (e *Editor) editEducationEntry(ctx context.Context, id string) error {
	doc := e.store.Snapshot()
	index := indexByID(doc.Education, id)
	if index < 0 {
		return nil
	}
	edu := doc.Education[index]
	prompts := []fieldPrompt{
		{field: model.EducationInstitution, current: edu.InstitutionName},
		{field: model.EducationDegree, current: edu.Degree},
		{field: model.EducationGraduationYear, current: edu.GraduationYear},
		{field: model.EducationDescription, current: edu.Description, multiline: true},
	}
	return e.promptFields(ctx, prompts, func(m *store.Mutator, doc model.Document, field, value string) model.Document {
		return m.UpdateEducation(doc, indexByID(doc.Education, id), field, value)
	})
}

func (e *Editor) editExperience(ctx context.Context) error {
	return editList(ctx, e, entryList[model.Experience]{
		title: e.text("workExperienceTitle"),
		items: func(doc model.Document) []model.Experience { return doc.Experience },
		label: func(i int, exp model.Experience) string {
			title := joinNonBlank(" - ", firstNonBlank(exp.JobTitle, exp.ActivityName), exp.CompanyName)
			if title == "" {
				return e.text("experienceItem", map[string]any{"n": i + 1})
			}
			return title
		},
		add: func(m *store.Mutator, doc model.Document) model.Document {
			return m.AddExperience(doc)
		},
		remove: (*store.Mutator).RemoveExperience,
		edit:   e.editExperienceEntry,
	})
}

func (e *Editor) editExperienceEntry(ctx context.Context, id string) error {
	doc := e.store.Snapshot()
	index := indexByID(doc.Experience, id)
	if index < 0 {
		return nil
	}
	exp := doc.Experience[index]
	prompts := []fieldPrompt{
		{field: model.ExperienceActivityName, current: exp.ActivityName},
		{field: model.ExperienceLocation, current: exp.Location},
		{field: model.ExperienceClientName, current: exp.ClientName},
		{field: model.ExperienceCompanyName, current: exp.CompanyName},
		{field: model.ExperienceStartDate, current: exp.StartDate},
		{field: model.ExperienceEndDate, current: exp.EndDate},
		{field: model.ExperienceJobTitle, current: exp.JobTitle},
		{field: model.ExperienceEmploymentStatus, current: exp.EmploymentStatus},
		{field: model.ExperienceReferenceInfo, current: exp.ReferenceInfo},
	}
	err := e.promptFields(ctx, prompts, func(m *store.Mutator, doc model.Document, field, value string) model.Document {
		return m.UpdateExperience(doc, indexByID(doc.Experience, id), field, value)
	})
	if err != nil {
		return err
	}
	return e.editResponsibilities(ctx, id)
}

// editResponsibilities lists the responsibility lines of one experience.
func (e *Editor) editResponsibilities(ctx context.Context, id string) error {
	update := func(respIndex int, value string) {
		e.apply(func(m *store.Mutator, doc model.Document) model.Document {
			return m.UpdateResponsibility(doc, indexByID(doc.Experience, id), respIndex, value)
		})
	}

	for {
		doc := e.store.Snapshot()
		index := indexByID(doc.Experience, id)
		if index < 0 {
			return nil
		}
		lines := doc.Experience[index].Responsibilities
		options := make([]string, 0, len(lines)+2)
		for i, line := range lines {
			options = append(options, fmt.Sprintf("%d. %s", i+1, e.orUnfilled(line)))
		}
		addIdx := len(options)
		options = append(options, e.text("menu.addResponsibility"), e.text("menu.back"))

		idx, err := e.driver.Select(ctx, SelectConfig{
			Message:  e.text("jobDescription"),
			Options:  options,
			PageSize: pageSize,
		})
		if err != nil {
			return err
		}

		switch {
		case idx == addIdx:
			doc = e.apply(func(m *store.Mutator, doc model.Document) model.Document {
				return m.AddResponsibility(doc, indexByID(doc.Experience, id))
			})
			respIndex := len(doc.Experience[index].Responsibilities) - 1
			value, err := e.driver.Input(ctx, InputConfig{Message: e.text("jobDescription")})
			if err != nil {
				return err
			}
			update(respIndex, value)
		case idx >= 0 && idx < len(lines):
			options := []string{e.text("menu.edit"), e.text("menu.remove"), e.text("menu.back")}
			choice, err := e.driver.Select(ctx, SelectConfig{Message: e.orUnfilled(lines[idx]), Options: options})
			if err != nil {
				return err
			}
			switch choice {
			case 0:
				value, err := e.driver.Input(ctx, InputConfig{Message: e.text("jobDescription"), Default: lines[idx]})
				if err != nil {
					return err
				}
				update(idx, value)
			case 1:
				respIndex := idx
				e.apply(func(m *store.Mutator, doc model.Document) model.Document {
					return m.RemoveResponsibility(doc, indexByID(doc.Experience, id), respIndex)
				})
			}
		default:
			return nil
		}
	}
}

func (e *Editor) editSkills(ctx context.Context) error {
	return editList(ctx, e, entryList[model.Skill]{
		title: e.text("skills"),
		items: func(doc model.Document) []model.Skill { return doc.Skills },
		label: func(_ int, skill model.Skill) string {
			return e.rated(skill.Name, skill.Level)
		},
		add: func(m *store.Mutator, doc model.Document) model.Document {
			return m.AddSkill(doc)
		},
		remove: (*store.Mutator).RemoveSkill,
		edit: func(ctx context.Context, id string) error {
			doc := e.store.Snapshot()
			index := indexByID(doc.Skills, id)
			if index < 0 {
				return nil
			}
			skill := doc.Skills[index]
			update := func(m *store.Mutator, doc model.Document, field string, value any) model.Document {
				return m.UpdateSkill(doc, indexByID(doc.Skills, id), field, value)
			}
			return e.promptRated(ctx, skill.Name, skill.Level, model.SkillName, model.SkillLevel, update, fieldPrompt{
				field:     model.SkillDescription,
				current:   skill.Description,
				multiline: true,
			})
		},
	})
}

func (e *Editor) editLanguages(ctx context.Context) error {
	return editList(ctx, e, entryList[model.Language]{
		title: e.text("languages"),
		items: func(doc model.Document) []model.Language { return doc.Languages },
		label: func(_ int, lang model.Language) string {
			return e.rated(lang.Name, lang.Level)
		},
		add: func(m *store.Mutator, doc model.Document) model.Document {
			return m.AddLanguage(doc)
		},
		remove: (*store.Mutator).RemoveLanguage,
		edit: func(ctx context.Context, id string) error {
			doc := e.store.Snapshot()
			index := indexByID(doc.Languages, id)
			if index < 0 {
				return nil
			}
			lang := doc.Languages[index]
			update := func(m *store.Mutator, doc model.Document, field string, value any) model.Document {
				return m.UpdateLanguage(doc, indexByID(doc.Languages, id), field, value)
			}
			return e.promptRated(ctx, lang.Name, lang.Level, model.LanguageName, model.LanguageLevel, update)
		},
	})
}

// promptRated asks for a name and a level, then any extra text fields.
func (e *Editor) promptRated(ctx context.Context, name string, level int, nameField, levelField string, update func(*store.Mutator, model.Document, string, any) model.Document, extra ...fieldPrompt) error {
	value, err := e.driver.Input(ctx, InputConfig{Message: e.text("field." + nameField), Default: name})
	if err != nil {
		return err
	}
	e.apply(func(m *store.Mutator, doc model.Document) model.Document {
		return update(m, doc, nameField, value)
	})

	next, err := e.promptLevel(ctx, level)
	if err != nil {
		return err
	}
	e.apply(func(m *store.Mutator, doc model.Document) model.Document {
		return update(m, doc, levelField, next)
	})

	return e.promptFields(ctx, extra, func(m *store.Mutator, doc model.Document, field, value string) model.Document {
		return update(m, doc, field, value)
	})
}

// promptLevel re-asks until the answer is a whole number in the rating range.
func (e *Editor) promptLevel(ctx context.Context, current int) (int, error) {
	for {
		raw, err := e.driver.Input(ctx, InputConfig{
			Message: e.text("field.level"),
			Default: strconv.Itoa(model.ClampLevel(current)),
			Help:    fmt.Sprintf("%d-%d", model.MinLevel, model.MaxLevel),
		})
		if err != nil {
			return 0, err
		}
		level, err := parseLevel(raw)
		if err != nil {
			e.warn(ctx, e.text("menu.invalidLevel", map[string]any{"min": model.MinLevel, "max": model.MaxLevel}))
			continue
		}
		return level, nil
	}
}

func parseLevel(raw string) (int, error) {
	level, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if level < model.MinLevel || level > model.MaxLevel {
		return 0, fmt.Errorf("editor: level %d out of range", level)
	}
	return level, nil
}

func (e *Editor) editReferences(ctx context.Context) error {
	return editList(ctx, e, entryList[model.Reference]{
		title: e.text("references"),
		items: func(doc model.Document) []model.Reference { return doc.References },
		label: func(_ int, ref model.Reference) string {
			return e.orUnfilled(joinNonBlank(" - ", ref.Name, ref.Company))
		},
		add: func(m *store.Mutator, doc model.Document) model.Document {
			return m.AddReference(doc)
		},
		remove: (*store.Mutator).RemoveReference,
		edit: func(ctx context.Context, id string) error {
			doc := e.store.Snapshot()
			index := indexByID(doc.References, id)
			if index < 0 {
				return nil
			}
			ref := doc.References[index]
			prompts := []fieldPrompt{
				{field: model.ReferenceName, current: ref.Name},
				{field: model.ReferenceCompany, current: ref.Company},
				{field: model.ReferenceContact, current: ref.Contact},
			}
			return e.promptFields(ctx, prompts, func(m *store.Mutator, doc model.Document, field, value string) model.Document {
				return m.UpdateReference(doc, indexByID(doc.References, id), field, value)
			})
		},
	})
}

func (e *Editor) editHobbies(ctx context.Context) error {
	return editList(ctx, e, entryList[model.Hobby]{
		title: e.text("hobbies"),
		items: func(doc model.Document) []model.Hobby { return doc.Hobbies },
		label: func(_ int, hobby model.Hobby) string {
			return e.orUnfilled(hobby.Name)
		},
		add: func(m *store.Mutator, doc model.Document) model.Document {
			return m.AddHobby(doc)
		},
		remove: (*store.Mutator).RemoveHobby,
		edit: func(ctx context.Context, id string) error {
			doc := e.store.Snapshot()
			index := indexByID(doc.Hobbies, id)
			if index < 0 {
				return nil
			}
			prompts := []fieldPrompt{{field: model.HobbyName, current: doc.Hobbies[index].Name}}
			return e.promptFields(ctx, prompts, func(m *store.Mutator, doc model.Document, field, value string) model.Document {
				return m.UpdateHobby(doc, indexByID(doc.Hobbies, id), field, value)
			})
		},
	})
}

func (e *Editor) rated(name string, level int) string {
	return fmt.Sprintf("%s (%d/%d)", e.orUnfilled(name), model.ClampLevel(level), model.MaxLevel)
}

func (e *Editor) orUnfilled(value string) string {
	if strings.TrimSpace(value) == "" {
		return e.text("unfilled")
	}
	return strings.TrimSpace(value)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func joinNonBlank(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}

package preview

import (
	"strings"

	"github.com/goliatone/go-cvgen/pkg/dates"
	"github.com/goliatone/go-cvgen/pkg/formal"
	"github.com/goliatone/go-cvgen/pkg/gallery"
	"github.com/goliatone/go-cvgen/pkg/i18n"
	"github.com/goliatone/go-cvgen/pkg/model"
)

var (
	contactFields = []string{
		model.FieldAddress, model.FieldEmail, model.FieldPhone, model.FieldWebsite,
		model.FieldLinkedIn, model.FieldInstagram, model.FieldFacebook, model.FieldTwitter,
	}
	detailFields = []string{model.FieldGender, model.FieldReligion, model.FieldMaritalStatus}
)

// Options tune Build.
type Options struct {
	// Template selects the layout; empty means gallery.DefaultTemplate.
	Template   string
	ThemeColor string
	// Locale defaults to i18n.DefaultLocale.
	Locale string
	// Translator defaults to the embedded catalog.
	Translator i18n.Translator
}

// Build projects doc for the chosen template. It only reads doc.
func Build(doc model.Document, opts Options) View {
	if strings.TrimSpace(opts.Template) == "" {
		opts.Template = gallery.DefaultTemplate
	}
	if strings.TrimSpace(opts.Locale) == "" {
		opts.Locale = i18n.DefaultLocale
	}
	if opts.Translator == nil {
		opts.Translator = i18n.MustDefault()
	}

	b := builder{opts: opts, formal: opts.Template == gallery.Formal}
	view := View{
		Template:   opts.Template,
		ThemeColor: opts.ThemeColor,
		Locale:     opts.Locale,
		Header:     b.header(doc.Personal),
	}

	view.Sections = b.appendSection(view.Sections, b.summary(doc.Summary))
	view.Sections = b.appendSection(view.Sections, b.education(SectionFormalEducation, "formalEducationTitle", doc.FormalEducation(), true))
	view.Sections = b.appendSection(view.Sections, b.education(SectionNonFormalEducation, "nonFormalEducationTitle", doc.NonFormalEducation(), false))
	view.Sections = b.appendSection(view.Sections, b.experience(doc.Experience))
	view.Sections = b.appendSection(view.Sections, b.proficiency(doc.LanguageProficiency))
	view.Sections = b.appendSection(view.Sections, b.skills(doc.Skills))
	view.Sections = b.appendSection(view.Sections, b.references(doc.References))
	view.Sections = b.appendSection(view.Sections, b.hobbies(doc.Hobbies))
	view.Sections = b.appendSection(view.Sections, b.languages(doc.Languages))

	if b.formal {
		view.Formal = formal.Layout(doc, formal.Options{
			Placeholders: formal.Placeholders{Translator: opts.Translator, Locale: opts.Locale},
			Locale:       opts.Locale,
			Translator:   opts.Translator,
		})
	}
	return view
}

// part is a built section plus the message key shown when it has no items.
type part struct {
	section Section
	empty   string
}

type builder struct {
	opts   Options
	formal bool
}

func (b builder) text(key string) string {
	return i18n.Text(b.opts.Translator, b.opts.Locale, key, nil)
}

func (b builder) orPlaceholder(value, key string) (string, bool) {
	if strings.TrimSpace(value) == "" {
		return b.text(key), true
	}
	return value, false
}

// appendSection drops empty sections, except in the formal template where an
// explicit "no data" item takes their place.
func (b builder) appendSection(sections []Section, p part) []Section {
	section := p.section
	if len(section.Items) > 0 {
		return append(sections, section)
	}
	if !b.formal {
		return sections
	}
	key := p.empty
	if key == "" {
		key = "unfilled"
	}
	section.Items = []Item{{Title: b.text(key), Placeholder: true}}
	return append(sections, section)
}

func (b builder) header(p model.Personal) Header {
	h := Header{
		Company:     strings.TrimSpace(p.LastCompany),
		Nationality: strings.TrimSpace(p.Nationality),
		Photo:       p.Picture(),
	}
	h.Name, h.NamePlaceholder = b.orPlaceholder(p.FullName, "unfilledName")
	h.Position, h.PositionPlaceholder = b.orPlaceholder(p.ProposedPosition, "unfilledPosition")

	place := strings.TrimSpace(p.PlaceOfBirth)
	date := dates.Format(p.DateOfBirth, dates.Full, b.opts.Locale, b.opts.Translator)
	switch {
	case place != "" && date != "":
		h.Birth = place + ", " + date
	default:
		h.Birth = place + date
	}

	for _, key := range contactFields {
		if value := strings.TrimSpace(p.Get(key)); value != "" {
			h.Contacts = append(h.Contacts, Contact{Key: key, Label: b.text("field." + key), Value: value})
		}
	}
	for _, key := range detailFields {
		if value := strings.TrimSpace(p.Get(key)); value != "" {
			h.Details = append(h.Details, Contact{Key: key, Label: b.text("field." + key), Value: value})
		}
	}
	return h
}

func (b builder) summary(text string) part {
	section := Section{Key: SectionSummary, Title: b.text("aboutMe")}
	plain := PlainText(text)
	if plain == "" {
		section.Items = []Item{{Title: b.text("unfilled"), Placeholder: true}}
		return part{section, ""}
	}
	section.Items = []Item{{Lines: paragraphs(plain)}}
	return part{section, ""}
}

func (b builder) education(key, title string, list []model.Education, isFormal bool) part {
	section := Section{Key: key, Title: b.text(title)}
	degreeKey, institutionKey, empty := "unfilledDegree", "unfilledInstitution", "noFormalEducation"
	if !isFormal {
		degreeKey, institutionKey, empty = "unfilledTraining", "unfilledProvider", "noNonFormalEducation"
	}
	for _, edu := range list {
		item := Item{ID: edu.ID}
		var missingDegree, missingInstitution bool
		item.Title, missingDegree = b.orPlaceholder(edu.Degree, degreeKey)
		item.Subtitle, missingInstitution = b.orPlaceholder(edu.InstitutionName, institutionKey)
		item.Period, _ = b.orPlaceholder(edu.GraduationYear, "unfilledYear")
		if desc := PlainText(edu.Description); desc != "" {
			item.Lines = paragraphs(desc)
		}
		item.Placeholder = missingDegree && missingInstitution
		section.Items = append(section.Items, item)
	}
	return part{section, empty}
}

func (b builder) experience(list []model.Experience) part {
	section := Section{Key: SectionExperience, Title: b.text("workExperienceTitle")}
	for i, exp := range list {
		item := Item{ID: exp.ID}

		title := firstNonBlank(exp.JobTitle, exp.ActivityName)
		if title == "" {
			title = i18n.Text(b.opts.Translator, b.opts.Locale, "experienceItem", nil, map[string]any{"n": i + 1})
			item.Placeholder = true
		}
		item.Title = title
		item.Subtitle = joinNonBlank(", ", exp.CompanyName, exp.ClientName, exp.Location)

		start := dates.Format(exp.StartDate, dates.MonthYear, b.opts.Locale, b.opts.Translator)
		end := dates.Format(exp.EndDate, dates.MonthYear, b.opts.Locale, b.opts.Translator)
		start, _ = b.orPlaceholder(start, "unfilledStart")
		end, _ = b.orPlaceholder(end, "unfilledEnd")
		item.Period = start + " - " + end

		for _, resp := range exp.Responsibilities {
			if line := PlainText(resp); line != "" {
				item.Lines = append(item.Lines, line)
			}
		}
		section.Items = append(section.Items, item)
	}
	return part{section, "noWorkExperience"}
}

func (b builder) proficiency(lp model.LanguageProficiency) part {
	section := Section{Key: SectionLanguageProficiency, Title: b.text("languageProficiencyTitle")}
	values := []struct{ key, value string }{
		{"national", lp.National},
		{"foreign", lp.Foreign},
		{"local", lp.Local},
	}
	filled := false
	for _, v := range values {
		if strings.TrimSpace(v.value) != "" {
			filled = true
		}
	}
	if !filled && !b.formal {
		return part{section, ""}
	}
	for _, v := range values {
		value, missing := b.orPlaceholder(v.value, "unfilled")
		section.Items = append(section.Items, Item{
			ID:          v.key,
			Title:       b.text("field." + v.key),
			Subtitle:    value,
			Placeholder: missing,
		})
	}
	return part{section, ""}
}

func (b builder) skills(list []model.Skill) part {
	section := Section{Key: SectionSkills, Title: b.text("skills")}
	for _, skill := range list {
		item := b.rated(skill.ID, skill.Name, skill.Level)
		if desc := PlainText(skill.Description); desc != "" {
			item.Lines = []string{desc}
		}
		section.Items = append(section.Items, item)
	}
	return part{section, ""}
}

func (b builder) languages(list []model.Language) part {
	section := Section{Key: SectionLanguages, Title: b.text("languages")}
	for _, lang := range list {
		section.Items = append(section.Items, b.rated(lang.ID, lang.Name, lang.Level))
	}
	return part{section, ""}
}

func (b builder) rated(id, name string, level int) Item {
	item := Item{ID: id, HasRating: true}
	item.Title, item.Placeholder = b.orPlaceholder(name, "unfilled")
	item.Rating = model.ClampLevel(level)
	item.Percent = item.Rating * 10
	return item
}

func (b builder) references(list []model.Reference) part {
	section := Section{Key: SectionReferences, Title: b.text("references")}
	for _, ref := range list {
		item := Item{ID: ref.ID, Subtitle: strings.TrimSpace(ref.Company)}
		item.Title, item.Placeholder = b.orPlaceholder(ref.Name, "unfilled")
		if contact := strings.TrimSpace(ref.Contact); contact != "" {
			item.Lines = []string{contact}
		}
		section.Items = append(section.Items, item)
	}
	return part{section, ""}
}

func (b builder) hobbies(list []model.Hobby) part {
	section := Section{Key: SectionHobbies, Title: b.text("hobbies")}
	for _, hobby := range list {
		if name := strings.TrimSpace(hobby.Name); name != "" {
			section.Items = append(section.Items, Item{ID: hobby.ID, Title: name})
		}
	}
	return part{section, ""}
}

func paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
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

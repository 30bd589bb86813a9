package model

import "slices"

// Rating bounds for skills and languages.
const (
	MinLevel     = 0
	MaxLevel     = 10
	DefaultLevel = 5
)

// Experience defaults applied to new entries.
const (
	DefaultEmploymentStatus = "Tidak Tetap"
	DefaultReferenceInfo    = "Terlampir"
)

// Identified is satisfied by every list entry.
type Identified interface {
	EntryID() string
}

// Entry is the self-typed contract the generic list operations rely on: an
// entry exposes its identifier and can copy itself with a new identifier or a
// single field replaced.
type Entry[T any] interface {
	Identified
	WithID(id string) T
	WithField(field string, value any) T
}

// Education field names.
const (
	EducationInstitution    = "institutionName"
	EducationDegree         = "degree"
	EducationGraduationYear = "graduationYear"
	EducationDescription    = "description"
	EducationIsFormal       = "isFormal"
)

// Education is a formal or non-formal education entry.
type Education struct {
	ID              string `json:"id"`
	InstitutionName string `json:"institutionName"`
	Degree          string `json:"degree"`
	GraduationYear  string `json:"graduationYear"`
	Description     string `json:"description"`
	IsFormal        bool   `json:"isFormal"`
}

func (e Education) EntryID() string { return e.ID }

func (e Education) WithID(id string) Education {
	e.ID = id
	return e
}

func (e Education) WithField(field string, value any) Education {
	switch field {
	case EducationInstitution:
		e.InstitutionName = asString("education", field, value)
	case EducationDegree:
		e.Degree = asString("education", field, value)
	case EducationGraduationYear:
		e.GraduationYear = asString("education", field, value)
	case EducationDescription:
		e.Description = asString("education", field, value)
	case EducationIsFormal:
		e.IsFormal = asBool("education", field, value)
	default:
		panic(unknownField("education", field))
	}
	return e
}

// Experience field names.
const (
	ExperienceActivityName     = "activityName"
	ExperienceLocation         = "location"
	ExperienceClientName       = "clientName"
	ExperienceCompanyName      = "companyName"
	ExperienceResponsibilities = "responsibilities"
	ExperienceStartDate        = "startDate"
	ExperienceEndDate          = "endDate"
	ExperienceJobTitle         = "jobTitle"
	ExperienceEmploymentStatus = "employmentStatus"
	ExperienceReferenceInfo    = "referenceInfo"
)

// Experience is a work experience entry. Responsibilities always holds at
// least one element once the entry exists.
type Experience struct {
	ID               string   `json:"id"`
	ActivityName     string   `json:"activityName"`
	Location         string   `json:"location"`
	ClientName       string   `json:"clientName"`
	CompanyName      string   `json:"companyName"`
	Responsibilities []string `json:"responsibilities"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	JobTitle         string   `json:"jobTitle"`
	EmploymentStatus string   `json:"employmentStatus"`
	ReferenceInfo    string   `json:"referenceInfo"`
}

// NewExperience returns an experience entry carrying the form defaults.
func NewExperience() Experience {
	return Experience{
		Responsibilities: []string{""},
		EmploymentStatus: DefaultEmploymentStatus,
		ReferenceInfo:    DefaultReferenceInfo,
	}
}

func (e Experience) EntryID() string { return e.ID }

func (e Experience) WithID(id string) Experience {
	e.ID = id
	return e
}

func (e Experience) WithField(field string, value any) Experience {
	switch field {
	case ExperienceActivityName:
		e.ActivityName = asString("experience", field, value)
	case ExperienceLocation:
		e.Location = asString("experience", field, value)
	case ExperienceClientName:
		e.ClientName = asString("experience", field, value)
	case ExperienceCompanyName:
		e.CompanyName = asString("experience", field, value)
	case ExperienceResponsibilities:
		e.Responsibilities = slices.Clone(asStrings("experience", field, value))
		if len(e.Responsibilities) == 0 {
			e.Responsibilities = []string{""}
		}
	case ExperienceStartDate:
		e.StartDate = asString("experience", field, value)
	case ExperienceEndDate:
		e.EndDate = asString("experience", field, value)
	case ExperienceJobTitle:
		e.JobTitle = asString("experience", field, value)
	case ExperienceEmploymentStatus:
		e.EmploymentStatus = asString("experience", field, value)
	case ExperienceReferenceInfo:
		e.ReferenceInfo = asString("experience", field, value)
	default:
		panic(unknownField("experience", field))
	}
	return e
}

// Skill and language field names.
const (
	SkillName        = "name"
	SkillLevel       = "level"
	SkillDescription = "description"

	LanguageName  = "name"
	LanguageLevel = "level"
)

// Skill is a rated skill.
type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Description string `json:"description"`
}

// NewSkill returns a skill with the default rating.
func NewSkill() Skill {
	return Skill{Level: DefaultLevel}
}

func (s Skill) EntryID() string { return s.ID }

func (s Skill) WithID(id string) Skill {
	s.ID = id
	return s
}

func (s Skill) WithField(field string, value any) Skill {
	switch field {
	case SkillName:
		s.Name = asString("skills", field, value)
	case SkillLevel:
		s.Level = ClampLevel(asInt("skills", field, value))
	case SkillDescription:
		s.Description = asString("skills", field, value)
	default:
		panic(unknownField("skills", field))
	}
	return s
}

// Language is a rated spoken language.
type Language struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// NewLanguage returns a language with the default rating.
func NewLanguage() Language {
	return Language{Level: DefaultLevel}
}

func (l Language) EntryID() string { return l.ID }

func (l Language) WithID(id string) Language {
	l.ID = id
	return l
}

func (l Language) WithField(field string, value any) Language {
	switch field {
	case LanguageName:
		l.Name = asString("languages", field, value)
	case LanguageLevel:
		l.Level = ClampLevel(asInt("languages", field, value))
	default:
		panic(unknownField("languages", field))
	}
	return l
}

// Reference field names.
const (
	ReferenceName    = "name"
	ReferenceCompany = "company"
	ReferenceContact = "contact"
)

// Reference is a professional reference.
type Reference struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Contact string `json:"contact"`
}

func (r Reference) EntryID() string { return r.ID }

func (r Reference) WithID(id string) Reference {
	r.ID = id
	return r
}

func (r Reference) WithField(field string, value any) Reference {
	switch field {
	case ReferenceName:
		r.Name = asString("references", field, value)
	case ReferenceCompany:
		r.Company = asString("references", field, value)
	case ReferenceContact:
		r.Contact = asString("references", field, value)
	default:
		panic(unknownField("references", field))
	}
	return r
}

// HobbyName is the only hobby field.
const HobbyName = "name"

// Hobby is a free-text hobby.
type Hobby struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h Hobby) EntryID() string { return h.ID }

func (h Hobby) WithID(id string) Hobby {
	h.ID = id
	return h
}

func (h Hobby) WithField(field string, value any) Hobby {
	if field != HobbyName {
		panic(unknownField("hobbies", field))
	}
	h.Name = asString("hobbies", field, value)
	return h
}

// ClampLevel bounds a rating to [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	return min(max(level, MinLevel), MaxLevel)
}

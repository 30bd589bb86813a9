package model_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cvgen/pkg/model"
)

func TestDefault_ListsAreEmptyNotNil(t *testing.T) {
	doc := model.Default()

	if doc.Education == nil || doc.Experience == nil || doc.Skills == nil ||
		doc.References == nil || doc.Hobbies == nil || doc.Languages == nil {
		t.Fatalf("expected non-nil empty lists, got %+v", doc)
	}
	if doc.LanguageProficiency.National != model.DefaultNationalProficiency {
		t.Fatalf("unexpected national proficiency default %q", doc.LanguageProficiency.National)
	}
	if doc.Personal.ProfilePicture != nil {
		t.Fatalf("expected no profile picture by default")
	}
}

func TestDocument_EducationPartitionKeepsOrder(t *testing.T) {
	doc := model.Default()
	doc.Education = []model.Education{
		{ID: "a", Degree: "BSc", IsFormal: true},
		{ID: "b", Degree: "Workshop", IsFormal: false},
		{ID: "c", Degree: "MSc", IsFormal: true},
	}

	formal := doc.FormalEducation()
	if diff := cmp.Diff([]string{"a", "c"}, ids(formal)); diff != "" {
		t.Fatalf("formal partition mismatch (-want +got):\n%s", diff)
	}
	nonFormal := doc.NonFormalEducation()
	if diff := cmp.Diff([]string{"b"}, ids(nonFormal)); diff != "" {
		t.Fatalf("non-formal partition mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_CloneSharesNothing(t *testing.T) {
	picture := "data:image/png;base64,AAAA"
	doc := model.Default()
	doc.Personal.ProfilePicture = &picture
	doc.Experience = []model.Experience{{ID: "x", Responsibilities: []string{"plan"}}}

	clone := doc.Clone()
	clone.Experience[0].Responsibilities[0] = "changed"
	*clone.Personal.ProfilePicture = "other"

	if doc.Experience[0].Responsibilities[0] != "plan" {
		t.Fatalf("clone mutated original responsibilities")
	}
	if *doc.Personal.ProfilePicture != picture {
		t.Fatalf("clone mutated original picture")
	}
}

func TestWithField_UnknownFieldPanics(t *testing.T) {
	defer func() {
		recovered := recover()
		err, ok := recovered.(error)
		if !ok {
			t.Fatalf("expected panic with error, got %#v", recovered)
		}
		var fieldErr *model.FieldError
		if !errors.As(err, &fieldErr) {
			t.Fatalf("expected FieldError, got %T", err)
		}
		if fieldErr.Field != "salary" {
			t.Fatalf("unexpected field in error: %q", fieldErr.Field)
		}
	}()

	model.Skill{}.WithField("salary", "lots")
}

func TestWithField_WrongTypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for wrong value type")
		}
	}()
	model.Education{}.WithField(model.EducationIsFormal, 42)
}

func TestWithField_LevelIsClamped(t *testing.T) {
	skill := model.NewSkill().WithField(model.SkillLevel, 42)
	if skill.Level != model.MaxLevel {
		t.Fatalf("expected level clamped to %d, got %d", model.MaxLevel, skill.Level)
	}
	lang := model.NewLanguage().WithField(model.LanguageLevel, "-3")
	if lang.Level != model.MinLevel {
		t.Fatalf("expected level clamped to %d, got %d", model.MinLevel, lang.Level)
	}
}

func TestPersonal_ProfilePictureClears(t *testing.T) {
	p := model.Personal{}.WithField(model.FieldProfilePicture, "data:image/jpeg;base64,AA")
	if p.Picture() == "" {
		t.Fatalf("expected picture to be set")
	}
	p = p.WithField(model.FieldProfilePicture, "")
	if p.ProfilePicture != nil {
		t.Fatalf("expected empty string to clear the picture")
	}
}

func TestExperience_EmptyResponsibilitiesKeepOneLine(t *testing.T) {
	exp := model.NewExperience().WithField(model.ExperienceResponsibilities, []string{})
	if diff := cmp.Diff([]string{""}, exp.Responsibilities); diff != "" {
		t.Fatalf("responsibilities mismatch (-want +got):\n%s", diff)
	}
}

func TestTimestampIDs_Unique(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	gen := model.TimestampIDs{Now: func() time.Time { return fixed }}

	seen := make(map[string]struct{})
	for i := 0; i < 5000; i++ {
		id := gen.NewID()
		suffix, ok := strings.CutPrefix(id, "id-1700000000000-")
		if !ok || len(suffix) != 12 || strings.Trim(suffix, "0123456789abcdef") != "" {
			t.Fatalf("unexpected id format %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q after %d generations", id, i)
		}
		seen[id] = struct{}{}
	}
}

func ids[T model.Identified](list []T) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, item.EntryID())
	}
	return out
}

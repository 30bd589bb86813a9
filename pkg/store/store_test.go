package store_test

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cvgen/pkg/model"
	"github.com/goliatone/go-cvgen/pkg/store"
)

func sequenceIDs() model.IDGenerator {
	var (
		mu sync.Mutex
		n  int
	)
	return model.IDGeneratorFunc(func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func TestMutator_AddAssignsUniqueIDsAcrossRemovals(t *testing.T) {
	m := store.NewMutator(nil)
	doc := model.Default()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 400; i++ {
		switch op := rng.Intn(4); {
		case op == 0 && len(doc.Skills) > 0:
			doc = m.RemoveSkill(doc, doc.Skills[rng.Intn(len(doc.Skills))].ID)
		case op == 1:
			doc = m.AddEducation(doc, rng.Intn(2) == 0)
		case op == 2:
			doc = m.AddExperience(doc)
		default:
			doc = m.AddSkill(doc)
		}
	}

	seen := make(map[string]struct{})
	for _, id := range doc.EntryIDs() {
		if id == "" {
			t.Fatalf("entry without id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestMutator_AddUsesTypeDefaults(t *testing.T) {
	m := store.NewMutator(sequenceIDs())
	doc := m.AddExperience(model.Default())
	doc = m.AddSkill(doc)
	doc = m.AddLanguage(doc)

	want := model.Experience{
		ID:               "id-1",
		Responsibilities: []string{""},
		EmploymentStatus: model.DefaultEmploymentStatus,
		ReferenceInfo:    model.DefaultReferenceInfo,
	}
	if diff := cmp.Diff(want, doc.Experience[0]); diff != "" {
		t.Fatalf("experience defaults mismatch (-want +got):\n%s", diff)
	}
	if doc.Skills[0].Level != model.DefaultLevel || doc.Languages[0].Level != model.DefaultLevel {
		t.Fatalf("expected default levels, got skill=%d language=%d", doc.Skills[0].Level, doc.Languages[0].Level)
	}
}

func TestMutator_OutOfRangeUpdateIsNoop(t *testing.T) {
	m := store.NewMutator(sequenceIDs())
	doc := m.AddSkill(model.Default(), model.Skill{Name: "Go", Level: 7})
	doc = m.AddExperience(doc)

	cases := map[string]func(model.Document) model.Document{
		"skill negative": func(d model.Document) model.Document { return m.UpdateSkill(d, -1, model.SkillName, "x") },
		"skill past end": func(d model.Document) model.Document { return m.UpdateSkill(d, 1, model.SkillName, "x") },
		"education empty": func(d model.Document) model.Document {
			return m.UpdateEducation(d, 0, model.EducationDegree, "x")
		},
		"responsibility experience": func(d model.Document) model.Document { return m.UpdateResponsibility(d, 3, 0, "x") },
		"responsibility index":      func(d model.Document) model.Document { return m.UpdateResponsibility(d, 0, 5, "x") },
		"remove responsibility":     func(d model.Document) model.Document { return m.RemoveResponsibility(d, 0, -1) },
		"add responsibility":        func(d model.Document) model.Document { return m.AddResponsibility(d, 9) },
		"remove unknown id":         func(d model.Document) model.Document { return m.RemoveHobby(d, "missing") },
	}

	for name, op := range cases {
		t.Run(name, func(t *testing.T) {
			got := op(doc)
			if diff := cmp.Diff(doc, got); diff != "" {
				t.Fatalf("expected no-op (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMutator_DoesNotWriteInput(t *testing.T) {
	m := store.NewMutator(sequenceIDs())
	base := m.AddSkill(model.Default(), model.Skill{Name: "Go", Level: 7})
	base = m.AddExperience(base)
	before := base.Clone()

	_ = m.UpdateSkill(base, 0, model.SkillName, "Rust")
	_ = m.UpdateResponsibility(base, 0, 0, "ship")
	_ = m.AddResponsibility(base, 0)
	_ = m.RemoveSkill(base, base.Skills[0].ID)
	_ = m.UpdatePersonal(base, model.FieldFullName, "Ada")
	_ = m.AddSkill(base)

	if diff := cmp.Diff(before, base); diff != "" {
		t.Fatalf("input document mutated (-before +after):\n%s", diff)
	}
}

func TestMutator_AppendsDoNotShareBackingArrays(t *testing.T) {
	m := store.NewMutator(sequenceIDs())
	base := model.Default()
	base.Skills = make([]model.Skill, 0, 8)
	base = m.AddSkill(base)

	left := m.AddSkill(base, model.Skill{Name: "left"})
	right := m.AddSkill(base, model.Skill{Name: "right"})

	if left.Skills[1].Name != "left" || right.Skills[1].Name != "right" {
		t.Fatalf("sibling documents share storage: left=%v right=%v", left.Skills, right.Skills)
	}
}

func TestMutator_Responsibilities(t *testing.T) {
	m := store.NewMutator(sequenceIDs())
	doc := m.AddExperience(model.Default())

	doc = m.UpdateResponsibility(doc, 0, 0, "plan")
	doc = m.AddResponsibility(doc, 0)
	doc = m.UpdateResponsibility(doc, 0, 1, "build")
	if diff := cmp.Diff([]string{"plan", "build"}, doc.Experience[0].Responsibilities); diff != "" {
		t.Fatalf("responsibilities mismatch (-want +got):\n%s", diff)
	}

	doc = m.RemoveResponsibility(doc, 0, 0)
	doc = m.RemoveResponsibility(doc, 0, 0)
	if diff := cmp.Diff([]string{""}, doc.Experience[0].Responsibilities); diff != "" {
		t.Fatalf("expected single empty line after removing all (-want +got):\n%s", diff)
	}
}

func TestMutator_EducationPartitionPreserved(t *testing.T) {
	m := store.NewMutator(sequenceIDs())
	doc := model.Default()
	for _, formal := range []bool{true, false, true, false, true} {
		doc = m.AddEducation(doc, formal)
	}
	doc = m.UpdateEducation(doc, 2, model.EducationDegree, "MSc")

	var formal []string
	for _, e := range doc.FormalEducation() {
		formal = append(formal, e.ID)
	}
	if diff := cmp.Diff([]string{"id-1", "id-3", "id-5"}, formal); diff != "" {
		t.Fatalf("formal order mismatch (-want +got):\n%s", diff)
	}
}

func TestMutator_UnknownPersonalFieldPanics(t *testing.T) {
	m := store.NewMutator(nil)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown field")
		}
	}()
	m.UpdatePersonal(model.Default(), "shoeSize", "44")
}

func TestStore_PanickingApplyKeepsStoreUsable(t *testing.T) {
	s := store.New(model.Default())
	before := s.Snapshot()

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic for unknown field")
			}
		}()
		s.Apply(func(doc model.Document) model.Document {
			return s.Mutator().UpdatePersonal(doc, "shoeSize", "44")
		})
	}()

	done := make(chan model.Document, 1)
	go func() {
		s.Apply(func(doc model.Document) model.Document {
			return s.Mutator().UpdatePersonal(doc, model.FieldFullName, "Ada")
		})
		done <- s.Snapshot()
	}()

	select {
	case got := <-done:
		if got.Personal.FullName != "Ada" {
			t.Fatalf("expected follow-up commit, got %q", got.Personal.FullName)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("store stayed locked after a panicking mutation")
	}
	if before.Personal.FullName != "" {
		t.Fatalf("earlier snapshot changed")
	}
}

func TestStore_ApplyNotifiesInOrder(t *testing.T) {
	var calls []string
	s := store.New(model.Default(),
		store.WithIDGenerator(sequenceIDs()),
		store.WithListener(func(model.Document) { calls = append(calls, "first") }),
	)
	unsubscribe := s.Subscribe(func(doc model.Document) {
		calls = append(calls, fmt.Sprintf("second:%d", len(doc.Skills)))
	})

	s.Apply(func(d model.Document) model.Document { return s.Mutator().AddSkill(d) })
	unsubscribe()
	s.Apply(func(d model.Document) model.Document { return s.Mutator().AddSkill(d) })

	if diff := cmp.Diff([]string{"first", "second:1", "first"}, calls); diff != "" {
		t.Fatalf("listener calls mismatch (-want +got):\n%s", diff)
	}
	if got := len(s.Snapshot().Skills); got != 2 {
		t.Fatalf("expected 2 skills, got %d", got)
	}
}

func TestStore_ReplaceAndSnapshotIsolation(t *testing.T) {
	s := store.New(model.Default())
	snap := s.Snapshot()

	s.Apply(func(d model.Document) model.Document {
		return s.Mutator().UpdateDocumentField(d, model.SectionSummary, "hello")
	})
	if snap.Summary != "" {
		t.Fatalf("earlier snapshot observed a later commit")
	}

	s.Replace(model.Default())
	if s.Snapshot().Summary != "" {
		t.Fatalf("replace did not reset the document")
	}
}

func TestStore_ConcurrentApply(t *testing.T) {
	s := store.New(model.Default())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Apply(func(d model.Document) model.Document { return s.Mutator().AddHobby(d) })
		}()
	}
	wg.Wait()

	if got := len(s.Snapshot().Hobbies); got != 50 {
		t.Fatalf("expected 50 hobbies, got %d", got)
	}
}

package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cvgen/pkg/media"
	"github.com/goliatone/go-cvgen/pkg/model"
	"github.com/goliatone/go-cvgen/pkg/store"
	"github.com/goliatone/go-cvgen/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	selectErr    error
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectErr != nil {
		return -1, s.selectErr
	}
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) assertConsumed(t *testing.T) {
	t.Helper()
	if s.inputPos != len(s.inputs) || s.selectPos != len(s.selectIdx) ||
		s.confirmPos != len(s.confirm) || s.textPos != len(s.textAreas) {
		t.Fatalf("prompts not consumed as expected: inputs %d/%d selects %d/%d confirms %d/%d textareas %d/%d",
			s.inputPos, len(s.inputs), s.selectPos, len(s.selectIdx),
			s.confirmPos, len(s.confirm), s.textPos, len(s.textAreas))
	}
}

type countingResetter struct {
	store *store.Store
	calls int
}

func (r *countingResetter) Reset(context.Context) model.Document {
	r.calls++
	r.store.Replace(model.Default())
	return model.Default()
}

func newEditor(t *testing.T, doc model.Document, driver *stubDriver, opts ...Option) (*Editor, *store.Store) {
	t.Helper()
	st := store.New(doc, store.WithIDGenerator(testsupport.SequenceIDs("id")))
	opts = append([]Option{WithPromptDriver(driver), WithLocale("en")}, opts...)
	e, err := New(st, opts...)
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	return e, st
}

func TestNew_RequiresStore(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}

func TestRun_DoneLeavesDocumentAlone(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{menuDone}}
	doc := testsupport.SampleDocument()
	e, st := newEditor(t, doc, driver)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	driver.assertConsumed(t)
	if diff := cmp.Diff(doc, st.Snapshot()); diff != "" {
		t.Fatalf("document changed (-want +got):\n%s", diff)
	}
}

func TestRun_PersonalAndSummaryCommitEachAnswer(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{menuPersonal, 0, len(model.PersonalFields) - 1, menuSummary, menuDone},
		inputs:    []string{"Ada Lovelace"},
		textAreas: []string{"Analytical engines"},
	}
	e, st := newEditor(t, model.Default(), driver)
	commits := 0
	st.Subscribe(func(model.Document) { commits++ })

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	driver.assertConsumed(t)

	doc := st.Snapshot()
	if doc.Personal.FullName != "Ada Lovelace" || doc.Summary != "Analytical engines" {
		t.Fatalf("unexpected document %+v", doc)
	}
	if commits != 2 {
		t.Fatalf("expected 2 commits, got %d", commits)
	}
}

func TestRun_AddSkillRepromptsInvalidLevel(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{menuSkills, 0, 2, menuDone},
		inputs:    []string{"Go", "14", "abc", "8"},
		textAreas: []string{"Concurrency"},
	}
	e, st := newEditor(t, model.Default(), driver)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	driver.assertConsumed(t)

	want := []model.Skill{{ID: "id-1", Name: "Go", Level: 8, Description: "Concurrency"}}
	if diff := cmp.Diff(want, st.Snapshot().Skills); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}
	wantInfo := []string{
		"Level must be a whole number from 0 to 10.",
		"Level must be a whole number from 0 to 10.",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_AddExperienceWithResponsibilities(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{
			menuExperience,
			0,    // add
			0, 0, // first responsibility, edit
			1,    // add responsibility
			3,    // back to experience list
			2,    // back to main menu
			menuDone,
		},
		inputs: []string{
			"Jembatan Cirebon", "Cirebon", "Dinas PUPR", "PT Karya", "2018-03", "present",
			"Site Engineer", "Tetap", "Terlampir",
			"Supervise works", "Weekly reports",
		},
	}
	e, st := newEditor(t, model.Default(), driver)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	driver.assertConsumed(t)

	want := []model.Experience{{
		ID:               "id-1",
		ActivityName:     "Jembatan Cirebon",
		Location:         "Cirebon",
		ClientName:       "Dinas PUPR",
		CompanyName:      "PT Karya",
		Responsibilities: []string{"Supervise works", "Weekly reports"},
		StartDate:        "2018-03",
		EndDate:          "present",
		JobTitle:         "Site Engineer",
		EmploymentStatus: "Tetap",
		ReferenceInfo:    "Terlampir",
	}}
	if diff := cmp.Diff(want, st.Snapshot().Experience); diff != "" {
		t.Fatalf("experience mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_RemoveFormalEducationKeepsPartition(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{menuFormalEducation, 1, 1, 2, menuDone},
	}
	e, st := newEditor(t, testsupport.SampleDocument(), driver)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	driver.assertConsumed(t)

	var ids []string
	for _, edu := range st.Snapshot().Education {
		ids = append(ids, edu.ID)
	}
	if diff := cmp.Diff([]string{"edu-1", "edu-2"}, ids); diff != "" {
		t.Fatalf("education mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_Picture(t *testing.T) {
	reader := func(results ...media.Result) ImageReader {
		return func(context.Context, string) <-chan media.Result {
			out := make(chan media.Result, 1)
			out <- results[0]
			close(out)
			return out
		}
	}

	t.Run("rejected", func(t *testing.T) {
		driver := &stubDriver{selectIdx: []int{menuPicture, 0, menuDone}, inputs: []string{"big.png"}}
		e, st := newEditor(t, model.Default(), driver, WithImageReader(reader(media.Result{Err: media.ErrImageTooLarge})))

		if err := e.Run(context.Background()); err != nil {
			t.Fatalf("run: %v", err)
		}
		if st.Snapshot().Personal.ProfilePicture != nil {
			t.Fatalf("expected picture to stay empty")
		}
		if diff := cmp.Diff([]string{"Image size must not exceed 2 MB."}, driver.infoMessages); diff != "" {
			t.Fatalf("info mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("accepted then cleared", func(t *testing.T) {
		uri := "data:image/png;base64,iVBORw0KGgo="
		driver := &stubDriver{
			selectIdx: []int{menuPicture, 0, menuPicture, 1, menuDone},
			inputs:    []string{"me.png"},
		}
		e, st := newEditor(t, model.Default(), driver, WithImageReader(reader(media.Result{DataURI: uri, ContentType: media.PNG})))
		var seen []string
		st.Subscribe(func(doc model.Document) { seen = append(seen, doc.Personal.Picture()) })

		if err := e.Run(context.Background()); err != nil {
			t.Fatalf("run: %v", err)
		}
		driver.assertConsumed(t)
		if diff := cmp.Diff([]string{uri, ""}, seen); diff != "" {
			t.Fatalf("picture history mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestRun_ResetNeedsConfirmation(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{menuReset, menuReset, menuDone},
		confirm:   []bool{false, true},
	}
	resetter := &countingResetter{}
	e, st := newEditor(t, testsupport.SampleDocument(), driver, WithResetter(resetter))
	resetter.store = st

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	driver.assertConsumed(t)
	if resetter.calls != 1 {
		t.Fatalf("expected one reset, got %d", resetter.calls)
	}
	if diff := cmp.Diff(model.Default(), st.Snapshot()); diff != "" {
		t.Fatalf("document not reset (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"All CV data has been deleted."}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_AbortStopsEditing(t *testing.T) {
	driver := &stubDriver{selectErr: ErrAborted}
	e, _ := newEditor(t, model.Default(), driver)

	if err := e.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{" 10 ", 10, false},
		{"11", 0, true},
		{"-1", 0, true},
		{"2.5", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := parseLevel(tc.raw)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("parseLevel(%q): got %d, %v", tc.raw, got, err)
		}
	}
}

// Package editor is the interactive terminal front end. It walks the user
// through every CV section and commits each answer to a store.Store, so the
// persistence listener sees every keystroke-level change.
package editor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-cvgen/pkg/dates"
	"github.com/goliatone/go-cvgen/pkg/i18n"
	"github.com/goliatone/go-cvgen/pkg/media"
	"github.com/goliatone/go-cvgen/pkg/model"
	"github.com/goliatone/go-cvgen/pkg/store"
)

// Main menu entries, in display order.
const (
	menuPersonal = iota
	menuSummary
	menuFormalEducation
	menuNonFormalEducation
	menuExperience
	menuProficiency
	menuSkills
	menuLanguages
	menuReferences
	menuHobbies
	menuPicture
	menuReset
	menuDone
)

const pageSize = 12

// Editor drives the prompt flows.
type Editor struct {
	store      *store.Store
	driver     PromptDriver
	translator i18n.Translator
	locale     string
	resetter   Resetter
	readImage  ImageReader
	theme      Theme
	logger     *zap.Logger
}

// New builds an editor over st. The survey driver is used unless
// WithPromptDriver says otherwise.
func New(st *store.Store, opts ...Option) (*Editor, error) {
	if st == nil {
		return nil, ErrNoStore
	}
	e := &Editor{
		store:     st,
		locale:    i18n.DefaultLocale,
		readImage: media.ReadFile,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.translator == nil {
		translator, err := i18n.Default()
		if err != nil {
			return nil, fmt.Errorf("editor: load translations: %w", err)
		}
		e.translator = translator
	}
	if e.driver == nil {
		e.driver = NewSurveyDriver()
	}
	return e, nil
}

type action struct {
	label string
	run   func(context.Context) error
}

func (e *Editor) actions() []action {
	return []action{
		menuPersonal:           {e.text("personalDataTitle"), e.editPersonal},
		menuSummary:            {e.text("aboutMe"), e.editSummary},
		menuFormalEducation:    {e.text("formalEducationTitle"), func(ctx context.Context) error { return e.editEducation(ctx, true) }},
		menuNonFormalEducation: {e.text("nonFormalEducationTitle"), func(ctx context.Context) error { return e.editEducation(ctx, false) }},
		menuExperience:         {e.text("workExperienceTitle"), e.editExperience},
		menuProficiency:        {e.text("languageProficiencyTitle"), e.editProficiency},
		menuSkills:             {e.text("skills"), e.editSkills},
		menuLanguages:          {e.text("languages"), e.editLanguages},
		menuReferences:         {e.text("references"), e.editReferences},
		menuHobbies:            {e.text("hobbies"), e.editHobbies},
		menuPicture:            {e.text("field.profilePicture"), e.editPicture},
		menuReset:              {e.text("resetAll"), e.reset},
		menuDone:               {e.text("menu.done"), nil},
	}
}

// Run shows the section menu until the user picks Done. Prompt errors end
// the session; ErrAborted means the user interrupted it.
func (e *Editor) Run(ctx context.Context) error {
	actions := e.actions()
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = a.label
	}

	for {
		idx, err := e.driver.Select(ctx, SelectConfig{
			Message:  e.text("menu.title"),
			Options:  labels,
			PageSize: len(labels),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) {
			e.warn(ctx, fmt.Sprintf("Invalid selection: %d", idx))
			continue
		}
		if actions[idx].run == nil {
			return nil
		}
		if err := actions[idx].run(ctx); err != nil {
			return err
		}
	}
}

func (e *Editor) editPersonal(ctx context.Context) error {
	fields := make([]string, 0, len(model.PersonalFields))
	for _, field := range model.PersonalFields {
		if field != model.FieldProfilePicture {
			fields = append(fields, field)
		}
	}

	for {
		personal := e.store.Snapshot().Personal
		options := make([]string, 0, len(fields)+1)
		for _, field := range fields {
			options = append(options, describe(e.text("field."+field), personal.Get(field)))
		}
		options = append(options, e.text("menu.back"))

		idx, err := e.driver.Select(ctx, SelectConfig{
			Message:  e.text("personalDataTitle"),
			Options:  options,
			PageSize: pageSize,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(fields) {
			return nil
		}

		field := fields[idx]
		value, err := e.driver.Input(ctx, InputConfig{
			Message: e.text("field." + field),
			Default: personal.Get(field),
			Help:    fieldHelp(field),
		})
		if err != nil {
			return err
		}
		e.apply(func(m *store.Mutator, doc model.Document) model.Document {
			return m.UpdatePersonal(doc, field, value)
		})
	}
}

func (e *Editor) editSummary(ctx context.Context) error {
	value, err := e.driver.TextArea(ctx, TextAreaConfig{
		Message: e.text("aboutMe"),
		Default: e.store.Snapshot().Summary,
	})
	if err != nil {
		return err
	}
	e.apply(func(m *store.Mutator, doc model.Document) model.Document {
		return m.UpdateDocumentField(doc, model.SectionSummary, value)
	})
	return nil
}

func (e *Editor) editProficiency(ctx context.Context) error {
	current := e.store.Snapshot().LanguageProficiency
	prompts := []fieldPrompt{
		{field: model.ProficiencyNational, current: current.National},
		{field: model.ProficiencyForeign, current: current.Foreign},
		{field: model.ProficiencyLocal, current: current.Local},
	}
	return e.promptFields(ctx, prompts, func(m *store.Mutator, doc model.Document, field, value string) model.Document {
		return m.UpdateLanguageProficiency(doc, field, value)
	})
}

func (e *Editor) editPicture(ctx context.Context) error {
	options := []string{e.text("menu.choosePicture"), e.text("menu.clearPicture"), e.text("menu.back")}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: e.text("field.profilePicture"), Options: options})
	if err != nil {
		return err
	}

	switch idx {
	case 0:
		path, err := e.driver.Input(ctx, InputConfig{Message: e.text("menu.picturePath")})
		if err != nil {
			return err
		}
		path = strings.TrimSpace(path)
		if path == "" {
			return nil
		}

		var res media.Result
		select {
		case res = <-e.readImage(ctx, path):
		case <-ctx.Done():
			return ctx.Err()
		}
		if res.Err != nil {
			e.logger.Warn("profile picture rejected", zap.String("path", path), zap.Error(res.Err))
			e.warn(ctx, media.Warning(res.Err, e.translator, e.locale))
			return nil
		}
		e.apply(func(m *store.Mutator, doc model.Document) model.Document {
			return m.UpdatePersonal(doc, model.FieldProfilePicture, res.DataURI)
		})
		e.logger.Debug("profile picture updated", zap.String("type", res.ContentType), zap.Int("bytes", res.Size))
		e.info(ctx, e.text("menu.pictureSaved"))
	case 1:
		e.apply(func(m *store.Mutator, doc model.Document) model.Document {
			return m.UpdatePersonal(doc, model.FieldProfilePicture, nil)
		})
	}
	return nil
}

func (e *Editor) reset(ctx context.Context) error {
	ok, err := e.driver.Confirm(ctx, ConfirmConfig{Message: e.text("resetConfirm")})
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if e.resetter != nil {
		e.resetter.Reset(ctx)
	} else {
		e.store.Replace(model.Default())
	}
	e.logger.Info("document reset")
	e.info(ctx, e.text("menu.resetDone"))
	return nil
}

// fieldPrompt is one question in a fixed sequence.
type fieldPrompt struct {
	field     string
	current   string
	multiline bool
}

// promptFields asks each question in turn and commits every answer before
// moving on.
func (e *Editor) promptFields(ctx context.Context, prompts []fieldPrompt, update func(*store.Mutator, model.Document, string, string) model.Document) error {
	for _, p := range prompts {
		var (
			value string
			err   error
		)
		label := e.text("field." + p.field)
		if p.multiline {
			value, err = e.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: p.current})
		} else {
			value, err = e.driver.Input(ctx, InputConfig{Message: label, Default: p.current, Help: fieldHelp(p.field)})
		}
		if err != nil {
			return err
		}
		field := p.field
		e.apply(func(m *store.Mutator, doc model.Document) model.Document {
			return update(m, doc, field, value)
		})
	}
	return nil
}

func (e *Editor) apply(fn func(*store.Mutator, model.Document) model.Document) model.Document {
	m := e.store.Mutator()
	return e.store.Apply(func(doc model.Document) model.Document {
		return fn(m, doc)
	})
}

func (e *Editor) text(key string, args ...any) string {
	return i18n.Text(e.translator, e.locale, key, nil, args...)
}

func (e *Editor) info(ctx context.Context, msg string) {
	_ = e.driver.Info(ctx, e.theme.InfoPrefix+msg)
}

func (e *Editor) warn(ctx context.Context, msg string) {
	_ = e.driver.Info(ctx, e.theme.ErrorPrefix+msg)
}

func fieldHelp(field string) string {
	switch field {
	case model.FieldDateOfBirth:
		return "YYYY-MM-DD"
	case model.ExperienceStartDate:
		return "YYYY-MM"
	case model.ExperienceEndDate:
		return "YYYY-MM or " + dates.PresentValue
	case model.EducationGraduationYear:
		return "YYYY"
	}
	return ""
}

func describe(label, value string) string {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return label
	}
	if runes := []rune(value); len(runes) > 40 {
		value = string(runes[:39]) + "…"
	}
	return label + ": " + value
}

package editor

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-cvgen/pkg/i18n"
	"github.com/goliatone/go-cvgen/pkg/media"
	"github.com/goliatone/go-cvgen/pkg/model"
)

// Theme captures optional prefixes the editor puts in front of messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Resetter wipes persisted data and puts the default document in the store.
// *session.Session satisfies it.
type Resetter interface {
	Reset(ctx context.Context) model.Document
}

// ImageReader loads a picture from disk. media.ReadFile is the default.
type ImageReader func(ctx context.Context, path string) <-chan media.Result

// Option configures the Editor.
type Option func(*Editor)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithTranslator sets the catalog used for labels.
func WithTranslator(t i18n.Translator) Option {
	return func(e *Editor) {
		if t != nil {
			e.translator = t
		}
	}
}

// WithLocale sets the label locale.
func WithLocale(locale string) Option {
	return func(e *Editor) {
		if locale != "" {
			e.locale = locale
		}
	}
}

// WithResetter hands the reset action to r. Without one a reset only
// replaces the in-memory document.
func WithResetter(r Resetter) Option {
	return func(e *Editor) {
		e.resetter = r
	}
}

// WithImageReader overrides how picture files are loaded.
func WithImageReader(fn ImageReader) Option {
	return func(e *Editor) {
		if fn != nil {
			e.readImage = fn
		}
	}
}

// WithLogger sets the editor logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(e *Editor) {
		e.theme = theme
	}
}

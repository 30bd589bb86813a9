package i18n

import (
	"errors"
	"strings"
)

var (
	// ErrMissingTranslation is returned when no locale in the fallback chain
	// defines the key.
	ErrMissingTranslation = errors.New("i18n: missing translation")
	// ErrMissingTranslator is reported to MissingHandler when no translator is
	// configured at all.
	ErrMissingTranslator = errors.New("i18n: translator not configured")
)

// Translator resolves a key for a locale. Args may carry a map[string]any of
// `{name}` replacements.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (f TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return f(locale, key, args...)
}

// MissingHandler decides what to show when a translation fails.
type MissingHandler func(locale, key string, args []any, err error) string

// KeyOnMissing renders the key itself, which keeps gaps visible.
func KeyOnMissing(_ string, key string, _ []any, _ error) string {
	return key
}

// Text translates key and falls back to onMissing (or the key) on failure.
func Text(t Translator, locale, key string, onMissing MissingHandler, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if onMissing == nil {
		onMissing = KeyOnMissing
	}
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	msg, err := t.Translate(locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(locale, key, args, err)
	}
	return msg
}

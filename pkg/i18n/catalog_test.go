package i18n_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cvgen/pkg/i18n"
)

func TestDefaultCatalog_LocalesAndMonths(t *testing.T) {
	catalog := i18n.MustDefault()

	if diff := cmp.Diff([]string{"en", "id"}, catalog.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}

	cases := []struct {
		locale, key, want string
	}{
		{"id", "month.3", "Maret"},
		{"en", "month.3", "March"},
		{"id-ID", "present", "Saat Ini"},
		{"en_US", "present", "Present"},
		{"fr", "present", "Saat Ini"},
		{"", "field.fullName", "Nama Personil"},
	}
	for _, tc := range cases {
		got, err := catalog.Translate(tc.locale, tc.key)
		if err != nil {
			t.Fatalf("%s/%s: %v", tc.locale, tc.key, err)
		}
		if got != tc.want {
			t.Fatalf("%s/%s: want %q, got %q", tc.locale, tc.key, tc.want, got)
		}
	}
}

func TestCatalog_Interpolation(t *testing.T) {
	catalog := i18n.MustDefault()
	got, err := catalog.Translate("en", "imageSizeWarning", map[string]any{"size": 2})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "Image size must not exceed 2 MB." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestCatalog_MissingKey(t *testing.T) {
	catalog := i18n.MustDefault()
	if _, err := catalog.Translate("en", "nope"); !errors.Is(err, i18n.ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
	if got := i18n.Text(catalog, "en", "nope", nil); got != "nope" {
		t.Fatalf("expected key fallback, got %q", got)
	}
	if got := i18n.Text(nil, "en", "present", func(_, _ string, _ []any, err error) string {
		if !errors.Is(err, i18n.ErrMissingTranslator) {
			t.Fatalf("expected ErrMissingTranslator, got %v", err)
		}
		return "fallback"
	}); got != "fallback" {
		t.Fatalf("unexpected handler result %q", got)
	}
}

func TestCatalog_LoadFSOverridesAndFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"msgs/en.yaml":  {Data: []byte("greeting: Hello {name}\nnested:\n  deep:\n    key: value\n")},
		"msgs/de.yml":   {Data: []byte("greeting: Hallo {name}\n")},
		"msgs/skip.txt": {Data: []byte("ignored")},
	}
	catalog := i18n.NewCatalog(i18n.WithFallbackLocale("en"))
	if err := catalog.LoadFS(fsys, "msgs"); err != nil {
		t.Fatalf("load: %v", err)
	}

	got, _ := catalog.Translate("de-AT", "greeting", map[string]string{"name": "Ada"})
	if got != "Hallo Ada" {
		t.Fatalf("unexpected greeting %q", got)
	}
	got, _ = catalog.Translate("de", "nested.deep.key")
	if got != "value" {
		t.Fatalf("expected fallback to en, got %q", got)
	}
}

type localized string

func (l localized) Locale() string { return string(l) }

func TestTemplateFuncs(t *testing.T) {
	funcs := i18n.TemplateFuncs(i18n.MustDefault(), i18n.TemplateConfig{})
	translate := funcs["translate"].(func(any, string, ...any) string)
	current := funcs["current_locale"].(func(any) string)

	cases := []struct {
		src  any
		want string
	}{
		{"en", "December"},
		{localized("en"), "December"},
		{map[string]any{"Locale": "id"}, "Desember"},
		{map[string]string{"Locale": "en"}, "December"},
		{nil, "Desember"},
	}
	for _, tc := range cases {
		if got := translate(tc.src, "month.12"); got != tc.want {
			t.Fatalf("translate(%v): want %q, got %q", tc.src, tc.want, got)
		}
	}
	if got := current(42); got != i18n.DefaultLocale {
		t.Fatalf("expected fallback locale, got %q", got)
	}
	if got := translate("en", "experienceItem", "n", 3); got != "Experience #3" {
		t.Fatalf("unexpected interpolation %q", got)
	}
	if got := translate("en", "no.such.key"); got != "no.such.key" {
		t.Fatalf("missing keys render as the key, got %q", got)
	}
}

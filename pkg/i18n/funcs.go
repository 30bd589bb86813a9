package i18n

import (
	"cmp"
	"fmt"
	"strings"
)

// TemplateConfig tunes TemplateFuncs.
type TemplateConfig struct {
	// FuncName renames the translate helper.
	FuncName string
	// LocaleKey is the map key read when a template hands over its whole
	// context instead of a locale string. Defaults to "Locale".
	LocaleKey string
	// Fallback is used when no locale can be read. Defaults to DefaultLocale.
	Fallback  string
	OnMissing MissingHandler
}

// TemplateFuncs returns the template helpers
//
//	translate(locale, key, name1, value1, ...) string
//	current_locale(locale) string
//
// locale is a string, a map holding LocaleKey, or any value with a Locale()
// method. Trailing arguments are name/value pairs filling {name}
// placeholders.
func TemplateFuncs(t Translator, cfg TemplateConfig) map[string]any {
	key := cmp.Or(strings.TrimSpace(cfg.LocaleKey), "Locale")
	fallback := cmp.Or(strings.TrimSpace(cfg.Fallback), DefaultLocale)
	locale := func(src any) string {
		return cmp.Or(localeOf(src, key), fallback)
	}

	return map[string]any{
		cmp.Or(strings.TrimSpace(cfg.FuncName), "translate"): func(src any, msgKey string, pairs ...any) string {
			var args []any
			if params := pairParams(pairs); params != nil {
				args = append(args, params)
			}
			return Text(t, locale(src), msgKey, cfg.OnMissing, args...)
		},
		"current_locale": locale,
	}
}

func localeOf(src any, key string) string {
	switch v := src.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case interface{ Locale() string }:
		return strings.TrimSpace(v.Locale())
	case map[string]string:
		return strings.TrimSpace(v[key])
	case map[string]any:
		if value, ok := v[key]; ok && value != nil {
			return strings.TrimSpace(fmt.Sprint(value))
		}
	}
	return ""
}

// pairParams turns ("n", 2, "path", "x") into {n: 2, path: x}. A trailing
// unpaired value is dropped.
func pairParams(pairs []any) map[string]any {
	if len(pairs) < 2 {
		return nil
	}
	params := make(map[string]any, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		name := strings.TrimSpace(fmt.Sprint(pairs[i]))
		if name != "" {
			params[name] = pairs[i+1]
		}
	}
	return params
}

// Package dates renders stored date strings for display. Stored values are
// free text; anything that does not parse is shown as typed.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-cvgen/pkg/i18n"
)

// Style selects the rendered precision.
type Style int

const (
	// Full renders "<day> <Month> <year>" for complete dates.
	Full Style = iota
	// MonthYear renders "<Month> <year>".
	MonthYear
)

// PresentValue marks an ongoing period, compared case-insensitively.
const PresentValue = "present"

var dayLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006/01/02",
}

// Format applies the display fallback chain:
//
//	""                 -> ""
//	"present"          -> translated "present"
//	"YYYY-MM"          -> "<Month> YYYY"
//	"YYYY-MM-DD", ...  -> "<D> <Month> YYYY" (Full) or "<Month> YYYY"
//	anything else      -> value unchanged
//
// Month names come from the translator's `month.N` keys and fall back to the
// English month name.
func Format(value string, style Style, locale string, t i18n.Translator) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if strings.EqualFold(trimmed, PresentValue) {
		return i18n.Text(t, locale, "present", nil)
	}

	if parsed, err := time.Parse("2006-01", trimmed); err == nil {
		return monthYear(parsed, locale, t)
	}
	for _, layout := range dayLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		if style == MonthYear {
			return monthYear(parsed, locale, t)
		}
		return fmt.Sprintf("%d %s %d", parsed.Day(), MonthName(parsed.Month(), locale, t), parsed.Year())
	}
	return value
}

// MonthName returns the localized month name.
func MonthName(month time.Month, locale string, t i18n.Translator) string {
	fallback := month.String()
	return i18n.Text(t, locale, "month."+strconv.Itoa(int(month)), func(string, string, []any, error) string {
		return fallback
	})
}

// Year extracts a leading four digit year, or "" when value does not start
// with one.
func Year(value string) string {
	value = strings.TrimSpace(value)
	if len(value) < 4 {
		return ""
	}
	if _, err := strconv.Atoi(value[:4]); err != nil {
		return ""
	}
	return value[:4]
}

func monthYear(ts time.Time, locale string, t i18n.Translator) string {
	return fmt.Sprintf("%s %d", MonthName(ts.Month(), locale, t), ts.Year())
}

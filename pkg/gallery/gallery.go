// Package gallery describes the preview templates and their color palettes as
// go-theme manifests.
package gallery

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Template names.
const (
	Formal       = "formal"
	Modern       = "modern"
	Professional = "professional"
	Corporate    = "corporate"
)

// DefaultTemplate is used when a request names no template or an unknown one.
const DefaultTemplate = Modern

// Manifest keys.
const (
	// TokenAccent holds the accent color of a manifest or variant.
	TokenAccent = "accent"
	// TokenFont names the CSS font stack.
	TokenFont = "font"
	// TemplatePage is the template key pointing at the page template file.
	TemplatePage = "preview.page"
)

var (
	// ErrInvalidColor rejects a color that is neither a palette name nor a
	// #rgb/#rrggbb literal.
	ErrInvalidColor = errors.New("gallery: invalid theme color")
	// ErrUnknownTemplate is returned by Select for names outside the gallery.
	ErrUnknownTemplate = errors.New("gallery: unknown template")

	hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// Swatch is one palette entry.
type Swatch struct {
	Name string
	Hex  string
}

// Template describes a gallery entry.
type Template struct {
	Name    string
	Label   string
	Aliases []string
	Font    string
	// Palette lists the selectable colors; the first one is the default.
	Palette []Swatch
}

// Templates is the built-in gallery.
var Templates = []Template{
	{
		Name:  Formal,
		Label: "Formal (Daftar Riwayat Hidup)",
		Font:  "'Times New Roman', Times, serif",
		Palette: []Swatch{
			{Name: "sky", Hex: "#0369a1"},
			{Name: "black", Hex: "#000000"},
		},
	},
	{
		Name:    Modern,
		Label:   "Modern",
		Aliases: []string{"tasya"},
		Font:    "'Poppins', sans-serif",
		Palette: []Swatch{
			{Name: "sea-green", Hex: "#2E8B57"},
			{Name: "orange", Hex: "#f97316"},
			{Name: "blue", Hex: "#1d4ed8"},
			{Name: "lime", Hex: "#a3e635"},
		},
	},
	{
		Name:    Professional,
		Label:   "Professional",
		Aliases: []string{"shawn"},
		Font:    "'Inter', sans-serif",
		Palette: []Swatch{
			{Name: "navy", Hex: "#1e3a8a"},
			{Name: "slate", Hex: "#334155"},
			{Name: "rust", Hex: "#c2410c"},
			{Name: "moss", Hex: "#3f6212"},
		},
	},
	{
		Name:    Corporate,
		Label:   "Corporate",
		Aliases: []string{"prema"},
		Font:    "'Lato', sans-serif",
		Palette: []Swatch{
			{Name: "black", Hex: "#000000"},
			{Name: "dark-olive", Hex: "#556b2f"},
			{Name: "olive", Hex: "#808000"},
			{Name: "amber", Hex: "#f59e0b"},
		},
	},
}

// Manifest converts t into a go-theme manifest. Each palette swatch becomes
// a variant overriding the accent token.
func (t Template) Manifest() *theme.Manifest {
	variants := make(map[string]theme.Variant, len(t.Palette))
	for _, swatch := range t.Palette {
		variants[swatch.Name] = theme.Variant{
			Tokens: map[string]string{TokenAccent: swatch.Hex},
		}
	}
	accent := ""
	if len(t.Palette) > 0 {
		accent = t.Palette[0].Hex
	}
	return &theme.Manifest{
		Name:    t.Name,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenAccent: accent,
			TokenFont:   t.Font,
		},
		Templates: map[string]string{
			TemplatePage: t.Name + ".tmpl",
		},
		Variants: variants,
	}
}

// NormalizeColor validates a literal hex color and lowercases it.
func NormalizeColor(color string) (string, error) {
	color = strings.TrimSpace(color)
	if !hexColor.MatchString(color) {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	return strings.ToLower(color), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

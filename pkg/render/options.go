package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cvgen/pkg/i18n"
)

// RenderOptions describe per-request presentation choices. None of them are
// stored on the document.
type RenderOptions struct {
	// Template names a gallery template ("formal", "modern", ...). Empty
	// selects the renderer's default.
	Template string
	// ThemeColor is a palette name or a literal #rrggbb accent.
	ThemeColor string
	// Locale selects translated labels, month names and placeholders.
	Locale     string
	Translator i18n.Translator
	// Theme, when set, is used as-is instead of resolving Template and
	// ThemeColor against the gallery.
	Theme *theme.RendererConfig
}

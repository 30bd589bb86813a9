// Package text renders a plain-text preview, handy in a terminal or a diff.
package text

import (
	"context"
	"strings"

	"github.com/goliatone/go-cvgen/pkg/formal"
	"github.com/goliatone/go-cvgen/pkg/gallery"
	"github.com/goliatone/go-cvgen/pkg/i18n"
	"github.com/goliatone/go-cvgen/pkg/model"
	"github.com/goliatone/go-cvgen/pkg/preview"
	"github.com/goliatone/go-cvgen/pkg/render"
)

// Name is the registry name of the renderer.
const Name = "text"

// twipsPerColumn maps form indents onto monospace columns.
const twipsPerColumn = 120

type Option func(*Renderer)

// WithCatalog overrides the gallery used to resolve template names.
func WithCatalog(catalog *gallery.Catalog) Option {
	return func(r *Renderer) {
		if catalog != nil {
			r.catalog = catalog
		}
	}
}

// WithTranslator sets the translator used when a request carries none.
func WithTranslator(t i18n.Translator) Option {
	return func(r *Renderer) {
		if t != nil {
			r.translator = t
		}
	}
}

// Renderer implements render.Renderer. Colors are ignored.
type Renderer struct {
	catalog    *gallery.Catalog
	translator i18n.Translator
}

var _ render.Renderer = (*Renderer)(nil)

func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.catalog == nil {
		r.catalog = gallery.Default()
	}
	if r.translator == nil {
		r.translator = i18n.MustDefault()
	}
	return r
}

func (r *Renderer) Name() string        { return Name }
func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

func (r *Renderer) Render(ctx context.Context, doc model.Document, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	translator := opts.Translator
	if translator == nil {
		translator = r.translator
	}
	name := opts.Template
	if opts.Theme != nil {
		name = opts.Theme.Theme
	}
	tpl, ok := r.catalog.Lookup(name)
	if !ok {
		tpl, _ = r.catalog.Lookup(gallery.DefaultTemplate)
	}

	view := preview.Build(doc, preview.Options{
		Template:   tpl.Name,
		Locale:     opts.Locale,
		Translator: translator,
	})

	var b strings.Builder
	if view.Formal != nil {
		writeForm(&b, view.Formal)
	} else {
		writeView(&b, view)
	}
	return []byte(b.String()), nil
}

func writeForm(b *strings.Builder, lines []formal.Line) {
	for _, line := range lines {
		if line.SpacingBefore >= formal.HeadingSpacing {
			b.WriteByte('\n')
		}
		indent := line.Indent / twipsPerColumn
		b.WriteString(strings.Repeat(" ", indent))
		if line.Kind != formal.Field {
			b.WriteString(line.Label)
			b.WriteByte('\n')
			continue
		}
		width := max(line.LabelWidth/twipsPerColumn-indent, len([]rune(line.Label))+1)
		b.WriteString(pad(line.Label, width))
		b.WriteString(": ")
		b.WriteString(line.Value)
		b.WriteByte('\n')
	}
}

func writeView(b *strings.Builder, view preview.View) {
	h := view.Header
	b.WriteString(strings.ToUpper(h.Name))
	b.WriteByte('\n')
	b.WriteString(h.Position)
	if h.Company != "" {
		b.WriteString(" | " + h.Company)
	}
	b.WriteByte('\n')
	if h.Birth != "" {
		b.WriteString(h.Birth + "\n")
	}
	for _, c := range append(append([]preview.Contact(nil), h.Contacts...), h.Details...) {
		b.WriteString(c.Label + ": " + c.Value + "\n")
	}

	for _, section := range view.Sections {
		b.WriteString("\n" + section.Title + "\n")
		b.WriteString(strings.Repeat("-", len([]rune(section.Title))) + "\n")
		for _, item := range section.Items {
			writeItem(b, item)
		}
	}
}

func writeItem(b *strings.Builder, item preview.Item) {
	head := item.Title
	if item.Subtitle != "" {
		if head != "" {
			head += " - "
		}
		head += item.Subtitle
	}
	if item.HasRating {
		head += " [" + strings.Repeat("#", item.Rating) + strings.Repeat(".", model.MaxLevel-item.Rating) + "]"
	}
	if item.Period != "" {
		head += " (" + item.Period + ")"
	}
	if head != "" {
		b.WriteString("* " + head + "\n")
	}
	for _, line := range item.Lines {
		b.WriteString("  " + line + "\n")
	}
}

func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

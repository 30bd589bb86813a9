// Package html renders the preview of a Document as a standalone HTML page
// using the gallery templates.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-cvgen/pkg/formal"
	"github.com/goliatone/go-cvgen/pkg/gallery"
	"github.com/goliatone/go-cvgen/pkg/i18n"
	"github.com/goliatone/go-cvgen/pkg/model"
	"github.com/goliatone/go-cvgen/pkg/preview"
	"github.com/goliatone/go-cvgen/pkg/render"
	rendertemplate "github.com/goliatone/go-cvgen/pkg/render/template"
	"github.com/goliatone/go-cvgen/pkg/render/template/gotemplate"
)

// Name is the registry name of the renderer.
const Name = "html"

// twipsPerPixel converts form indents (twips) to CSS pixels at 96 DPI. Tab
// stops are measured from the margin, so label widths subtract the indent.
const twipsPerPixel = 15

type Option func(*config)

type config struct {
	overrides        []fs.FS
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	catalog          *gallery.Catalog
	translator       i18n.Translator
	logger           *zap.Logger
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir layers a directory on disk over the bundled templates.
// Files found there win; everything else still comes from the bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.overrides = append(cfg.overrides, os.DirFS(path))
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithCatalog overrides the gallery used to resolve templates and colors.
func WithCatalog(catalog *gallery.Catalog) Option {
	return func(cfg *config) {
		if catalog != nil {
			cfg.catalog = catalog
		}
	}
}

// WithTranslator sets the translator used when a request carries none.
func WithTranslator(t i18n.Translator) Option {
	return func(cfg *config) {
		if t != nil {
			cfg.translator = t
		}
	}
}

// WithLogger sets the renderer logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	catalog    *gallery.Catalog
	translator i18n.Translator
	stylesheet string
	logger     *zap.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.catalog == nil {
		cfg.catalog = gallery.Default()
	}
	if cfg.translator == nil {
		cfg.translator = i18n.MustDefault()
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.overrides...),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithTemplateFunc(i18n.TemplateFuncs(cfg.translator, i18n.TemplateConfig{})),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates:  templates,
		catalog:    cfg.catalog,
		translator: cfg.translator,
		stylesheet: defaultStylesheet(),
		logger:     cfg.logger,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render builds the preview view for the requested template and color and
// executes the matching page template.
func (r *Renderer) Render(ctx context.Context, doc model.Document, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	locale := strings.TrimSpace(opts.Locale)
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	translator := opts.Translator
	if translator == nil {
		translator = r.translator
	}

	choice, err := r.resolve(opts)
	if err != nil {
		return nil, err
	}

	view := preview.Build(doc, preview.Options{
		Template:   choice.Template.Name,
		ThemeColor: choice.Accent,
		Locale:     locale,
		Translator: translator,
	})

	data := map[string]any{
		"Locale":     locale,
		"view":       view,
		"theme":      themeData(choice),
		"formal":     formalLines(view.Formal),
		"stylesheet": r.stylesheet,
	}
	for name, fn := range i18n.TemplateFuncs(translator, i18n.TemplateConfig{}) {
		data[name] = fn
	}

	page := choice.Config.Partials[gallery.TemplatePage]
	if page == "" {
		page = choice.Template.Name + gotemplate.DefaultExtension
	}
	out, err := r.templates.RenderTemplate(page, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	r.logger.Debug("preview rendered",
		zap.String("template", choice.Template.Name),
		zap.String("variant", choice.Variant),
		zap.String("locale", locale),
		zap.Int("bytes", len(out)),
	)
	return []byte(out), nil
}

func (r *Renderer) resolve(opts render.RenderOptions) (gallery.Choice, error) {
	if opts.Theme == nil {
		return r.catalog.Resolve(opts.Template, opts.ThemeColor)
	}
	tpl, ok := r.catalog.Lookup(opts.Theme.Theme)
	if !ok {
		tpl, _ = r.catalog.Lookup(gallery.DefaultTemplate)
	}
	return gallery.Choice{
		Template: tpl,
		Variant:  opts.Theme.Variant,
		Accent:   opts.Theme.Tokens[gallery.TokenAccent],
		Config:   opts.Theme,
	}, nil
}

type pageTheme struct {
	Name    string
	Variant string
	Accent  string
	Style   string
}

func themeData(choice gallery.Choice) pageTheme {
	return pageTheme{
		Name:    choice.Template.Name,
		Variant: choice.Variant,
		Accent:  choice.Accent,
		Style:   cssVarsStyle(choice.Config.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		value := strings.NewReplacer(";", "", "{", "", "}", "", "<", "").Replace(vars[key])
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}

type pageLine struct {
	Kind        string
	Label       string
	Value       string
	Indent      string
	LabelWidth  string
	Spacing     string
	Bold        bool
	Italic      bool
	Placeholder bool
}

var lineKinds = map[formal.Kind]string{
	formal.Field:   "field",
	formal.Heading: "heading",
	formal.Item:    "item",
	formal.Entry:   "entry",
}

func formalLines(lines []formal.Line) []pageLine {
	out := make([]pageLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, pageLine{
			Kind:        lineKinds[line.Kind],
			Label:       line.Label,
			Value:       line.Value,
			Indent:      pixels(line.Indent),
			LabelWidth:  pixels(max(line.LabelWidth-line.Indent, 0)),
			Spacing:     pixels(line.SpacingBefore),
			Bold:        line.Bold,
			Italic:      line.Italic,
			Placeholder: line.Placeholder,
		})
	}
	return out
}

func pixels(twips int) string {
	return strconv.Itoa(twips/twipsPerPixel) + "px"
}

package gallery

import (
	"fmt"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// CustomVariant names the variant used for a literal hex color.
const CustomVariant = "custom"

// Choice is a resolved template and color.
type Choice struct {
	Template  Template
	Variant   string
	Accent    string
	Selection *theme.Selection
	Config    *theme.RendererConfig
}

// Catalog indexes the gallery and resolves theme selections.
type Catalog struct {
	templates map[string]Template
	aliases   map[string]string
	manifests map[string]*theme.Manifest
	order     []string
	provider  theme.ThemeProvider
}

// NewCatalog registers templates. With no templates the built-in gallery is
// used.
func NewCatalog(templates ...Template) (*Catalog, error) {
	if len(templates) == 0 {
		templates = Templates
	}
	registry := theme.NewRegistry()
	c := &Catalog{
		templates: make(map[string]Template, len(templates)),
		aliases:   make(map[string]string),
		manifests: make(map[string]*theme.Manifest, len(templates)),
	}
	for _, tpl := range templates {
		name := normalizeName(tpl.Name)
		if name == "" {
			return nil, fmt.Errorf("gallery: template name required")
		}
		if _, exists := c.templates[name]; exists {
			return nil, fmt.Errorf("gallery: template %q already registered", name)
		}
		if len(tpl.Palette) == 0 {
			return nil, fmt.Errorf("gallery: template %q has no palette", name)
		}
		manifest := tpl.Manifest()
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("gallery: register %q: %w", name, err)
		}
		c.templates[name] = tpl
		c.manifests[name] = manifest
		c.order = append(c.order, name)
		for _, alias := range tpl.Aliases {
			c.aliases[normalizeName(alias)] = name
		}
	}
	c.provider = registry
	return c, nil
}

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// Default returns the shared built-in catalog.
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = NewCatalog()
	})
	if defaultCatalogErr != nil {
		panic(defaultCatalogErr)
	}
	return defaultCatalog
}

// Provider exposes the go-theme registry holding every manifest.
func (c *Catalog) Provider() theme.ThemeProvider {
	return c.provider
}

// Templates lists the templates in registration order.
func (c *Catalog) Templates() []Template {
	out := make([]Template, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.templates[name])
	}
	return out
}

// Lookup resolves a template name or alias.
func (c *Catalog) Lookup(name string) (Template, bool) {
	key := normalizeName(name)
	if canonical, ok := c.aliases[key]; ok {
		key = canonical
	}
	tpl, ok := c.templates[key]
	return tpl, ok
}

// Select implements theme.ThemeSelector. An empty variant picks the
// template's first swatch.
func (c *Catalog) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	tpl, ok := c.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	swatch, ok := findSwatch(tpl, variant)
	if !ok {
		return nil, fmt.Errorf("%w: %q has no variant %q", ErrInvalidColor, tpl.Name, variant)
	}
	return &theme.Selection{
		Theme:    tpl.Name,
		Variant:  swatch.Name,
		Manifest: c.manifests[normalizeName(tpl.Name)],
	}, nil
}

// Resolve picks a template (falling back to DefaultTemplate) and a color.
// color may be empty, a palette name, a palette hex value, or any literal
// #rgb/#rrggbb color.
func (c *Catalog) Resolve(template, color string) (Choice, error) {
	tpl, ok := c.Lookup(template)
	if !ok {
		tpl, _ = c.Lookup(DefaultTemplate)
	}
	if swatch, ok := findSwatch(tpl, color); ok {
		selection, err := c.Select(tpl.Name, swatch.Name)
		if err != nil {
			return Choice{}, err
		}
		return c.choice(tpl, selection, swatch.Hex), nil
	}

	accent, err := NormalizeColor(color)
	if err != nil {
		return Choice{}, err
	}
	selection := &theme.Selection{
		Theme:    tpl.Name,
		Variant:  CustomVariant,
		Manifest: c.manifests[normalizeName(tpl.Name)],
	}
	return c.choice(tpl, selection, accent), nil
}

func (c *Catalog) choice(tpl Template, selection *theme.Selection, accent string) Choice {
	return Choice{
		Template:  tpl,
		Variant:   selection.Variant,
		Accent:    accent,
		Selection: selection,
		Config:    rendererConfig(selection, accent),
	}
}

// rendererConfig flattens a selection into renderer-facing tokens. Variant
// tokens override the manifest's, then the resolved accent wins.
func rendererConfig(selection *theme.Selection, accent string) *theme.RendererConfig {
	manifest := selection.Manifest
	tokens := map[string]string{}
	partials := map[string]string{}
	if manifest != nil {
		for k, v := range manifest.Tokens {
			tokens[k] = v
		}
		for k, v := range manifest.Templates {
			partials[k] = v
		}
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			for k, v := range variant.Tokens {
				tokens[k] = v
			}
			for k, v := range variant.Templates {
				partials[k] = v
			}
		}
	}
	tokens[TokenAccent] = accent

	cssVars := make(map[string]string, len(tokens))
	for _, key := range sortedKeys(tokens) {
		cssVars["--"+key] = tokens[key]
	}
	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
	}
}

func findSwatch(tpl Template, color string) (Swatch, bool) {
	color = strings.TrimSpace(color)
	if color == "" {
		return tpl.Palette[0], true
	}
	for _, swatch := range tpl.Palette {
		if strings.EqualFold(swatch.Name, color) || strings.EqualFold(swatch.Hex, color) {
			return swatch, true
		}
	}
	return Swatch{}, false
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

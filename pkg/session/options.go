package session

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-cvgen/pkg/gallery"
	"github.com/goliatone/go-cvgen/pkg/i18n"
	"github.com/goliatone/go-cvgen/pkg/model"
	"github.com/goliatone/go-cvgen/pkg/render"
	"github.com/goliatone/go-cvgen/pkg/schema"
)

// Option configures a Session.
type Option func(*config)

type config struct {
	logger     *zap.Logger
	translator i18n.Translator
	locale     string
	catalog    *gallery.Catalog
	ids        model.IDGenerator
	key        string
	renderers  []render.Renderer
	closeSlot  bool
	loader     schema.LoaderOptions

	// templatesDir overrides bundled preview pages file by file.
	templatesDir string
}

// WithLogger sets the root logger. Subsystems get a component field.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTranslator replaces the embedded catalog.
func WithTranslator(t i18n.Translator) Option {
	return func(c *config) {
		if t != nil {
			c.translator = t
		}
	}
}

// WithLocale sets the session locale used by preview, export and the editor.
func WithLocale(locale string) Option {
	return func(c *config) {
		if locale != "" {
			c.locale = locale
		}
	}
}

// WithCatalog overrides the template gallery.
func WithCatalog(catalog *gallery.Catalog) Option {
	return func(c *config) {
		if catalog != nil {
			c.catalog = catalog
		}
	}
}

// WithIDGenerator sets the identifier source for new and backfilled entries.
func WithIDGenerator(ids model.IDGenerator) Option {
	return func(c *config) {
		if ids != nil {
			c.ids = ids
		}
	}
}

// WithStorageKey overrides the slot key.
func WithStorageKey(key string) Option {
	return func(c *config) {
		c.key = key
	}
}

// WithRenderer registers an extra preview renderer next to the HTML one.
func WithRenderer(r render.Renderer) Option {
	return func(c *config) {
		if r != nil {
			c.renderers = append(c.renderers, r)
		}
	}
}

// WithOwnedSlot makes Close also close the slot when it implements
// io.Closer.
func WithOwnedSlot() Option {
	return func(c *config) {
		c.closeSlot = true
	}
}

// WithLoaderOptions configures how ImportSource reads files and URLs.
func WithLoaderOptions(opts schema.LoaderOptions) Option {
	return func(c *config) {
		c.loader = opts
	}
}

// WithTemplatesDir layers a directory of page templates over the bundled ones.
func WithTemplatesDir(dir string) Option {
	return func(c *config) {
		c.templatesDir = dir
	}
}

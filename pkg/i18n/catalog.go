package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when a request names no locale or an unknown one.
const DefaultLocale = "id"

//go:embed locales/*.yaml
var embedded embed.FS

// Catalog holds flattened message tables per locale. Nested YAML mappings are
// joined with dots, so `month: {1: Januari}` is addressed as `month.1`.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
	fallback string
}

// CatalogOption customises a Catalog.
type CatalogOption func(*Catalog)

// WithFallbackLocale overrides DefaultLocale as the last lookup step.
func WithFallbackLocale(locale string) CatalogOption {
	return func(c *Catalog) {
		if locale = normalizeLocale(locale); locale != "" {
			c.fallback = locale
		}
	}
}

// NewCatalog returns an empty catalog.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{
		messages: make(map[string]map[string]string),
		fallback: DefaultLocale,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Default loads the embedded locale files.
func Default(opts ...CatalogOption) (*Catalog, error) {
	c := NewCatalog(opts...)
	if err := c.LoadFS(embedded, "locales"); err != nil {
		return nil, err
	}
	return c, nil
}

// MustDefault panics when the embedded catalog fails to parse.
func MustDefault(opts ...CatalogOption) *Catalog {
	c, err := Default(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFS reads every `<locale>.yaml` file under dir. Later files override
// keys loaded earlier for the same locale.
func (c *Catalog) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("i18n: read locales: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		ext := path.Ext(name)
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", name, err)
		}
		if err := c.Load(strings.TrimSuffix(name, ext), data); err != nil {
			return err
		}
	}
	return nil
}

// Load merges a YAML message table into locale.
func (c *Catalog) Load(locale string, data []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("i18n: parse %s: %w", locale, err)
	}
	flat := make(map[string]string)
	if len(root.Content) > 0 {
		if err := flatten("", root.Content[0], flat); err != nil {
			return fmt.Errorf("i18n: %s: %w", locale, err)
		}
	}

	locale = normalizeLocale(locale)
	c.mu.Lock()
	defer c.mu.Unlock()
	table := c.messages[locale]
	if table == nil {
		table = make(map[string]string, len(flat))
		c.messages[locale] = table
	}
	for k, v := range flat {
		table[k] = v
	}
	return nil
}

func flatten(prefix string, node *yaml.Node, out map[string]string) error {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if prefix != "" {
				key = prefix + "." + key
			}
			if err := flatten(key, node.Content[i+1], out); err != nil {
				return err
			}
		}
	case yaml.ScalarNode:
		out[prefix] = node.Value
	case yaml.AliasNode:
		return flatten(prefix, node.Alias, out)
	default:
		return fmt.Errorf("key %q: unsupported yaml node", prefix)
	}
	return nil
}

// Locales lists the loaded locales.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Has reports whether locale has a message table.
func (c *Catalog) Has(locale string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.messages[normalizeLocale(locale)]
	return ok
}

// Translate looks key up in locale, its base language ("id" for "id-ID") and
// finally the fallback locale.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range c.chain(locale) {
		if msg, ok := c.messages[candidate][key]; ok {
			return interpolate(msg, args), nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrMissingTranslation, locale, key)
}

func (c *Catalog) chain(locale string) []string {
	locale = normalizeLocale(locale)
	chain := make([]string, 0, 3)
	if locale != "" {
		chain = append(chain, locale)
		if base, _, ok := strings.Cut(locale, "-"); ok {
			chain = append(chain, base)
		}
	}
	return append(chain, c.fallback)
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}

func interpolate(msg string, args []any) string {
	if len(args) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	for _, arg := range args {
		switch values := arg.(type) {
		case map[string]any:
			for name, value := range values {
				msg = strings.ReplaceAll(msg, "{"+name+"}", fmt.Sprint(value))
			}
		case map[string]string:
			for name, value := range values {
				msg = strings.ReplaceAll(msg, "{"+name+"}", value)
			}
		}
	}
	return msg
}

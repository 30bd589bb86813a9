// Package gotemplate runs the preview page templates on a pongo2 template
// set. Several fs.FS layers can be stacked so a user directory overrides
// individual embedded pages and partials.
package gotemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-cvgen/pkg/render/template"
)

// DefaultExtension is appended to template names that carry no extension.
const DefaultExtension = ".tmpl"

// ErrNoTemplates is returned by New when no template layer was configured.
var ErrNoTemplates = errors.New("gotemplate: no template source")

// Option configures New.
type Option func(*options)

type options struct {
	layers    []fs.FS
	extension string
	funcs     map[string]any
	globals   map[string]any
}

// WithFS adds template layers. Layers added first are searched first.
func WithFS(layers ...fs.FS) Option {
	return func(o *options) {
		for _, layer := range layers {
			if layer != nil {
				o.layers = append(o.layers, layer)
			}
		}
	}
}

// WithExtension overrides DefaultExtension.
func WithExtension(ext string) Option {
	return func(o *options) {
		if ext = strings.TrimSpace(ext); ext != "" {
			o.extension = "." + strings.TrimPrefix(ext, ".")
		}
	}
}

// WithTemplateFunc registers helpers. pongo2.FilterFunction values become
// filters, other funcs are callable from every template.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(o *options) {
		for name, fn := range funcs {
			o.funcs[strings.TrimSpace(name)] = fn
		}
	}
}

// WithGlobals seeds values visible to every template.
func WithGlobals(values map[string]any) Option {
	return func(o *options) {
		for key, value := range values {
			o.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Engine is a template.TemplateRenderer backed by pongo2.
type Engine struct {
	set *pongo2.TemplateSet
	ext string

	mu    sync.Mutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

var builtinsOnce sync.Once

// New builds an Engine.
func New(opts ...Option) (*Engine, error) {
	o := options{
		extension: DefaultExtension,
		funcs:     map[string]any{},
		globals:   map[string]any{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if len(o.layers) == 0 {
		return nil, ErrNoTemplates
	}
	builtinsOnce.Do(registerBuiltins)

	loaders := make([]pongo2.TemplateLoader, 0, len(o.layers))
	for _, layer := range o.layers {
		loaders = append(loaders, pongo2.NewFSLoader(layer))
	}
	set := pongo2.NewSet("cvgen", loaders...)

	globals, err := toContext(o.globals)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: globals: %w", err)
	}
	for name, fn := range o.funcs {
		if name == "" || fn == nil {
			continue
		}
		if filter, ok := fn.(pongo2.FilterFunction); ok {
			if !pongo2.FilterExists(name) {
				if err := pongo2.RegisterFilter(name, filter); err != nil {
					return nil, fmt.Errorf("gotemplate: filter %q: %w", name, err)
				}
			}
			continue
		}
		if reflect.TypeOf(fn).Kind() != reflect.Func {
			return nil, fmt.Errorf("gotemplate: helper %q is a %T, not a func", name, fn)
		}
		globals[name] = fn
	}
	set.Globals = globals

	return &Engine{
		set:   set,
		ext:   o.extension,
		cache: make(map[string]*pongo2.Template),
	}, nil
}

// RenderTemplate executes the template called name, adding the default
// extension when name has none.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if path.Ext(name) == "" {
		name += e.ext
	}
	tpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return execute(tpl, data, out)
}

// RenderString parses src and executes it once.
func (e *Engine) RenderString(src string, data any, out ...io.Writer) (string, error) {
	tpl, err := e.set.FromString(src)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse: %w", err)
	}
	return execute(tpl, data, out)
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tpl, ok := e.cache[name]; ok {
		return tpl, nil
	}
	tpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", name, err)
	}
	e.cache[name] = tpl
	return tpl, nil
}

func execute(tpl *pongo2.Template, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: data: %w", err)
	}
	rendered, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute: %w", err)
	}
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// toContext turns data into plain maps, slices and scalars with one JSON
// round trip so templates see the same shape the document has on disk.
// Top-level funcs are passed through.
func toContext(data any) (pongo2.Context, error) {
	ctx := pongo2.Context{}
	if data == nil {
		return ctx, nil
	}

	values, ok := data.(map[string]any)
	if c, isCtx := data.(pongo2.Context); isCtx {
		values, ok = c, true
	}
	if !ok {
		var plain map[string]any
		if err := roundTrip(data, &plain); err != nil {
			return nil, err
		}
		return pongo2.Context(plain), nil
	}

	plain := make(map[string]any, len(values))
	for key, value := range values {
		if key = strings.TrimSpace(key); key == "" {
			continue
		}
		if value != nil && reflect.TypeOf(value).Kind() == reflect.Func {
			ctx[key] = value
			continue
		}
		plain[key] = value
	}
	var decoded map[string]any
	if err := roundTrip(plain, &decoded); err != nil {
		return nil, err
	}
	ctx.Update(pongo2.Context(decoded))
	return ctx, nil
}

func roundTrip(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func registerBuiltins() {
	builtins := map[string]pongo2.FilterFunction{
		"trim":     filterTrim,
		"initials": filterInitials,
	}
	for name, fn := range builtins {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterInitials turns "Budi Santoso" into "BS", keeping at most two letters.
func filterInitials(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var initials []rune
	for _, word := range strings.Fields(in.String()) {
		for _, r := range word {
			if unicode.IsLetter(r) {
				initials = append(initials, unicode.ToUpper(r))
				break
			}
		}
		if len(initials) == 2 {
			break
		}
	}
	return pongo2.AsValue(string(initials)), nil
}

// Package session wires the document store to persistence, preview and
// export. It is what the command line and any embedding program talk to.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/goliatone/go-cvgen/pkg/editor"
	"github.com/goliatone/go-cvgen/pkg/export"
	"github.com/goliatone/go-cvgen/pkg/gallery"
	"github.com/goliatone/go-cvgen/pkg/i18n"
	"github.com/goliatone/go-cvgen/pkg/model"
	"github.com/goliatone/go-cvgen/pkg/persist"
	"github.com/goliatone/go-cvgen/pkg/render"
	"github.com/goliatone/go-cvgen/pkg/renderers/html"
	"github.com/goliatone/go-cvgen/pkg/renderers/text"
	"github.com/goliatone/go-cvgen/pkg/schema"
	"github.com/goliatone/go-cvgen/pkg/store"
)

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("session: closed")

// Session owns one document and everything that reads or writes it.
type Session struct {
	store      *store.Store
	adapter    *persist.Adapter
	slot       persist.Slot
	closeSlot  bool
	renderers  *render.Registry
	exporter   *export.Exporter
	catalog    *gallery.Catalog
	translator i18n.Translator
	locale     string
	ids        model.IDGenerator
	loader     *schema.Loader
	logger     *zap.Logger

	muted       atomic.Bool
	closed      atomic.Bool
	unsubscribe func()
}

// Open loads the document stored in slot and starts saving every change
// back to it.
func Open(ctx context.Context, slot persist.Slot, opts ...Option) (*Session, error) {
	if slot == nil {
		return nil, errors.New("session: slot is required")
	}
	cfg := config{
		locale: i18n.DefaultLocale,
		ids:    model.DefaultIDs,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.translator == nil {
		catalog, err := i18n.Default()
		if err != nil {
			return nil, fmt.Errorf("session: load translations: %w", err)
		}
		cfg.translator = catalog
	}
	if cfg.catalog == nil {
		cfg.catalog = gallery.Default()
	}

	adapter := persist.New(slot,
		persist.WithKey(cfg.key),
		persist.WithIDGenerator(cfg.ids),
		persist.WithLogger(cfg.logger.With(zap.String("component", "persist"))),
	)

	renderers := render.NewRegistry()
	preview, err := html.New(
		html.WithCatalog(cfg.catalog),
		html.WithTranslator(cfg.translator),
		html.WithTemplatesDir(cfg.templatesDir),
		html.WithLogger(cfg.logger.With(zap.String("component", "preview"))),
	)
	if err != nil {
		_ = adapter.Close()
		return nil, err
	}
	plain := text.New(text.WithCatalog(cfg.catalog), text.WithTranslator(cfg.translator))
	for _, r := range append([]render.Renderer{preview, plain}, cfg.renderers...) {
		if err := renderers.Register(r); err != nil {
			_ = adapter.Close()
			return nil, fmt.Errorf("session: %w", err)
		}
	}

	s := &Session{
		adapter:   adapter,
		slot:      slot,
		closeSlot: cfg.closeSlot,
		renderers: renderers,
		exporter: export.NewExporter(
			export.WithLogger(cfg.logger.With(zap.String("component", "export"))),
			export.WithOptions(export.Options{Locale: cfg.locale, Translator: cfg.translator}),
		),
		catalog:    cfg.catalog,
		translator: cfg.translator,
		locale:     cfg.locale,
		ids:        cfg.ids,
		loader:     schema.NewLoader(cfg.loader),
		logger:     cfg.logger,
	}
	s.store = store.New(adapter.Load(ctx), store.WithIDGenerator(cfg.ids))
	s.unsubscribe = s.store.Subscribe(s.save)
	s.logger.Debug("session opened", zap.String("key", adapter.Key()), zap.String("locale", cfg.locale))
	return s, nil
}

func (s *Session) save(doc model.Document) {
	if s.muted.Load() {
		return
	}
	s.adapter.SaveAsync(doc)
}

// Store exposes the mutation API. Every Apply is persisted.
func (s *Session) Store() *store.Store {
	return s.store
}

// Document returns the current snapshot.
func (s *Session) Document() model.Document {
	return s.store.Snapshot()
}

// Catalog returns the template gallery.
func (s *Session) Catalog() *gallery.Catalog {
	return s.catalog
}

// Renderers returns the preview renderer registry.
func (s *Session) Renderers() *render.Registry {
	return s.renderers
}

// Locale returns the session locale.
func (s *Session) Locale() string {
	return s.locale
}

// Editor builds an interactive editor over the session store. Its reset
// action clears the persisted slot.
func (s *Session) Editor(opts ...editor.Option) (*editor.Editor, error) {
	base := []editor.Option{
		editor.WithTranslator(s.translator),
		editor.WithLocale(s.locale),
		editor.WithResetter(s),
		editor.WithLogger(s.logger.With(zap.String("component", "editor"))),
	}
	return editor.New(s.store, append(base, opts...)...)
}

// PreviewOptions selects the renderer and its options. Renderer defaults to
// "html".
type PreviewOptions struct {
	Renderer string
	render.RenderOptions
}

// Preview renders the current document.
func (s *Session) Preview(ctx context.Context, opts PreviewOptions) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	name := strings.TrimSpace(opts.Renderer)
	if name == "" {
		name = html.Name
	}
	renderer, err := s.renderers.Get(name)
	if err != nil {
		return nil, err
	}
	if opts.Locale == "" {
		opts.Locale = s.locale
	}
	if opts.Translator == nil {
		opts.Translator = s.translator
	}
	return renderer.Render(ctx, s.store.Snapshot(), opts.RenderOptions)
}

// Export renders the current document and hands it to sink. Only one export
// runs at a time; a concurrent request fails with export.ErrExportInProgress.
func (s *Session) Export(ctx context.Context, sink export.Sink) export.Result {
	if s.closed.Load() {
		return export.Result{Err: ErrClosed}
	}
	return s.exporter.Export(ctx, s.store.Snapshot(), sink)
}

// ExportAsync is Export on a background goroutine.
func (s *Session) ExportAsync(ctx context.Context, sink export.Sink) <-chan export.Result {
	if s.closed.Load() {
		out := make(chan export.Result, 1)
		out <- export.Result{Err: ErrClosed}
		close(out)
		return out
	}
	return s.exporter.Start(ctx, s.store.Snapshot(), sink)
}

// Import validates raw against the document schema, merges it over the
// defaults and replaces the session document. Invalid input leaves the
// document untouched.
func (s *Session) Import(ctx context.Context, raw []byte) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := schema.Validate(raw); err != nil {
		return err
	}
	doc, report := persist.HydrateReport(raw, s.ids)
	if err := report.Err(); err != nil {
		return fmt.Errorf("session: import: %w", err)
	}
	for _, fix := range report.Backfills {
		s.logger.Info("imported entry id reassigned",
			zap.String("section", fix.Section),
			zap.String("old_id", fix.OldID),
			zap.String("new_id", fix.NewID),
		)
	}
	s.store.Replace(doc)
	s.logger.Info("document imported", zap.Int("bytes", len(raw)))
	return nil
}

// ImportFile reads path and imports it.
func (s *Session) ImportFile(ctx context.Context, path string) error {
	return s.ImportSource(ctx, schema.SourceFromFile(path))
}

// ImportSource reads src with the session loader and imports it.
func (s *Session) ImportSource(ctx context.Context, src schema.Source) error {
	if s.closed.Load() {
		return ErrClosed
	}
	raw, err := s.loader.Load(ctx, src)
	if err != nil {
		return fmt.Errorf("session: import: %w", err)
	}
	s.logger.Debug("import source read", zap.String("kind", string(src.Kind())), zap.String("location", src.Location()))
	return s.Import(ctx, raw)
}

// Reset deletes the stored document and starts over from the defaults.
// Confirmation is the caller's job.
func (s *Session) Reset(ctx context.Context) model.Document {
	doc := s.adapter.Reset(ctx)
	s.muted.Store(true)
	s.store.Replace(doc)
	s.muted.Store(false)
	s.logger.Info("document reset")
	return doc
}

// Close flushes pending saves and releases the slot when the session owns
// it. It is safe to call more than once.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.unsubscribe()
	err := s.adapter.Close()
	if closer, ok := s.slot.(io.Closer); ok && s.closeSlot {
		err = errors.Join(err, closer.Close())
	}
	return err
}

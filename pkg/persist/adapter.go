package persist

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-cvgen/pkg/model"
)

// StorageKey names the slot holding the document. The suffix versions the
// stored shape.
const StorageKey = "cvgen.document.v2"

// Option customises an Adapter.
type Option func(*Adapter)

// WithKey overrides the slot key.
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithLogger routes persistence warnings to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithIDGenerator sets the generator used to backfill identifiers on load.
func WithIDGenerator(ids model.IDGenerator) Option {
	return func(a *Adapter) {
		if ids != nil {
			a.ids = ids
		}
	}
}

// Adapter saves and loads the session document. Save failures are logged and
// never surface to callers: persistence is best effort.
type Adapter struct {
	slot   Slot
	key    string
	logger *zap.Logger
	ids    model.IDGenerator

	mu      sync.Mutex
	pending *model.Document
	closed  bool
	wake    chan struct{}
	done    chan struct{}
}

// New builds an adapter over slot and starts its background writer.
func New(slot Slot, opts ...Option) *Adapter {
	a := &Adapter{
		slot:   slot,
		key:    StorageKey,
		logger: zap.NewNop(),
		ids:    model.DefaultIDs,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	go a.writer()
	return a
}

// Key returns the slot key in use.
func (a *Adapter) Key() string {
	return a.key
}

// Save serializes doc and overwrites the slot.
func (a *Adapter) Save(ctx context.Context, doc model.Document) {
	data, err := json.Marshal(doc)
	if err != nil {
		a.logger.Error("encode document", zap.String("key", a.key), zap.Error(err))
		return
	}
	if err := a.slot.Set(ctx, a.key, data); err != nil {
		a.logger.Warn("save document", zap.String("key", a.key), zap.Error(err))
		return
	}
	a.logger.Debug("document saved", zap.String("key", a.key), zap.Int("bytes", len(data)))
}

// SaveAsync queues doc for the background writer and returns immediately.
// Only the most recent queued snapshot is written when writes fall behind.
func (a *Adapter) SaveAsync(doc model.Document) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		a.logger.Warn("save after close dropped", zap.String("key", a.key))
		return
	}
	a.pending = &doc
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *Adapter) writer() {
	defer close(a.done)
	for range a.wake {
		a.flush()
	}
	a.flush()
}

func (a *Adapter) flush() {
	a.mu.Lock()
	doc := a.pending
	a.pending = nil
	a.mu.Unlock()
	if doc != nil {
		a.Save(context.Background(), *doc)
	}
}

// Close stops the writer after the queued snapshot, if any, is written.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.wake)
	}
	a.mu.Unlock()
	<-a.done
	return nil
}

// Load reads the slot. Missing or unparsable data yields model.Default.
// Sections that fail to decode keep their defaults and are logged.
func (a *Adapter) Load(ctx context.Context) model.Document {
	data, err := a.slot.Get(ctx, a.key)
	if errors.Is(err, ErrNotFound) {
		return model.Default()
	}
	if err != nil {
		a.logger.Warn("read document", zap.String("key", a.key), zap.Error(err))
		return model.Default()
	}

	doc, report := HydrateReport(data, a.ids)
	for _, err := range report.Errors {
		if errors.Is(err, ErrUnparsable) {
			a.logger.Warn("stored document unparsable, using defaults", zap.String("key", a.key), zap.Error(err))
			return model.Default()
		}
		a.logger.Warn("stored section ignored", zap.String("key", a.key), zap.Error(err))
	}
	for _, fix := range report.Backfills {
		a.logger.Info("entry id backfilled",
			zap.String("section", fix.Section),
			zap.Int("index", fix.Index),
			zap.String("old_id", fix.OldID),
			zap.String("new_id", fix.NewID),
		)
	}
	return doc
}

// Reset deletes the slot and returns a fresh default document. Confirmation
// is the caller's job.
func (a *Adapter) Reset(ctx context.Context) model.Document {
	a.mu.Lock()
	a.pending = nil
	a.mu.Unlock()
	if err := a.slot.Delete(ctx, a.key); err != nil {
		a.logger.Warn("delete document", zap.String("key", a.key), zap.Error(err))
	}
	return model.Default()
}

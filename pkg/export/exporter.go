package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/goliatone/go-cvgen/pkg/model"
)

// ErrExportInProgress rejects an export requested while another one runs.
var ErrExportInProgress = errors.New("export: export already in progress")

// ErrMissingPart reports a package part absent from an exported file.
var ErrMissingPart = errors.New("export: missing package part")

// Sink receives a finished document.
type Sink func(ctx context.Context, name string, data []byte) error

// DirSink writes documents into dir, creating it when missing.
func DirSink(dir string) Sink {
	return func(_ context.Context, name string, data []byte) error {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("export: create %s: %w", dir, err)
		}
		path := filepath.Join(dir, filepath.Base(name))
		if err := os.WriteFile(path, data, 0o640); err != nil {
			return fmt.Errorf("export: write %s: %w", path, err)
		}
		return nil
	}
}

// Result reports a finished export.
type Result struct {
	Name  string
	Bytes int
	Err   error
}

// Option customises an Exporter.
type Option func(*Exporter)

// WithLogger routes export failures to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithOptions sets the document build options.
func WithOptions(opts Options) Option {
	return func(e *Exporter) {
		e.opts = opts
	}
}

// Exporter runs at most one export at a time. Once started an export runs
// to completion.
type Exporter struct {
	busy   atomic.Bool
	opts   Options
	logger *zap.Logger
}

// NewExporter builds an exporter.
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Busy reports whether an export is in flight.
func (e *Exporter) Busy() bool {
	return e.busy.Load()
}

// Export renders doc and hands it to sink synchronously.
func (e *Exporter) Export(ctx context.Context, doc model.Document, sink Sink) Result {
	if !e.busy.CompareAndSwap(false, true) {
		return Result{Err: ErrExportInProgress}
	}
	defer e.busy.Store(false)
	return e.run(ctx, doc, sink)
}

// Start runs the export on its own goroutine. The returned channel yields
// exactly one Result. A request made while busy resolves immediately with
// ErrExportInProgress.
func (e *Exporter) Start(ctx context.Context, doc model.Document, sink Sink) <-chan Result {
	out := make(chan Result, 1)
	if !e.busy.CompareAndSwap(false, true) {
		out <- Result{Err: ErrExportInProgress}
		close(out)
		return out
	}
	go func() {
		res := e.run(context.WithoutCancel(ctx), doc, sink)
		e.busy.Store(false)
		out <- res
		close(out)
	}()
	return out
}

func (e *Exporter) run(ctx context.Context, doc model.Document, sink Sink) Result {
	name := FileName(doc)
	data, err := Render(ctx, doc, e.opts)
	if err == nil {
		err = sink(ctx, name, data)
	}
	if err != nil {
		e.logger.Error("export failed", zap.String("file", name), zap.Error(err))
		return Result{Name: name, Err: err}
	}
	e.logger.Info("export finished", zap.String("file", name), zap.Int("bytes", len(data)))
	return Result{Name: name, Bytes: len(data)}
}

// Package cvgen is the top-level entry point: open a session over a storage
// slot, or render and export documents directly.
package cvgen

import (
	"context"

	"github.com/goliatone/go-cvgen/pkg/export"
	"github.com/goliatone/go-cvgen/pkg/model"
	"github.com/goliatone/go-cvgen/pkg/persist"
	"github.com/goliatone/go-cvgen/pkg/render"
	"github.com/goliatone/go-cvgen/pkg/renderers/html"
	"github.com/goliatone/go-cvgen/pkg/schema"
	"github.com/goliatone/go-cvgen/pkg/session"
)

// Document aliases model.Document for callers that only need the root
// package.
type Document = model.Document

// RenderOptions selects template, color and locale for a preview.
type RenderOptions = render.RenderOptions

// Session aliases session.Session.
type Session = session.Session

// NewDocument returns an empty document with the form defaults.
func NewDocument() Document {
	return model.Default()
}

// Open starts a session over slot. See session.Open.
func Open(ctx context.Context, slot persist.Slot, options ...session.Option) (*Session, error) {
	return session.Open(ctx, slot, options...)
}

// Parse validates raw JSON against the document schema and merges it over
// the defaults, backfilling missing or duplicate entry identifiers.
func Parse(raw []byte) (Document, error) {
	if err := schema.Validate(raw); err != nil {
		return Document{}, err
	}
	return persist.Hydrate(raw, nil)
}

// PreviewHTML renders doc as a standalone HTML page.
func PreviewHTML(ctx context.Context, doc Document, opts RenderOptions, options ...html.Option) ([]byte, error) {
	renderer, err := html.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, doc, opts)
}

// ExportDOCX renders doc in the numbered form layout as a .docx file and
// returns the suggested file name with the bytes.
func ExportDOCX(ctx context.Context, doc Document, opts export.Options) (string, []byte, error) {
	data, err := export.Render(ctx, doc, opts)
	if err != nil {
		return "", nil, err
	}
	return export.FileName(doc), data, nil
}

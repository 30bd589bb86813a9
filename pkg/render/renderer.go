package render

import (
	"context"

	"github.com/goliatone/go-cvgen/pkg/model"
)

// Renderer turns a Document into bytes (HTML preview, plain text, ...).
// Implementations must not mutate the document.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc model.Document, options RenderOptions) ([]byte, error)
}

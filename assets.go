package cvgen

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-cvgen/pkg/renderers/html"
)

//go:embed pkg/renderers/html/assets/*.css
var embeddedAssets embed.FS

// AssetsFS exposes the preview stylesheet so applications serving the HTML
// preview can link it instead of relying on the inlined copy.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(cvgen.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "pkg/renderers/html/assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// EmbeddedTemplates exposes the built-in page templates so callers can copy
// and adjust them, then pass the result to html.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/fumiama/go-docx"

	"github.com/goliatone/go-cvgen/pkg/formal"
	"github.com/goliatone/go-cvgen/pkg/i18n"
	"github.com/goliatone/go-cvgen/pkg/model"
)

// ContentType is the MIME type of the produced documents.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	fontFamily = "Calibri"
	// Half-points: 22 is 11pt.
	fontSize = "22"
)

// Options tune the document build.
type Options struct {
	// Locale drives month names and the "present" label in dates. The
	// printed form is Indonesian, so it defaults to i18n.DefaultLocale.
	Locale     string
	Translator i18n.Translator
}

// Build lays out doc as an A4 office document. It only reads doc.
func Build(doc model.Document, opts Options) *docx.Docx {
	if opts.Locale == "" {
		opts.Locale = i18n.DefaultLocale
	}
	lines := formal.Layout(doc, formal.Options{
		Locale:     opts.Locale,
		Translator: opts.Translator,
	})

	file := docx.New().WithDefaultTheme()
	for _, line := range lines {
		writeLine(file.AddParagraph(), line)
	}
	return file.WithA4Page()
}

// Render builds doc and serializes it with core properties and a
// page-number footer.
func Render(ctx context.Context, doc model.Document, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := Build(doc, opts).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("export: write document: %w", err)
	}
	return finishPackage(buf.Bytes(), PropertiesFor(doc))
}

func writeLine(p *docx.Paragraph, line formal.Line) {
	props := &docx.ParagraphProperties{}
	if line.Indent > 0 {
		props.Ind = &docx.Ind{Left: line.Indent}
	}
	if line.SpacingBefore > 0 {
		props.Spacing = &docx.Spacing{Before: line.SpacingBefore}
	}

	switch line.Kind {
	case formal.Field:
		props.Tabs = &docx.Tabs{Tabs: []*docx.Tab{{Val: "left", Position: line.LabelWidth}}}
		text(p, line.Label)
		p.AddTab()
		text(p, ": ")
		if line.Value != "" {
			value := text(p, line.Value)
			if line.Bold {
				value.Bold()
			}
		}
	default:
		run := text(p, line.Label)
		if line.Bold {
			run.Bold()
		}
		if line.Italic {
			run.Italic()
		}
	}
	p.Properties = props
}

// text appends a Calibri 11pt run, keeping leading and trailing spaces.
func text(p *docx.Paragraph, s string) *docx.Run {
	run := p.AddText(s).Size(fontSize).Font(fontFamily, fontFamily, fontFamily, "default")
	for _, child := range run.Children {
		if t, ok := child.(*docx.Text); ok {
			t.XMLSpace = "preserve"
		}
	}
	return run
}

// Paragraphs returns the plain text of each body paragraph, tabs as "\t".
// It is the inverse view used to check exported files.
func Paragraphs(data []byte) ([]string, error) {
	file, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("export: parse document: %w", err)
	}
	var out []string
	for _, item := range file.Document.Body.Items {
		if p, ok := item.(*docx.Paragraph); ok {
			out = append(out, p.String())
		}
	}
	return out, nil
}

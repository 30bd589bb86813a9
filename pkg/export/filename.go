package export

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-cvgen/pkg/model"
)

// DefaultFileName is used when the document has neither a name nor a
// position.
const DefaultFileName = "CV_Riwayat_Hidup.docx"

var (
	whitespace = regexp.MustCompile(`\s+`)
	unsafeName = regexp.MustCompile(`[/\\:*?"<>|\x00]`)
)

// FileName derives "<Full_Name>_<Position>.docx" from doc.
func FileName(doc model.Document) string {
	var parts []string
	for _, part := range []string{doc.Personal.FullName, doc.Personal.ProposedPosition} {
		part = unsafeName.ReplaceAllString(strings.TrimSpace(part), "")
		part = whitespace.ReplaceAllString(strings.TrimSpace(part), "_")
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return DefaultFileName
	}
	return strings.Join(parts, "_") + ".docx"
}

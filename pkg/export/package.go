package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/goliatone/go-cvgen/pkg/model"
)

// Document properties written to docProps/core.xml.
const (
	DocumentTitle   = "Daftar Riwayat Hidup"
	DocumentCreator = "cvgen"
)

const (
	corePart         = "docProps/core.xml"
	contentTypesPart = "[Content_Types].xml"
	documentPart     = "word/document.xml"
	documentRelsPart = "word/_rels/document.xml.rels"
	footerPart       = "word/footer1.xml"
)

// go-docx parses relationship ids as rId<n>; stay clear of its own range.
const footerRelID = "rId100"

// Properties are the core properties of an exported file.
type Properties struct {
	Title       string
	Creator     string
	Description string
}

// PropertiesFor returns the core properties for doc.
func PropertiesFor(doc model.Document) Properties {
	name := strings.TrimSpace(doc.Personal.FullName)
	if name == "" {
		name = "Personil"
	}
	return Properties{
		Title:       DocumentTitle,
		Creator:     DocumentCreator,
		Description: DocumentTitle + " untuk " + name,
	}
}

// finishPackage adds the parts go-docx does not write: core properties and a
// centered page-number footer referenced from the final section.
func finishPackage(raw []byte, props Properties) ([]byte, error) {
	src, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("export: reopen package: %w", err)
	}

	var buf bytes.Buffer
	dst := zip.NewWriter(&buf)
	for _, file := range src.File {
		data, err := readPart(file)
		if err != nil {
			return nil, err
		}
		switch file.Name {
		case corePart:
			data = coreXML(props)
		case contentTypesPart:
			data = insertBefore(data, "</Types>",
				`<Override PartName="/`+footerPart+`" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>`)
		case documentRelsPart:
			data = insertBefore(data, "</Relationships>",
				`<Relationship Id="`+footerRelID+`" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>`)
		case documentPart:
			data = bytes.Replace(data, []byte("<w:sectPr>"),
				[]byte(`<w:sectPr><w:footerReference w:type="default" r:id="`+footerRelID+`"/>`), 1)
		}
		if err := writePart(dst, file.Name, data); err != nil {
			return nil, err
		}
	}
	if err := writePart(dst, footerPart, footerXML()); err != nil {
		return nil, err
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("export: close package: %w", err)
	}
	return buf.Bytes(), nil
}

func readPart(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("export: open %s: %w", file.Name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func writePart(dst *zip.Writer, name string, data []byte) error {
	w, err := dst.Create(name)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", name, err)
	}
	_, err = w.Write(data)
	return err
}

func insertBefore(data []byte, marker, fragment string) []byte {
	idx := bytes.LastIndex(data, []byte(marker))
	if idx < 0 {
		return data
	}
	out := make([]byte, 0, len(data)+len(fragment))
	out = append(out, data[:idx]...)
	out = append(out, fragment...)
	return append(out, data[idx:]...)
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func coreXML(props Properties) []byte {
	return []byte(xml.Header +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + escape(props.Title) + `</dc:title>` +
		`<dc:creator>` + escape(props.Creator) + `</dc:creator>` +
		`<dc:description>` + escape(props.Description) + `</dc:description>` +
		`</cp:coreProperties>`)
}

// footerXML is a centered PAGE field in Calibri 10pt.
func footerXML() []byte {
	return []byte(xml.Header +
		`<w:ftr xmlns:w="` + docx.XMLNS_W + `" xmlns:r="` + docx.XMLNS_R + `">` +
		`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>` +
		`<w:fldSimple w:instr=" PAGE "><w:r><w:rPr><w:rFonts w:ascii="` + fontFamily + `" w:hAnsi="` + fontFamily + `"/><w:sz w:val="20"/></w:rPr><w:t>1</w:t></w:r></w:fldSimple>` +
		`</w:p></w:ftr>`)
}

// CoreProperties reads the core properties back from an exported file.
func CoreProperties(data []byte) (Properties, error) {
	part, err := packagePart(data, corePart)
	if err != nil {
		return Properties{}, err
	}
	var core struct {
		Title       string `xml:"title"`
		Creator     string `xml:"creator"`
		Description string `xml:"description"`
	}
	if err := xml.Unmarshal(part, &core); err != nil {
		return Properties{}, fmt.Errorf("export: parse %s: %w", corePart, err)
	}
	return Properties{Title: core.Title, Creator: core.Creator, Description: core.Description}, nil
}

// Footer returns the raw footer part of an exported file.
func Footer(data []byte) ([]byte, error) {
	return packagePart(data, footerPart)
}

func packagePart(data []byte, name string) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("export: open package: %w", err)
	}
	for _, file := range r.File {
		if file.Name == name {
			return readPart(file)
		}
	}
	return nil, fmt.Errorf("export: %s: %w", name, ErrMissingPart)
}

// AngelaMos | 2026
// docx.go

package export

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

type docxRenderer struct{}

func (docxRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}
func (docxRenderer) Extension() string { return FormatDOCX }

// Render writes the smallest WordprocessingML package Word opens: content
// types, the package relationship and one document part with a table.
func (docxRenderer) Render(w io.Writer, t Table) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", docxDocument(t)},
	}

	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("docx %s: %w", p.name, err)
		}
		if _, err := io.WriteString(f, p.body); err != nil {
			return fmt.Errorf("docx %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("docx close: %w", err)
	}
	return nil
}

func docxDocument(t Table) string {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	if t.Title != "" {
		b.WriteString(`<w:p><w:r><w:rPr><w:b/><w:sz w:val="32"/></w:rPr>`)
		writeText(&b, t.Title)
		b.WriteString(`</w:r></w:p>`)
	}

	b.WriteString(`<w:tbl><w:tblPr><w:tblBorders>`)
	for _, edge := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		fmt.Fprintf(&b, `<w:%s w:val="single" w:sz="4" w:space="0" w:color="000000"/>`, edge)
	}
	b.WriteString(`</w:tblBorders></w:tblPr>`)

	writeRow(&b, t.Columns, true)
	for _, row := range t.Rows {
		writeRow(&b, row, false)
	}

	b.WriteString(`</w:tbl><w:sectPr/></w:body></w:document>`)
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, header bool) {
	b.WriteString(`<w:tr>`)
	for _, cell := range cells {
		b.WriteString(`<w:tc><w:p><w:r>`)
		if header {
			b.WriteString(`<w:rPr><w:b/></w:rPr>`)
		}
		writeText(b, cell)
		b.WriteString(`</w:r></w:p></w:tc>`)
	}
	b.WriteString(`</w:tr>`)
}

func writeText(b *strings.Builder, s string) {
	b.WriteString(`<w:t xml:space="preserve">`)
	_ = xml.EscapeText(b, []byte(s)) //nolint:errcheck // strings.Builder never fails
	b.WriteString(`</w:t>`)
}

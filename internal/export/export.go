// AngelaMos | 2026
// export.go

package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

const (
	FormatTXT  = "txt"
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// Table is a titled grid of already formatted cells.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

type Renderer interface {
	ContentType() string
	Extension() string
	Render(w io.Writer, t Table) error
}

var renderers = map[string]Renderer{
	FormatTXT:  textRenderer{},
	FormatPDF:  pdfRenderer{},
	FormatDOCX: docxRenderer{},
}

func RendererFor(format string) (Renderer, error) {
	r, ok := renderers[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("format %q: %w", format, core.ErrUnsupportedFormat)
	}
	return r, nil
}

// NewTable stringifies loosely typed cells and pads short rows so every row
// has one cell per column.
func NewTable(title string, columns []string, rows [][]any) Table {
	t := Table{
		Title:   strings.TrimSpace(title),
		Columns: columns,
		Rows:    make([][]string, 0, len(rows)),
	}

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i := range cells {
			if i < len(row) && row[i] != nil {
				cells[i] = cast.ToString(row[i])
			}
		}
		t.Rows = append(t.Rows, cells)
	}

	return t
}

var unsafeFilename = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// Filename derives a download name from the title.
func Filename(title, ext string) string {
	base := strings.Trim(unsafeFilename.ReplaceAllString(title, "_"), "_")
	if base == "" {
		base = "export"
	}
	if runes := []rune(base); len(runes) > 80 {
		base = string(runes[:80])
	}
	return base + "." + ext
}

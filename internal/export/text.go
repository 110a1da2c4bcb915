// AngelaMos | 2026
// text.go

package export

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

type textRenderer struct{}

func (textRenderer) ContentType() string { return "text/plain; charset=utf-8" }
func (textRenderer) Extension() string   { return FormatTXT }

func (textRenderer) Render(w io.Writer, t Table) error {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = utf8.RuneCountInString(c)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	bw := bufio.NewWriter(w)

	if t.Title != "" {
		bw.WriteString(t.Title + "\n\n")
	}

	writeLine := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = cell + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
		}
		bw.WriteString(strings.TrimRight(strings.Join(parts, " | "), " ") + "\n")
	}

	writeLine(t.Columns)

	rule := make([]string, len(widths))
	for i, width := range widths {
		rule[i] = strings.Repeat("-", width)
	}
	bw.WriteString(strings.Join(rule, "-+-") + "\n")

	for _, row := range t.Rows {
		writeLine(row)
	}

	return bw.Flush()
}

// AngelaMos | 2026
// export_test.go

package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

func sampleTable() Table {
	return NewTable("Violations", []string{"ID", "Type", "Fine"}, [][]any{
		{float64(1), "Speeding", float64(500)},
		{float64(2), "Parking & <stuff>"},
	})
}

func TestNewTable_PadsAndStringifies(t *testing.T) {
	table := sampleTable()

	if got := table.Rows[0]; got[0] != "1" || got[2] != "500" {
		t.Fatalf("unexpected first row %v", got)
	}
	if got := table.Rows[1]; len(got) != 3 || got[2] != "" {
		t.Fatalf("short row must be padded, got %v", got)
	}
}

func TestRendererFor(t *testing.T) {
	for _, f := range []string{"txt", "PDF", " docx "} {
		if _, err := RendererFor(f); err != nil {
			t.Errorf("%q: %v", f, err)
		}
	}

	_, err := RendererFor("xlsx")
	if !errors.Is(err, core.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (textRenderer{}).Render(&buf, sampleTable()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := strings.Join([]string{
		"Violations",
		"",
		"ID | Type              | Fine",
		"---+-------------------+-----",
		"1  | Speeding          | 500",
		"2  | Parking & <stuff> |",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected text output:\n%s", buf.String())
	}
}

func TestPDFRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (pdfRenderer{}).Render(&buf, sampleTable()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestDOCXRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (docxRenderer{}).Render(&buf, sampleTable()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("not a zip: %v", err)
	}

	files := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		files[f.Name] = string(data)
	}

	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		if _, ok := files[name]; !ok {
			t.Fatalf("missing part %s", name)
		}
	}

	doc := files["word/document.xml"]
	if !strings.Contains(doc, "Parking &amp; &lt;stuff&gt;") {
		t.Fatalf("cell text must be XML escaped")
	}
	if strings.Count(doc, "<w:tr>") != 3 {
		t.Fatalf("expected header plus two rows")
	}
}

func TestFilename(t *testing.T) {
	tests := map[string]string{
		"Violations report": "Violations_report.pdf",
		"  ../../etc  ":     "etc.pdf",
		"":                  "export.pdf",
		"Нарушения 2026":    "Нарушения_2026.pdf",
	}
	for title, want := range tests {
		if got := Filename(title, "pdf"); got != want {
			t.Errorf("Filename(%q) = %q, want %q", title, got, want)
		}
	}
}

func newRouter() http.Handler {
	r := chi.NewRouter()
	NewHandler().RegisterRoutes(r)
	return r
}

func TestHandler_Export(t *testing.T) {
	body := `{"title":"Drivers","format":"txt","columns":["Name"],"rows":[["Ivanov"]]}`
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="Drivers.txt"`) {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "Ivanov") {
		t.Fatalf("missing row in body")
	}
}

func TestHandler_UnsupportedFormat(t *testing.T) {
	body := `{"title":"x","format":"xlsx","columns":["a"],"rows":[]}`
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"field":"format"`) {
		t.Fatalf("expected format field hint, got %s", rec.Body.String())
	}
}

func TestHandler_RequiresColumns(t *testing.T) {
	body := `{"title":"x","format":"txt","columns":[]}`
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// AngelaMos | 2026
// handler.go

package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

type Request struct {
	Title   string   `json:"title"   validate:"max=200"`
	Format  string   `json:"format"  validate:"required"`
	Columns []string `json:"columns" validate:"required,min=1,max=50"`
	Rows    [][]any  `json:"rows"    validate:"max=10000"`
}

type Handler struct {
	validator *validator.Validate
}

func NewHandler() *Handler {
	return &Handler{validator: core.NewValidator()}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/export", h.Export)
}

// Export renders the posted table in the requested format and returns it
// as a file download.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationError(core.FormatValidationError(err)).
			WithField(core.FirstInvalidField(err)))
		return
	}

	renderer, err := RendererFor(req.Format)
	if err != nil {
		core.Fail(w, err, "export")
		return
	}

	table := NewTable(req.Title, req.Columns, req.Rows)

	var buf bytes.Buffer
	if err := renderer.Render(&buf, table); err != nil {
		slog.ErrorContext(r.Context(), "render export",
			"format", renderer.Extension(),
			"error", err,
		)
		core.InternalServerError(w, err)
		return
	}

	name := Filename(req.Title, renderer.Extension())

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(
		`attachment; filename="%s"; filename*=UTF-8''%s`,
		asciiFallback(name),
		url.PathEscape(name),
	))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w) //nolint:errcheck // client went away
}

func asciiFallback(name string) string {
	out := []rune(name)
	for i, r := range out {
		if r > 127 {
			out[i] = '_'
		}
	}
	return string(out)
}

// AngelaMos | 2026
// handler.go

package driver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Get("/search/drivers", h.Search)

	r.Route("/drivers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.service.List(r.Context())
	if err != nil {
		core.Fail(w, err, "driver")
		return
	}

	core.OK(w, drivers)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.Fail(w, err, "driver")
		return
	}

	d, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.Fail(w, err, "driver")
		return
	}

	core.OK(w, d)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	d, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.Fail(w, err, "driver")
		return
	}

	core.OK(w, CreatedResponse{ID: d.ID, Message: "driver added"})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.Fail(w, err, "driver")
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := h.service.Update(r.Context(), id, req); err != nil {
		core.Fail(w, err, "driver")
		return
	}

	core.OK(w, MessageResponse{Message: "driver updated"})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.Fail(w, err, "driver")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.Fail(w, err, "driver")
		return
	}

	core.OK(w, MessageResponse{Message: "driver deleted"})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	drivers, err := h.service.Search(r.Context(), q.Get("type"), q.Get("value"))
	if err != nil {
		core.Fail(w, err, "driver")
		return
	}

	core.OK(w, drivers)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (DriverRequest, bool) {
	var req DriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return req, false
	}

	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationError(core.FormatValidationError(err)).
			WithField(core.FirstInvalidField(err)))
		return req, false
	}

	return req, true
}

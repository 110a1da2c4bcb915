// AngelaMos | 2026
// handler.go

package vehicle

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
	r.Route("/vehicles", func(r chi.Router) {
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
	vehicles, err := h.service.List(r.Context())
	if err != nil {
		core.Fail(w, err, "vehicle")
		return
	}

	core.OK(w, vehicles)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.Fail(w, err, "vehicle")
		return
	}

	v, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.Fail(w, err, "vehicle")
		return
	}

	core.OK(w, v)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	v, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.Fail(w, err, "vehicle")
		return
	}

	core.OK(w, CreatedResponse{ID: v.ID, Message: "vehicle added"})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.Fail(w, err, "vehicle")
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := h.service.Update(r.Context(), id, req); err != nil {
		core.Fail(w, err, "vehicle")
		return
	}

	core.OK(w, MessageResponse{Message: "vehicle updated"})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.Fail(w, err, "vehicle")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.Fail(w, err, "vehicle")
		return
	}

	core.OK(w, MessageResponse{Message: "vehicle deleted"})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (VehicleRequest, bool) {
	var req VehicleRequest
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

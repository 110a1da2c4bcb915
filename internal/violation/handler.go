// AngelaMos | 2026
// handler.go

package violation

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/traffic-registry/internal/core"
	"github.com/carterperez-dev/traffic-registry/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/violations", func(r chi.Router) {
		r.Get("/", h.List)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.With(adminOnly).Patch("/{id}/approve", h.Approve)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	violations, err := h.service.List(r.Context())
	if err != nil {
		core.Fail(w, err, "violation")
		return
	}

	core.OK(w, violations)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	v, message, err := h.service.Create(r.Context(), middleware.GetActor(r.Context()), req)
	if err != nil {
		core.Fail(w, err, "violation")
		return
	}

	core.OK(w, CreatedResponse{
		ID:             v.ID,
		ApprovalStatus: v.ApprovalStatus,
		Message:        message,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.Fail(w, err, "violation")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if _, err := h.service.Update(r.Context(), middleware.GetActor(r.Context()), id, req); err != nil {
		core.Fail(w, err, "violation")
		return
	}

	core.OK(w, MessageResponse{Message: "violation updated"})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.Fail(w, err, "violation")
		return
	}

	if err := h.service.Delete(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		core.Fail(w, err, "violation")
		return
	}

	core.OK(w, MessageResponse{Message: "violation deleted"})
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.Fail(w, err, "violation")
		return
	}

	v, err := h.service.Approve(r.Context(), middleware.GetActor(r.Context()), id)
	if err != nil {
		core.Fail(w, err, "violation")
		return
	}

	core.OK(w, ApprovedResponse{Message: "violation approved", Violation: *v})
}

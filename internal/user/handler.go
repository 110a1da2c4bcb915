// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/traffic-registry/internal/auth"
	"github.com/carterperez-dev/traffic-registry/internal/core"
	"github.com/carterperez-dev/traffic-registry/internal/middleware"
)

// SessionWriter re-issues the session cookie after a profile change so the
// token's cached fields match the row.
type SessionWriter interface {
	Start(w http.ResponseWriter, user *auth.UserInfo) error
}

type Handler struct {
	service   *Service
	sessions  SessionWriter
	validator *validator.Validate
}

func NewHandler(service *Service, sessions SessionWriter) *Handler {
	return &Handler{
		service:   service,
		sessions:  sessions,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.With(authenticator).Put("/profile", h.UpdateProfile)

	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListUsers)
		r.Put("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
		r.Patch("/{id}/restore", h.RestoreUser)
	})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationError(core.FormatValidationError(err)).
			WithField(core.FirstInvalidField(err)))
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), actor, req)
	if err != nil {
		core.Fail(w, err, "user")
		return
	}

	if err := h.sessions.Start(w, ToUserInfo(user)); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ProfileResponse{User: ToUserResponse(user)})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		core.Fail(w, err, "user")
		return
	}

	core.OK(w, ToUserResponseList(users))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.Fail(w, err, "user")
		return
	}

	var req AdminUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationError(core.FormatValidationError(err)).
			WithField(core.FirstInvalidField(err)))
		return
	}

	user, err := h.service.AdminUpdate(
		r.Context(),
		middleware.GetActor(r.Context()),
		id,
		req,
	)
	if err != nil {
		core.Fail(w, err, "user")
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.Fail(w, err, "user")
		return
	}

	if err := h.service.Delete(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		core.Fail(w, err, "user")
		return
	}

	core.OK(w, OKResponse{OK: true})
}

func (h *Handler) RestoreUser(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.Fail(w, err, "user")
		return
	}

	if err := h.service.Restore(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		core.Fail(w, err, "user")
		return
	}

	core.OK(w, OKResponse{OK: true})
}

var _ middleware.ActorLoader = (*Service)(nil)

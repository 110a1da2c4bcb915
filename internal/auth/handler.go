// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

type Handler struct {
	service   *Service
	sessions  *Sessions
	validator *validator.Validate
}

func NewHandler(service *Service, sessions *Sessions) *Handler {
	return &Handler{
		service:   service,
		sessions:  sessions,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts /auth. credentialLimit guards the endpoints that
// accept passwords.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	credentialLimit func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(credentialLimit)
			r.Post("/login", h.Login)
			r.Post("/register", h.Register)
		})
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationError(core.FormatValidationError(err)).
			WithField(core.FirstInvalidField(err)))
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		core.Fail(w, err, "user")
		return
	}

	if err := h.sessions.Start(w, user); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, AuthResponse{User: ToUserResponse(user)})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, "email and password are required")
		return
	}

	user, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.BadRequest(w, "invalid email or password")
			return
		}
		core.Fail(w, err, "user")
		return
	}

	if err := h.sessions.Start(w, user); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, AuthResponse{User: ToUserResponse(user)})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.End(w)
	core.OK(w, LogoutResponse{OK: true})
}

// Me never fails. A missing or broken token yields {"user": null}, and so
// does a session whose account was deleted, which also drops the cookie.
// When the lookup itself fails the token claims stand in.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.sessions.Claims(r)
	if !ok {
		core.OK(w, AuthResponse{User: nil})
		return
	}

	user, err := h.service.Current(r.Context(), claims.ID)
	switch {
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrAccountDisabled):
		h.sessions.End(w)
		core.OK(w, AuthResponse{User: nil})
		return
	case err != nil:
		slog.WarnContext(r.Context(), "current user lookup failed, using session claims",
			"user_id", claims.ID,
			"error", err,
		)
		user = claims
	}

	core.OK(w, AuthResponse{User: ToUserResponse(user)})
}

// AngelaMos | 2026
// handler.go

package statistics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/statistics", h.Get)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		core.Fail(w, err, "statistics")
		return
	}

	core.OK(w, dashboard)
}

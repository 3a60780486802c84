package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nexus-admin/nexus/internal/accesscontrol"
	"github.com/nexus-admin/nexus/internal/platform/httpx"
	"github.com/nexus-admin/nexus/internal/shared"
)

// Handler serves the dashboard endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   accesscontrol.Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard accesscontrol.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(shared.PermUserRead, shared.PermBlogRead))
		r.Get("/dashboard/stats", h.stats)
	})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

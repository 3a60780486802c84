package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/nexus-admin/nexus/internal/auth"
	"github.com/nexus-admin/nexus/internal/blog"
	"github.com/nexus-admin/nexus/internal/dashboard"
	"github.com/nexus-admin/nexus/internal/observability"
	"github.com/nexus-admin/nexus/internal/permissions"
	"github.com/nexus-admin/nexus/internal/roles"
	"github.com/nexus-admin/nexus/internal/shared"
	"github.com/nexus-admin/nexus/internal/users"
	"github.com/nexus-admin/nexus/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	SessionManager     *shared.SessionManager
	AuthHandler        *auth.Handler
	UsersHandler       *users.Handler
	RolesHandler       *roles.Handler
	PermissionsHandler *permissions.Handler
	BlogHandler        *blog.Handler
	DashboardHandler   *dashboard.Handler
	JobHandler         *jobs.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with Nexus defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		loginLimit := 10
		if params.Config != nil && params.Config.LoginRateLimit > 0 {
			loginLimit = params.Config.LoginRateLimit
		}
		r.Group(func(r chi.Router) {
			r.Use(httprate.Limit(loginLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
			params.AuthHandler.MountRoutes(r)
		})
		params.UsersHandler.MountRoutes(r)
		params.RolesHandler.MountRoutes(r)
		params.PermissionsHandler.MountRoutes(r)
		params.BlogHandler.MountRoutes(r)
		params.DashboardHandler.MountRoutes(r)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}

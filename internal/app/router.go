package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/harborlight/harborlight/internal/announcements"
	"github.com/harborlight/harborlight/internal/auth"
	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/documents"
	"github.com/harborlight/harborlight/internal/finance"
	"github.com/harborlight/harborlight/internal/observability"
	"github.com/harborlight/harborlight/internal/platform/httpx"
	"github.com/harborlight/harborlight/internal/projects"
	"github.com/harborlight/harborlight/internal/reports"
	"github.com/harborlight/harborlight/internal/shared"
	"github.com/harborlight/harborlight/internal/tasks"
	"github.com/harborlight/harborlight/internal/users"
	"github.com/harborlight/harborlight/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger               *slog.Logger
	Config               *Config
	SessionManager       *shared.SessionManager
	CSRFManager          *shared.CSRFManager
	Enforcer             auth.Enforcer
	AuthHandler          *auth.Handler
	UsersHandler         *users.Handler
	ProjectsHandler      *projects.Handler
	TasksHandler         *tasks.Handler
	DocumentsHandler     *documents.Handler
	AnnouncementsHandler *announcements.Handler
	FinanceHandler       *finance.Handler
	ReportsHandler       *reports.Handler
	JobHandler           *jobs.Handler
	Metrics              *observability.Metrics
}

// NewRouter constructs the chi.Router with Harborlight defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
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
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Route("/auth", params.AuthHandler.MountRoutes)

	// Navigation mirrors what the route gate will allow, so a client can
	// render menus without probing every path. The access endpoint answers
	// the per-page question for client-side route guards; the page paths it
	// judges are the dashboard sections, not these API routes.
	r.Group(func(r chi.Router) {
		r.Use(params.Enforcer.RequireActor)
		r.Get("/navigation", func(w http.ResponseWriter, req *http.Request) {
			actor, _ := auth.ActorFromContext(req.Context())
			items := authz.NavigationItems(actor.Role, actor.Status)
			httpx.JSON(w, http.StatusOK, map[string]any{"items": items})
		})
		r.Get("/navigation/access", func(w http.ResponseWriter, req *http.Request) {
			path := req.URL.Query().Get("path")
			if path == "" {
				httpx.Problem(w, http.StatusBadRequest, "Invalid Query", "path is required")
				return
			}
			actor, _ := auth.ActorFromContext(req.Context())
			allowed := authz.CanAccessRoute(actor.Role, actor.Status, path)
			httpx.JSON(w, http.StatusOK, map[string]any{"path": path, "allowed": allowed})
		})
	})

	r.Route("/projects", params.ProjectsHandler.MountRoutes)
	r.Route("/tasks", params.TasksHandler.MountRoutes)
	r.Route("/team", params.UsersHandler.MountTeamRoutes)
	r.Route("/documents", params.DocumentsHandler.MountRoutes)
	r.Route("/announcements", params.AnnouncementsHandler.MountRoutes)
	r.Route("/reports", params.ReportsHandler.MountRoutes)
	r.Route("/finance", params.FinanceHandler.MountRoutes)

	r.Route("/admin", func(r chi.Router) {
		r.Route("/users", params.UsersHandler.MountRoutes)
		if params.JobHandler != nil {
			r.Group(func(r chi.Router) {
				r.Use(params.Enforcer.RequireRole(authz.RoleAdmin))
				r.Route("/jobs", params.JobHandler.MountRoutes)
			})
		}
	})

	return r
}

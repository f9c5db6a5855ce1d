package reports

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harborlight/harborlight/internal/auth"
	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/platform/httpx"
)

// Handler serves the reports endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	enforcer auth.Enforcer
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, enforcer auth.Enforcer) *Handler {
	return &Handler{logger: logger, service: service, enforcer: enforcer}
}

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermReportsView))
		r.Get("/summary", h.summary)
	})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("report summary", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

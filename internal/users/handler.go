package users

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/harborlight/harborlight/internal/auth"
	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/platform/httpx"
	"github.com/harborlight/harborlight/internal/shared"
)

// Handler manages user administration endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	enforcer auth.Enforcer
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, enforcer auth.Enforcer) *Handler {
	return &Handler{logger: logger, service: service, enforcer: enforcer}
}

// MountRoutes registers user administration routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermUsersView))
		r.Get("/", h.listUsers)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermUsersApprove))
		r.Post("/{id}/approve", h.lifecycle((*Service).Approve))
		r.Post("/{id}/reject", h.lifecycle((*Service).Reject))
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermUsersManage))
		r.Post("/{id}/suspend", h.lifecycle((*Service).Suspend))
		r.Post("/{id}/deactivate", h.lifecycle((*Service).Deactivate))
		r.Post("/{id}/reactivate", h.lifecycle((*Service).Reactivate))
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermRolesManage))
		r.Put("/{id}/role", h.changeRole)
	})
}

// MountTeamRoutes registers the member-facing directory.
func (h *Handler) MountTeamRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermTeamView))
		r.Get("/", h.teamDirectory)
	})
}

type userResponse struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

func toResponse(user User) userResponse {
	return userResponse{
		ID:     user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role.String(),
		Status: string(user.Status),
	}
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	status := authz.ParseStatus(r.URL.Query().Get("status"))
	list, err := h.service.List(r.Context(), status)
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	out := make([]userResponse, 0, len(list))
	for _, user := range list {
		out = append(out, toResponse(user))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"users": out})
}

func (h *Handler) lifecycle(op func(*Service, context.Context, int64, int64) (User, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "user id must be numeric")
			return
		}
		actor, _ := auth.ActorFromContext(r.Context())

		updated, err := op(h.service, r.Context(), actor.ID, userID)
		if err != nil {
			h.respondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, toResponse(updated))
	}
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

func (h *Handler) changeRole(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "user id must be numeric")
		return
	}
	var req changeRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	role := authz.ParseRole(req.Role)
	if !role.Valid() {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Role", "unknown role "+strconv.Quote(req.Role))
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())

	updated, err := h.service.ChangeRole(r.Context(), actor.ID, userID, role)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(updated))
}

func (h *Handler) teamDirectory(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.TeamDirectory(r.Context())
	if err != nil {
		h.logger.Error("team directory", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"members": members})
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrInvalidTransition):
		httpx.Problem(w, http.StatusConflict, "Invalid Transition", shared.UserSafeMessage(err))
	default:
		h.logger.Error("users mutation", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

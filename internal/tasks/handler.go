package tasks

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/harborlight/harborlight/internal/auth"
	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/platform/httpx"
	"github.com/harborlight/harborlight/internal/shared"
)

// Handler manages task endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	enforcer auth.Enforcer
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, enforcer auth.Enforcer) *Handler {
	return &Handler{logger: logger, service: service, enforcer: enforcer}
}

// MountRoutes registers task routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermTasksView))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermTasksCreate))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequireActive)
		r.Put("/{id}", h.update)
		r.Patch("/{id}/status", h.updateStatus)
		r.Delete("/{id}", h.remove)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermTasksAssign))
		r.Post("/{id}/assignees", h.assign)
		r.Delete("/{id}/assignees/{userID}", h.unassign)
	})
}

type decisionResponse struct {
	IsOwner   bool `json:"is_owner"`
	CanView   bool `json:"can_view"`
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

type taskResponse struct {
	ID          int64            `json:"id"`
	ProjectID   int64            `json:"project_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	CreatorID   int64            `json:"creator_id"`
	AssigneeIDs []int64          `json:"assignee_ids"`
	DueAt       *time.Time       `json:"due_at,omitempty"`
	Decision    decisionResponse `json:"decision"`
}

func toResponse(view TaskView) taskResponse {
	t := view.Task
	d := view.Decision
	return taskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatorID:   t.CreatorID,
		AssigneeIDs: t.AssigneeIDs,
		DueAt:       t.DueAt,
		Decision: decisionResponse{
			IsOwner:   d.IsOwner,
			CanView:   d.CanView,
			CanEdit:   d.CanEdit,
			CanDelete: d.CanDelete,
		},
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var projectID int64
	if raw := r.URL.Query().Get("project_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", "project_id must be numeric")
			return
		}
		projectID = parsed
	}
	actor, _ := auth.ActorFromContext(r.Context())
	views, err := h.service.List(r.Context(), actor, projectID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	out := make([]taskResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toResponse(v))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"tasks": out})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	view, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(*view))
}

type taskRequest struct {
	ProjectID   int64      `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueAt       *time.Time `json:"due_at"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	view, err := h.service.Create(r.Context(), actor, CreateInput{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(*view))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req taskRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	view, err := h.service.Update(r.Context(), actor, id, UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      ParseTaskStatus(req.Status),
		DueAt:       req.DueAt,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(*view))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	view, err := h.service.UpdateStatus(r.Context(), actor, id, ParseTaskStatus(req.Status))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(*view))
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type assigneeRequest struct {
	UserID int64 `json:"user_id"`
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req assigneeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.UserID == 0 {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "user_id is required")
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	if err := h.service.Assign(r.Context(), actor, id, req.UserID); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unassign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	if err := h.service.Unassign(r.Context(), actor, id, userID); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", name+" must be numeric")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", shared.UserSafeMessage(err))
	case errors.Is(err, httpx.ErrForbidden):
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "you do not have access to this task")
	case errors.Is(err, httpx.ErrValidation):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "the task payload failed validation")
	case errors.Is(err, shared.ErrDuplicate):
		httpx.Problem(w, http.StatusConflict, "Duplicate", shared.UserSafeMessage(err))
	default:
		h.logger.Error("tasks request", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

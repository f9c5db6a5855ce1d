package projects

import (
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

// Handler manages project endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	enforcer auth.Enforcer
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, enforcer auth.Enforcer) *Handler {
	return &Handler{logger: logger, service: service, enforcer: enforcer}
}

// MountRoutes registers project routes. Per-resource decisions happen in the
// service; here we only gate the coarse permission so unauthorized callers
// never touch persistence.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermProjectsView))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermProjectsCreate))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequireActive)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.remove)
		r.Post("/{id}/members", h.addMember)
		r.Delete("/{id}/members/{userID}", h.removeMember)
	})
}

type decisionResponse struct {
	IsOwner          bool `json:"is_owner"`
	CanView          bool `json:"can_view"`
	CanEdit          bool `json:"can_edit"`
	CanDelete        bool `json:"can_delete"`
	CanManageMembers bool `json:"can_manage_members"`
}

type projectResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	OwnerID     int64            `json:"owner_id"`
	Archived    bool             `json:"archived"`
	MemberIDs   []int64          `json:"member_ids"`
	Decision    decisionResponse `json:"decision"`
}

func toResponse(view ProjectView) projectResponse {
	p := view.Project
	d := view.Decision
	return projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		Archived:    p.Archived,
		MemberIDs:   p.MemberIDs,
		Decision: decisionResponse{
			IsOwner:          d.IsOwner,
			CanView:          d.CanView,
			CanEdit:          d.CanEdit,
			CanDelete:        d.CanDelete,
			CanManageMembers: d.CanManageMembers,
		},
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	views, err := h.service.List(r.Context(), actor)
	if err != nil {
		h.respondError(w, err)
		return
	}
	out := make([]projectResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toResponse(v))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"projects": out})
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

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Archived    bool   `json:"archived"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	view, err := h.service.Create(r.Context(), actor, CreateInput{Name: req.Name, Description: req.Description})
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
	var req projectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	view, err := h.service.Update(r.Context(), actor, id, UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Archived:    req.Archived,
	})
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

type memberRequest struct {
	UserID int64 `json:"user_id"`
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req memberRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.UserID == 0 {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "user_id is required")
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	if err := h.service.AddMember(r.Context(), actor, id, req.UserID); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	if err := h.service.RemoveMember(r.Context(), actor, id, userID); err != nil {
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
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "you do not have access to this project")
	case errors.Is(err, httpx.ErrValidation):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "the project payload failed validation")
	case errors.Is(err, shared.ErrDuplicate):
		httpx.Problem(w, http.StatusConflict, "Duplicate", shared.UserSafeMessage(err))
	default:
		h.logger.Error("projects request", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

package announcements

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

// Handler manages announcement endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	marks    *ReadMarks
	enforcer auth.Enforcer
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, marks *ReadMarks, enforcer auth.Enforcer) *Handler {
	return &Handler{logger: logger, service: service, marks: marks, enforcer: enforcer}
}

// MountRoutes registers announcement routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermAnnouncementsView))
		r.Get("/", h.list)
		r.Post("/{id}/read", h.markRead)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermAnnouncementsCreate))
		r.Post("/", h.publish)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermAnnouncementsManage))
		r.Put("/{id}/pin", h.pin)
		r.Delete("/{id}", h.remove)
	})
}

type announcementResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	AuthorID  int64     `json:"author_id"`
	Pinned    bool      `json:"pinned"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(a Announcement) announcementResponse {
	return announcementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Body:      a.Body,
		AuthorID:  a.AuthorID,
		Pinned:    a.Pinned,
		CreatedAt: a.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	read, err := h.marks.ReadIDs(r.Context(), actor.ID)
	if err != nil {
		// An unread badge is not worth failing the listing over.
		h.logger.Warn("load read marks", slog.Any("error", err))
		read = map[int64]bool{}
	}
	out := make([]announcementResponse, 0, len(list))
	for _, a := range list {
		resp := toResponse(a)
		resp.Read = read[a.ID]
		out = append(out, resp)
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"announcements": out})
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	if err := h.marks.MarkRead(r.Context(), actor.ID, id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type publishRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

func (h *Handler) publish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	a, err := h.service.Publish(r.Context(), actor, PublishInput{Title: req.Title, Body: req.Body, Pinned: req.Pinned})
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(*a))
}

type pinRequest struct {
	Pinned bool `json:"pinned"`
}

func (h *Handler) pin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req pinRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	if err := h.service.SetPinned(r.Context(), id, req.Pinned); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "announcement id must be numeric")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", shared.UserSafeMessage(err))
	case errors.Is(err, httpx.ErrValidation):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "the announcement payload failed validation")
	default:
		h.logger.Error("announcements request", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

package documents

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

// Handler manages the document library endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	enforcer auth.Enforcer
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, enforcer auth.Enforcer) *Handler {
	return &Handler{logger: logger, service: service, enforcer: enforcer}
}

// MountRoutes registers document routes. All gating is by permission; there
// is no ownership rule for the shared library.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermDocumentsView))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermDocumentsUpload))
		r.Post("/", h.upload)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermDocumentsEdit))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermDocumentsDelete))
		r.Delete("/{id}", h.remove)
	})
}

type documentResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	StorageKey  string    `json:"storage_key"`
	UploaderID  int64     `json:"uploader_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(d Document) documentResponse {
	return documentResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		StorageKey:  d.StorageKey,
		UploaderID:  d.UploaderID,
		CreatedAt:   d.CreatedAt,
	}
}

type paginationResponse struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	list, pagination, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		h.respondError(w, err)
		return
	}
	out := make([]documentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toResponse(d))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"documents": out,
		"pagination": paginationResponse{
			Page:       pagination.Page,
			PerPage:    pagination.PerPage,
			Total:      pagination.Total,
			TotalPages: pagination.TotalPages,
		},
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(*d))
}

type uploadRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	d, err := h.service.Upload(r.Context(), actor, UploadInput{
		Title:       req.Title,
		Description: req.Description,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(*d))
}

type updateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	d, err := h.service.Update(r.Context(), id, UpdateInput{Title: req.Title, Description: req.Description})
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(*d))
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
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "document id must be numeric")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", shared.UserSafeMessage(err))
	case errors.Is(err, httpx.ErrValidation):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "the document payload failed validation")
	default:
		h.logger.Error("documents request", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

package finance

import (
	"context"
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

// Handler manages expense endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	enforcer auth.Enforcer
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, enforcer auth.Enforcer) *Handler {
	return &Handler{logger: logger, service: service, enforcer: enforcer}
}

// MountRoutes registers expense routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermFinanceView))
		r.Get("/expenses", h.list)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermFinanceManage))
		r.Post("/expenses", h.submit)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermFinanceApprove))
		r.Post("/expenses/{id}/approve", h.approve)
		r.Post("/expenses/{id}/reject", h.reject)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.enforcer.RequirePermission(authz.PermFinanceExport))
		r.Get("/expenses/export", h.export)
	})
}

type expenseResponse struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	SubmitterID int64      `json:"submitter_id"`
	ApproverID  *int64     `json:"approver_id,omitempty"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
	Note        *string    `json:"note,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toResponse(e Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Status:      string(e.Status),
		SubmitterID: e.SubmitterID,
		ApproverID:  e.ApproverID,
		DecidedAt:   e.DecidedAt,
		Note:        e.Note,
		CreatedAt:   e.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), ExpenseStatus(r.URL.Query().Get("status")))
	if err != nil {
		h.respondError(w, err)
		return
	}
	out := make([]expenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toResponse(e))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"expenses": out})
}

type submitRequest struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	e, err := h.service.Submit(r.Context(), actor, SubmitInput{
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		Currency:    req.Currency,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(*e))
}

type decisionRequest struct {
	Note string `json:"note"`
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, (*Service).Approve)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, (*Service).Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, op func(*Service, context.Context, authz.Actor, int64, string) (*Expense, error)) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "expense id must be numeric")
		return
	}
	var req decisionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	actor, _ := auth.ActorFromContext(r.Context())
	e, err := op(h.service, r.Context(), actor, id, req.Note)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(*e))
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)
	if err := h.service.ExportCSV(r.Context(), w); err != nil {
		h.logger.Error("export expenses", slog.Any("error", err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrInvalidTransition):
		httpx.Problem(w, http.StatusConflict, "Invalid Transition", "only pending expenses can be decided")
	case errors.Is(err, httpx.ErrValidation):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "the expense payload failed validation")
	default:
		h.logger.Error("finance request", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

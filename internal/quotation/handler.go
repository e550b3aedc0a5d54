package quotation

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sunvolt-erp/sunvolt/internal/platform/httpx"
	"github.com/sunvolt-erp/sunvolt/internal/pricing"
	"github.com/sunvolt-erp/sunvolt/internal/shared"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/sessions", h.Start)
	r.Get("/sessions/{sessionID}", h.Show)
	r.Post("/sessions/{sessionID}/sector", h.SelectSector)
	r.Post("/sessions/{sessionID}/basic-info", h.SetBasicInfo)
	r.Post("/sessions/{sessionID}/items", h.AddItem)
	r.Post("/sessions/{sessionID}/items/increment", h.IncrementItem)
	r.Post("/sessions/{sessionID}/items/decrement", h.DecrementItem)
	r.Post("/sessions/{sessionID}/items/remove", h.RemoveItem)
	r.Post("/sessions/{sessionID}/installation", h.SetInstallation)
	r.Post("/sessions/{sessionID}/complete", h.Complete)
	r.Get("/history", h.History)
	r.Get("/{id}", h.ShowQuotation)
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	sess, err := h.service.Start(r.Context(), identity.UserID)
	if err != nil {
		h.logger.Error("start quotation session", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, sessionResponse(sess))
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	sess, err := h.service.Get(r.Context(), identity.UserID, chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondFlowError(w, err, "show quotation session")
		return
	}
	httpx.JSON(w, http.StatusOK, sessionResponse(sess))
}

func (h *Handler) SelectSector(w http.ResponseWriter, r *http.Request) {
	var req SelectSectorRequest
	if !h.decode(w, r, &req) {
		return
	}
	identity := shared.IdentityFromContext(r.Context())
	sess, err := h.service.SelectSector(r.Context(), identity.UserID, chi.URLParam(r, "sessionID"), req)
	if err != nil {
		h.respondFlowError(w, err, "select sector")
		return
	}
	httpx.JSON(w, http.StatusOK, sessionResponse(sess))
}

func (h *Handler) SetBasicInfo(w http.ResponseWriter, r *http.Request) {
	var req BasicInfoRequest
	if !h.decode(w, r, &req) {
		return
	}
	identity := shared.IdentityFromContext(r.Context())
	sess, err := h.service.SetBasicInfo(r.Context(), identity.UserID, chi.URLParam(r, "sessionID"), req)
	if err != nil {
		h.respondFlowError(w, err, "set basic info")
		return
	}
	httpx.JSON(w, http.StatusOK, sessionResponse(sess))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	h.itemOp(w, r, h.service.AddItem)
}

func (h *Handler) IncrementItem(w http.ResponseWriter, r *http.Request) {
	h.itemOp(w, r, h.service.IncrementItem)
}

func (h *Handler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	h.itemOp(w, r, h.service.DecrementItem)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.itemOp(w, r, h.service.RemoveItem)
}

func (h *Handler) SetInstallation(w http.ResponseWriter, r *http.Request) {
	var req InstallationRequest
	if !h.decode(w, r, &req) {
		return
	}
	identity := shared.IdentityFromContext(r.Context())
	sess, err := h.service.SetInstallation(r.Context(), identity.UserID, chi.URLParam(r, "sessionID"), req)
	if err != nil {
		h.respondFlowError(w, err, "set installation")
		return
	}
	httpx.JSON(w, http.StatusOK, sessionResponse(sess))
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	q, err := h.service.Complete(r.Context(), identity.UserID, chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondFlowError(w, err, "complete quotation")
		return
	}
	httpx.JSON(w, http.StatusCreated, q)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	page := shared.ParsePagination(r, 20, 100)

	quotations, total, err := h.service.History(r.Context(), identity.UserID, page.Limit, page.Offset)
	if err != nil {
		h.logger.Error("list quotations", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.List(w, quotations, httpx.ListMeta{Total: total, Limit: page.Limit, Offset: page.Offset})
}

func (h *Handler) ShowQuotation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	identity := shared.IdentityFromContext(r.Context())
	q, err := h.service.Quotation(r.Context(), identity.UserID, id)
	if err != nil {
		h.respondFlowError(w, err, "show quotation")
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) itemOp(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, agentID int64, sessionID string, productID int64) (*FlowSession, error),
) {
	var req ItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	identity := shared.IdentityFromContext(r.Context())
	sess, err := op(r.Context(), identity.UserID, chi.URLParam(r, "sessionID"), req.ProductID)
	if err != nil {
		h.respondFlowError(w, err, "mutate line items")
		return
	}
	httpx.JSON(w, http.StatusOK, sessionResponse(sess))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return false
	}
	if err := h.validate.Struct(target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return false
	}
	return true
}

func (h *Handler) respondFlowError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "quotation session not found")
	case errors.Is(err, ErrNotOwner):
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "session belongs to another agent")
	case errors.Is(err, ErrInvalidState):
		httpx.Problem(w, http.StatusConflict, "Invalid State", err.Error())
	case errors.Is(err, ErrSessionComboUnknown):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "not found")
	default:
		h.logger.Error(action, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func sessionResponse(sess *FlowSession) SessionResponse {
	total := sess.Items.TotalPrice()
	return SessionResponse{
		FlowSession:    sess,
		TotalPrice:     total,
		TotalFormatted: pricing.FormatTotal(total),
	}
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid id")
		return 0, false
	}
	return id, true
}

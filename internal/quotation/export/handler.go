package export

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sunvolt-erp/sunvolt/internal/platform/httpx"
	"github.com/sunvolt-erp/sunvolt/internal/quotation"
	"github.com/sunvolt-erp/sunvolt/internal/shared"
)

// Enqueuer hands the share-by-email task to the job queue.
type Enqueuer interface {
	EnqueueQuotationEmail(quotationID int64, recipient string) error
}

// Handler exposes the summary, PDF and share endpoints for completed
// quotations.
type Handler struct {
	logger   *slog.Logger
	service  *quotation.Service
	exporter *PDFExporter
	enqueuer Enqueuer
}

func NewHandler(logger *slog.Logger, service *quotation.Service, exporter *PDFExporter, enqueuer Enqueuer) *Handler {
	return &Handler{logger: logger, service: service, exporter: exporter, enqueuer: enqueuer}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{id}/summary", h.Summary)
	r.Get("/{id}/pdf", h.PDF)
	r.Post("/{id}/send", h.Send)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	q, ok := h.load(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, Assemble(q))
}

func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	q, ok := h.load(w, r)
	if !ok {
		return
	}

	pdf, err := h.exporter.Render(r.Context(), Assemble(q))
	if err != nil {
		h.logger.Error("render quotation pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Export Failed", "could not render PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", q.DocNumber+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

type sendRequest struct {
	Email string `json:"email"`
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	q, ok := h.load(w, r)
	if !ok {
		return
	}

	var req sendRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Email == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "recipient email required")
		return
	}

	if err := h.enqueuer.EnqueueQuotationEmail(q.ID, req.Email); err != nil {
		h.logger.Error("enqueue quotation email", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*quotation.Quotation, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid quotation id")
		return nil, false
	}

	identity := shared.IdentityFromContext(r.Context())
	q, err := h.service.Quotation(r.Context(), identity.UserID, id)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrNotFound):
			httpx.Problem(w, http.StatusNotFound, "Not Found", "quotation not found")
		case errors.Is(err, quotation.ErrNotOwner):
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "quotation belongs to another agent")
		default:
			h.logger.Error("load quotation", slog.Any("error", err))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		}
		return nil, false
	}
	return q, true
}

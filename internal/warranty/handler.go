package warranty

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sunvolt-erp/sunvolt/internal/leads"
	"github.com/sunvolt-erp/sunvolt/internal/platform/httpx"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/lookup", h.lookup)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	results, err := h.svc.Lookup(r.Context(), phone)
	if err != nil {
		if errors.Is(err, leads.ErrPhoneTooShort) || errors.Is(err, leads.ErrPhoneInvalid) {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
			return
		}
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if results == nil {
		results = []LookupResult{}
	}
	httpx.JSON(w, http.StatusOK, results)
}

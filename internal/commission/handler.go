package commission

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sunvolt-erp/sunvolt/internal/platform/httpx"
	"github.com/sunvolt-erp/sunvolt/internal/shared"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.history)
	r.Get("/stats", h.stats)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())

	page := shared.ParsePagination(r, 20, 100)
	entries, total, err := h.svc.History(r.Context(), identity.UserID, page.Limit, page.Offset)
	if err != nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if entries == nil {
		entries = []Entry{}
	}

	httpx.List(w, entries, httpx.ListMeta{Total: total, Limit: page.Limit, Offset: page.Offset})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())

	months := 0
	if raw := r.URL.Query().Get("months"); raw != "" {
		months, _ = strconv.Atoi(raw)
	}

	stats, err := h.svc.Stats(r.Context(), identity.UserID, months)
	if err != nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if stats == nil {
		stats = []MonthlyStat{}
	}

	httpx.JSON(w, http.StatusOK, stats)
}

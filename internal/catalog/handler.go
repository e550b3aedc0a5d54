package catalog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sunvolt-erp/sunvolt/internal/platform/httpx"
	"github.com/sunvolt-erp/sunvolt/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/sectors", h.ListSectors)
	r.Get("/sectors/{sectorID}/combos", h.ListCombos)
	r.Get("/products", h.ListProducts)
	r.Get("/products/{id}", h.GetProduct)
}

func (h *Handler) ListSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.service.Sectors(r.Context())
	if err != nil {
		h.logger.Error("list sectors", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": sectors})
}

func (h *Handler) ListCombos(w http.ResponseWriter, r *http.Request) {
	sectorID, err := strconv.ParseInt(chi.URLParam(r, "sectorID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid sector id")
		return
	}

	combos, err := h.service.Combos(r.Context(),
		sectorID,
		r.URL.Query().Get("system_type"),
		r.URL.Query().Get("phase_type"),
	)
	if err != nil {
		h.logger.Error("list combos", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": combos})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var filters ListFilters
	if raw := r.URL.Query().Get("sector_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid sector_id")
			return
		}
		filters.SectorID = &id
	}
	if raw := r.URL.Query().Get("category"); raw != "" {
		category := Category(raw)
		filters.Category = &category
	}
	filters.Search = r.URL.Query().Get("q")

	products, err := h.service.Products(r.Context(), filters)
	if err != nil {
		h.logger.Error("list products", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": products})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid product id")
		return
	}

	product, err := h.service.Product(r.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "product not found")
			return
		}
		h.logger.Error("get product", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

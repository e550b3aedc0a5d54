package geo

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sunvolt-erp/sunvolt/internal/platform/httpx"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/provinces", h.provinces)
	r.Get("/provinces/{provinceID}/districts", h.districts)
	r.Get("/districts/{districtID}/wards", h.wards)
}

func (h *Handler) provinces(w http.ResponseWriter, r *http.Request) {
	provinces, err := h.svc.Provinces(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, provinces)
}

func (h *Handler) districts(w http.ResponseWriter, r *http.Request) {
	provinceID, err := strconv.ParseInt(chi.URLParam(r, "provinceID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid province id")
		return
	}
	districts, err := h.svc.Districts(r.Context(), provinceID)
	if err != nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, districts)
}

func (h *Handler) wards(w http.ResponseWriter, r *http.Request) {
	districtID, err := strconv.ParseInt(chi.URLParam(r, "districtID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid district id")
		return
	}
	wards, err := h.svc.Wards(r.Context(), districtID)
	if err != nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, wards)
}

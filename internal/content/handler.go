package content

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sunvolt-erp/sunvolt/internal/platform/httpx"
	"github.com/sunvolt-erp/sunvolt/internal/shared"
)

// Handler serves the read-only content gallery straight from the repository.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/banners", h.banners)
	r.Get("/articles", h.articles)
	r.Get("/articles/{articleID}", h.article)
}

func (h *Handler) banners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.repo.ListBanners(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if banners == nil {
		banners = []Banner{}
	}
	httpx.JSON(w, http.StatusOK, banners)
}

func (h *Handler) articles(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 10, 50)
	articles, total, err := h.repo.ListArticles(r.Context(), page.Limit, page.Offset)
	if err != nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if articles == nil {
		articles = []Article{}
	}
	httpx.List(w, articles, httpx.ListMeta{Total: total, Limit: page.Limit, Offset: page.Offset})
}

func (h *Handler) article(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "articleID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid article id")
		return
	}
	article, err := h.repo.GetArticle(r.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "article not found")
			return
		}
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, article)
}

package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sunvolt-erp/sunvolt/internal/auth"
	"github.com/sunvolt-erp/sunvolt/internal/catalog"
	"github.com/sunvolt-erp/sunvolt/internal/commission"
	"github.com/sunvolt-erp/sunvolt/internal/content"
	"github.com/sunvolt-erp/sunvolt/internal/geo"
	"github.com/sunvolt-erp/sunvolt/internal/leads"
	"github.com/sunvolt-erp/sunvolt/internal/observability"
	"github.com/sunvolt-erp/sunvolt/internal/quotation"
	"github.com/sunvolt-erp/sunvolt/internal/quotation/export"
	"github.com/sunvolt-erp/sunvolt/internal/shared"
	"github.com/sunvolt-erp/sunvolt/internal/warranty"
	"github.com/sunvolt-erp/sunvolt/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	Tokens            *shared.TokenManager
	AuthHandler       *auth.Handler
	CatalogHandler    *catalog.Handler
	QuotationHandler  *quotation.Handler
	ExportHandler     *export.Handler
	LeadsHandler      *leads.Handler
	GeoHandler        *geo.Handler
	CommissionHandler *commission.Handler
	ContentHandler    *content.Handler
	WarrantyHandler   *warranty.Handler
	JobHandler        *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	// Catalog and administrative lookups are public reads.
	r.Route("/catalog", params.CatalogHandler.MountRoutes)
	r.Route("/geo", params.GeoHandler.MountRoutes)
	r.Route("/content", params.ContentHandler.MountRoutes)
	r.Route("/warranty", params.WarrantyHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(params.Tokens))
		r.Route("/quotations", func(r chi.Router) {
			params.QuotationHandler.MountRoutes(r)
			params.ExportHandler.MountRoutes(r)
		})
		r.Route("/leads", params.LeadsHandler.MountRoutes)
		r.Route("/commissions", params.CommissionHandler.MountRoutes)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sunvolt-erp/sunvolt/internal/app"
	"github.com/sunvolt-erp/sunvolt/internal/auth"
	"github.com/sunvolt-erp/sunvolt/internal/catalog"
	"github.com/sunvolt-erp/sunvolt/internal/commission"
	"github.com/sunvolt-erp/sunvolt/internal/content"
	"github.com/sunvolt-erp/sunvolt/internal/geo"
	"github.com/sunvolt-erp/sunvolt/internal/leads"
	"github.com/sunvolt-erp/sunvolt/internal/observability"
	"github.com/sunvolt-erp/sunvolt/internal/platform/cache"
	"github.com/sunvolt-erp/sunvolt/internal/platform/db"
	"github.com/sunvolt-erp/sunvolt/internal/quotation"
	"github.com/sunvolt-erp/sunvolt/internal/quotation/export"
	"github.com/sunvolt-erp/sunvolt/internal/shared"
	"github.com/sunvolt-erp/sunvolt/internal/warranty"
	"github.com/sunvolt-erp/sunvolt/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokens := shared.NewTokenManager(redisClient, cfg.TokenTTL)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, tokens)
	authHandler := auth.NewHandler(logger, authService, tokens)

	catalogRepo := catalog.NewRepository(pool)
	catalogService := catalog.NewService(catalogRepo, redisClient, logger)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	sessionStore := quotation.NewSessionStore(redisClient, cfg.SessionTTL)
	quotationRepo := quotation.NewRepository(pool)
	quotationService := quotation.NewService(sessionStore, catalogService, quotationRepo, logger)
	quotationHandler := quotation.NewHandler(logger, quotationService)

	pdfExporter, err := export.NewPDFExporter(cfg.GotenbergURL, http.DefaultClient, export.CompanyInfo{
		Name:    cfg.CompanyName,
		Address: cfg.CompanyAddress,
		Phone:   cfg.CompanyPhone,
		Email:   cfg.CompanyEmail,
		LogoURL: cfg.CompanyLogoURL,
	})
	if err != nil {
		logger.Error("init pdf exporter", slog.Any("error", err))
		os.Exit(1)
	}

	jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	exportHandler := export.NewHandler(logger, quotationService, pdfExporter, jobClient)

	leadsHandler := leads.NewHandler(leads.NewService(leads.NewRepository(pool), logger))
	geoHandler := geo.NewHandler(geo.NewService(geo.NewRepository(pool), redisClient, logger))
	commissionHandler := commission.NewHandler(commission.NewService(commission.NewRepository(pool), logger))
	contentHandler := content.NewHandler(content.NewRepository(pool))
	warrantyHandler := warranty.NewHandler(warranty.NewService(warranty.NewRepository(pool), logger))

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		Tokens:            tokens,
		AuthHandler:       authHandler,
		CatalogHandler:    catalogHandler,
		QuotationHandler:  quotationHandler,
		ExportHandler:     exportHandler,
		LeadsHandler:      leadsHandler,
		GeoHandler:        geoHandler,
		CommissionHandler: commissionHandler,
		ContentHandler:    contentHandler,
		WarrantyHandler:   warrantyHandler,
		JobHandler:        jobHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

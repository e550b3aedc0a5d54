package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/sunvolt-erp/sunvolt/internal/app"
	"github.com/sunvolt-erp/sunvolt/internal/catalog"
	jobmetrics "github.com/sunvolt-erp/sunvolt/internal/jobs"
	"github.com/sunvolt-erp/sunvolt/internal/platform/cache"
	"github.com/sunvolt-erp/sunvolt/internal/platform/db"
	"github.com/sunvolt-erp/sunvolt/internal/quotation"
	"github.com/sunvolt-erp/sunvolt/internal/quotation/export"
	"github.com/sunvolt-erp/sunvolt/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	quotationRepo := quotation.NewRepository(pool)
	mailer := jobs.NewQuotationMailer(quotationRepo, pdfExporter, jobs.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		From: cfg.SMTPFrom,
	}, logger)

	catalogService := catalog.NewService(catalog.NewRepository(pool), redisClient, logger)
	warmup := jobs.NewCatalogWarmupHandler(catalogService, logger)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Metrics:   jobmetrics.NewMetrics(nil),
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeQuotationEmail, Handler: mailer.HandleQuotationEmail},
			{Type: jobs.TaskTypeCatalogWarmup, Handler: warmup.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 5 * * *", Task: jobs.NewCatalogWarmupTask(), Options: []asynq.Option{asynq.MaxRetry(2)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}

package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
)

// CacheWarmer is the slice of the catalog service the warmup job needs.
type CacheWarmer interface {
	WarmCache(ctx context.Context) error
}

// CatalogWarmupHandler refreshes the catalog listings on a schedule.
type CatalogWarmupHandler struct {
	warmer CacheWarmer
	logger *slog.Logger
}

func NewCatalogWarmupHandler(warmer CacheWarmer, logger *slog.Logger) *CatalogWarmupHandler {
	return &CatalogWarmupHandler{warmer: warmer, logger: logger}
}

// Handle processes TaskTypeCatalogWarmup tasks.
func (h *CatalogWarmupHandler) Handle(ctx context.Context, _ *asynq.Task) error {
	if err := h.warmer.WarmCache(ctx); err != nil {
		h.logger.Error("catalog warmup", slog.Any("error", err))
		return err
	}
	h.logger.Info("catalog cache warmed")
	return nil
}

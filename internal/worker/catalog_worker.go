package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/podstore/podstore/internal/service"
)

// CatalogWorker periodically refreshes the catalog snapshot so shoppers
// keep seeing a warm, recent list even across transient store failures.
type CatalogWorker struct {
	catalogService *service.CatalogService
	interval       time.Duration
}

// NewCatalogWorker constructs a CatalogWorker.
func NewCatalogWorker(catalogService *service.CatalogService, interval time.Duration) *CatalogWorker {
	return &CatalogWorker{
		catalogService: catalogService,
		interval:       interval,
	}
}

// Start begins the periodic refresh loop and listens for context cancellation.
func (w *CatalogWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting catalog worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Catalog worker stopped")
			return
		}
	}
}

func (w *CatalogWorker) run(ctx context.Context) {
	start := time.Now()
	if err := w.catalogService.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("Catalog refresh failed")
		return
	}
	log.Debug().Dur("duration", time.Since(start)).Msg("Catalog refreshed")
}

package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vromao/catering-ops/internal/metrics"
	"github.com/vromao/catering-ops/internal/repository"
	"github.com/vromao/catering-ops/internal/service"
	"github.com/vromao/catering-ops/pkg/logger"
)

// LowStockWorkerConfig holds configuration for the low stock worker
type LowStockWorkerConfig struct {
	Interval time.Duration
}

// LowStockWorker periodically scans for products whose stock has
// fallen below their configured minimum and publishes an alert for
// each. A product is alerted once per low-stock episode: the alert
// repeats only after the stock recovers above the minimum.
type LowStockWorker struct {
	config    *LowStockWorkerConfig
	products  repository.ProductRepository
	publisher service.EventPublisher
	log       *logger.Logger

	alerted map[uuid.UUID]bool
}

// NewLowStockWorker creates a new low stock worker
func NewLowStockWorker(
	cfg *LowStockWorkerConfig,
	products repository.ProductRepository,
	publisher service.EventPublisher,
	log *logger.Logger,
) *LowStockWorker {
	if cfg == nil {
		cfg = &LowStockWorkerConfig{}
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if publisher == nil {
		publisher = service.NewNoOpEventPublisher()
	}
	if log == nil {
		log = logger.Get()
	}

	return &LowStockWorker{
		config:    cfg,
		products:  products,
		publisher: publisher,
		log:       log,
		alerted:   make(map[uuid.UUID]bool),
	}
}

// Start runs the scan loop until the context is cancelled
func (w *LowStockWorker) Start(ctx context.Context) {
	w.log.Info(fmt.Sprintf("Low stock worker started, scanning every %s", w.config.Interval))

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	// First sweep immediately instead of waiting a full interval
	w.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Low stock worker stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one scan, publishing alerts for newly low products and
// clearing the alert state of recovered ones
func (w *LowStockWorker) Sweep(ctx context.Context) {
	low, err := w.products.ListBelowMinimum(ctx)
	if err != nil {
		w.log.Error(fmt.Sprintf("Failed to list low stock products: %v", err))
		return
	}

	lowNow := make(map[uuid.UUID]bool, len(low))
	published := 0
	for _, product := range low {
		lowNow[product.ID] = true
		if w.alerted[product.ID] {
			continue
		}
		if err := w.publisher.PublishLowStock(ctx, product); err != nil {
			w.log.Error(fmt.Sprintf("Failed to publish low stock alert for %s: %v", product.ID, err))
			continue
		}
		w.alerted[product.ID] = true
		metrics.RecordLowStockAlert(ctx, product.ID.String())
		published++
	}

	// Products back above their minimum become eligible to alert again
	for id := range w.alerted {
		if !lowNow[id] {
			delete(w.alerted, id)
		}
	}

	if published > 0 {
		w.log.Info(fmt.Sprintf("Published %d low stock alerts (%d products below minimum)", published, len(low)))
	}
}

package metrics

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vromao/catering-ops/pkg/telemetry"
)

var (
	// Planning counters
	PlansComputed     *telemetry.Counter
	PlansFailed       *telemetry.Counter
	EventsSettled     *telemetry.Counter
	SettlementsFailed *telemetry.Counter
	LowStockAlerts    *telemetry.Counter
	StockAdjustments  *telemetry.Counter

	// Histograms
	RequestDuration *telemetry.Histogram

	// Gauges
	OpenPlans *telemetry.UpDownCounter

	initOnce sync.Once
	initErr  error
)

// Init initializes all planning metrics
func Init() error {
	initOnce.Do(func() {
		initErr = initMetrics()
	})
	return initErr
}

func initMetrics() error {
	var err error

	PlansComputed, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "catering_plans_total",
		Description: "Total number of event plans computed",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	PlansFailed, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "catering_plan_failures_total",
		Description: "Total number of failed planning attempts",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	EventsSettled, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "catering_settlements_total",
		Description: "Total number of events settled",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	SettlementsFailed, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "catering_settlement_failures_total",
		Description: "Total number of failed settlement attempts",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	LowStockAlerts, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "catering_low_stock_alerts_total",
		Description: "Total number of low stock alerts published",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	StockAdjustments, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "catering_stock_adjustments_total",
		Description: "Total number of manual stock adjustments",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	// Request duration histogram for latency tracking (p50, p90, p99)
	RequestDuration, err = telemetry.NewHistogramWithBuckets(telemetry.MetricOpts{
		Name:        "catering_request_duration_seconds",
		Description: "HTTP request duration in seconds",
		Unit:        "s",
	}, []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10})
	if err != nil {
		return err
	}

	OpenPlans, err = telemetry.NewUpDownCounter(telemetry.MetricOpts{
		Name:        "catering_open_plans",
		Description: "Current number of planned events awaiting settlement",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	return nil
}

// RecordPlan records a computed plan
func RecordPlan(ctx context.Context, eventID string, products, assets, warnings int) {
	if PlansComputed != nil {
		PlansComputed.Inc(ctx,
			attribute.String("event_id", eventID),
			attribute.Int("products", products),
			attribute.Int("assets", assets),
			attribute.Int("warnings", warnings),
		)
	}
	if OpenPlans != nil {
		OpenPlans.Inc(ctx)
	}
}

// RecordPlanFailure records a failed planning attempt
func RecordPlanFailure(ctx context.Context, eventID, reason string) {
	if PlansFailed != nil {
		PlansFailed.Inc(ctx,
			attribute.String("event_id", eventID),
			attribute.String("reason", reason),
		)
	}
}

// RecordSettlement records a settled event
func RecordSettlement(ctx context.Context, eventID string, products, assets int) {
	if EventsSettled != nil {
		EventsSettled.Inc(ctx,
			attribute.String("event_id", eventID),
			attribute.Int("products", products),
			attribute.Int("assets", assets),
		)
	}
	if OpenPlans != nil {
		OpenPlans.Dec(ctx)
	}
}

// RecordSettlementFailure records a failed settlement attempt
func RecordSettlementFailure(ctx context.Context, eventID, reason string) {
	if SettlementsFailed != nil {
		SettlementsFailed.Inc(ctx,
			attribute.String("event_id", eventID),
			attribute.String("reason", reason),
		)
	}
}

// RecordLowStockAlert records a published low stock alert
func RecordLowStockAlert(ctx context.Context, productID string) {
	if LowStockAlerts != nil {
		LowStockAlerts.Inc(ctx,
			attribute.String("product_id", productID),
		)
	}
}

// RecordStockAdjustment records a manual stock movement
func RecordStockAdjustment(ctx context.Context, productID, kind string) {
	if StockAdjustments != nil {
		StockAdjustments.Inc(ctx,
			attribute.String("product_id", productID),
			attribute.String("kind", kind),
		)
	}
}

// RecordRequestDuration records HTTP request duration
func RecordRequestDuration(ctx context.Context, operation string, durationSeconds float64) {
	if RequestDuration != nil {
		RequestDuration.Record(ctx, durationSeconds,
			attribute.String("operation", operation),
		)
	}
}

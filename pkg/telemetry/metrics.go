package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName scopes all instruments created by this package
const meterName = "catering-ops"

// MetricOpts describes one instrument
type MetricOpts struct {
	Name        string
	Description string
	Unit        string
}

// Counter is a monotonically increasing counter
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter creates a new counter instrument
func NewCounter(opts MetricOpts) (*Counter, error) {
	counter, err := otel.Meter(meterName).Int64Counter(
		opts.Name,
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	)
	if err != nil {
		return nil, err
	}
	return &Counter{counter: counter}, nil
}

// Inc increments the counter by one
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Add increments the counter by n
func (c *Counter) Add(ctx context.Context, n int64, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, n, metric.WithAttributes(attrs...))
}

// Histogram records a distribution of float64 values
type Histogram struct {
	histogram metric.Float64Histogram
}

// NewHistogram creates a histogram with default buckets
func NewHistogram(opts MetricOpts) (*Histogram, error) {
	return NewHistogramWithBuckets(opts, nil)
}

// NewHistogramWithBuckets creates a histogram with explicit bucket
// boundaries
func NewHistogramWithBuckets(opts MetricOpts, buckets []float64) (*Histogram, error) {
	instrumentOpts := []metric.Float64HistogramOption{
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	}
	if len(buckets) > 0 {
		instrumentOpts = append(instrumentOpts, metric.WithExplicitBucketBoundaries(buckets...))
	}
	histogram, err := otel.Meter(meterName).Float64Histogram(opts.Name, instrumentOpts...)
	if err != nil {
		return nil, err
	}
	return &Histogram{histogram: histogram}, nil
}

// Record records one observation
func (h *Histogram) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	h.histogram.Record(ctx, value, metric.WithAttributes(attrs...))
}

// UpDownCounter is a counter that can go up and down, used for gauges
// of in-flight work
type UpDownCounter struct {
	counter metric.Int64UpDownCounter
}

// NewUpDownCounter creates a new up/down counter instrument
func NewUpDownCounter(opts MetricOpts) (*UpDownCounter, error) {
	counter, err := otel.Meter(meterName).Int64UpDownCounter(
		opts.Name,
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	)
	if err != nil {
		return nil, err
	}
	return &UpDownCounter{counter: counter}, nil
}

// Inc increments by one
func (u *UpDownCounter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	u.counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Dec decrements by one
func (u *UpDownCounter) Dec(ctx context.Context, attrs ...attribute.KeyValue) {
	u.counter.Add(ctx, -1, metric.WithAttributes(attrs...))
}

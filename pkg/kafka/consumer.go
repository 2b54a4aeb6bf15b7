package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// ConsumerConfig holds Kafka consumer group configuration
type ConsumerConfig struct {
	Brokers        []string
	GroupID        string
	Topics         []string
	ClientID       string
	MaxRetries     int
	RetryInterval  time.Duration
	SessionTimeout time.Duration
}

// Record is one consumed record
type Record struct {
	Topic     string
	Partition int32
	Offset    int64
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time

	raw *kgo.Record
}

// Consumer wraps a franz-go consumer group client. Offsets are
// committed explicitly via CommitRecords, never automatically.
type Consumer struct {
	client *kgo.Client
}

// NewConsumer creates a consumer group member subscribed to the
// configured topics
func NewConsumer(ctx context.Context, cfg *ConsumerConfig) (*Consumer, error) {
	if cfg == nil || len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	if cfg.GroupID == "" {
		return nil, fmt.Errorf("consumer group id is required")
	}
	if len(cfg.Topics) == 0 {
		return nil, fmt.Errorf("at least one topic is required")
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumerGroup(cfg.GroupID),
		kgo.ConsumeTopics(cfg.Topics...),
		kgo.DisableAutoCommit(),
	}
	if cfg.ClientID != "" {
		opts = append(opts, kgo.ClientID(cfg.ClientID))
	}
	if cfg.SessionTimeout > 0 {
		opts = append(opts, kgo.SessionTimeout(cfg.SessionTimeout))
	}
	if cfg.RetryInterval > 0 {
		opts = append(opts, kgo.RetryBackoffFn(func(int) time.Duration {
			return cfg.RetryInterval
		}))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to kafka: %w", err)
	}

	return &Consumer{client: client}, nil
}

// Poll fetches the next batch of records, blocking until records
// arrive or the context is cancelled
func (c *Consumer) Poll(ctx context.Context) ([]*Record, error) {
	fetches := c.client.PollFetches(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if errs := fetches.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("fetch error on %s/%d: %w", errs[0].Topic, errs[0].Partition, errs[0].Err)
	}

	var records []*Record
	fetches.EachRecord(func(r *kgo.Record) {
		rec := &Record{
			Topic:     r.Topic,
			Partition: r.Partition,
			Offset:    r.Offset,
			Key:       r.Key,
			Value:     r.Value,
			Timestamp: r.Timestamp,
			raw:       r,
		}
		if len(r.Headers) > 0 {
			rec.Headers = make(map[string]string, len(r.Headers))
			for _, h := range r.Headers {
				rec.Headers[h.Key] = string(h.Value)
			}
		}
		records = append(records, rec)
	})
	return records, nil
}

// CommitRecords commits the offsets of the given records
func (c *Consumer) CommitRecords(ctx context.Context, records []*Record) error {
	if len(records) == 0 {
		return nil
	}
	raw := make([]*kgo.Record, 0, len(records))
	for _, r := range records {
		if r.raw != nil {
			raw = append(raw, r.raw)
		}
	}
	if err := c.client.CommitRecords(ctx, raw...); err != nil {
		return fmt.Errorf("failed to commit offsets: %w", err)
	}
	return nil
}

// Close leaves the group and closes the client
func (c *Consumer) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

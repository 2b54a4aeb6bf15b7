package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vromao/catering-ops/internal/domain"
	"github.com/vromao/catering-ops/pkg/kafka"
	"github.com/vromao/catering-ops/pkg/logger"
	"github.com/vromao/catering-ops/pkg/retry"
)

// AuditWorkerConfig holds configuration for the audit worker
type AuditWorkerConfig struct {
	PollBackoff time.Duration
}

// AuditWorker consumes published integration events and writes them to the
// structured audit log. It is the read side of the event stream: planners,
// settlements and low-stock alerts all land here regardless of which binary
// produced them.
type AuditWorker struct {
	config   *AuditWorkerConfig
	consumer *kafka.Consumer
	dlq      retry.DLQPublisher
	log      *logger.Logger
}

// NewAuditWorker creates a new audit worker. Records that cannot be decoded
// are parked on the dead letter topic instead of being dropped.
func NewAuditWorker(cfg *AuditWorkerConfig, consumer *kafka.Consumer, dlq retry.DLQPublisher, log *logger.Logger) *AuditWorker {
	if cfg == nil {
		cfg = &AuditWorkerConfig{}
	}
	if cfg.PollBackoff <= 0 {
		cfg.PollBackoff = time.Second
	}
	if dlq == nil {
		dlq = retry.NewNoOpDLQPublisher()
	}
	if log == nil {
		log = logger.Get()
	}

	return &AuditWorker{
		config:   cfg,
		consumer: consumer,
		dlq:      dlq,
		log:      log,
	}
}

// Start polls until the context is cancelled. Offsets are committed only
// after every record in the batch has been logged, so a crash replays the
// tail instead of dropping it.
func (w *AuditWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.log.Info("audit worker stopped")
			return
		default:
			records, err := w.consumer.Poll(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				w.log.Error(fmt.Sprintf("failed to poll kafka: %v", err))
				time.Sleep(w.config.PollBackoff)
				continue
			}

			if len(records) == 0 {
				continue
			}

			w.processRecords(ctx, records)

			if err := w.consumer.CommitRecords(ctx, records); err != nil {
				w.log.Error(fmt.Sprintf("failed to commit offsets: %v", err))
			}
		}
	}
}

func (w *AuditWorker) processRecords(ctx context.Context, records []*kafka.Record) {
	for _, record := range records {
		var event domain.IntegrationEvent
		if err := json.Unmarshal(record.Value, &event); err != nil {
			w.log.Warn("parking malformed event",
				zap.String("topic", record.Topic),
				zap.Int64("offset", record.Offset),
				zap.Error(err),
			)
			w.park(ctx, record, err)
			continue
		}

		w.log.Info("integration event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("subject", event.Subject),
			zap.Time("occurred_at", event.OccurredAt),
			zap.Int32("partition", record.Partition),
			zap.Int64("offset", record.Offset),
		)
	}
}

func (w *AuditWorker) park(ctx context.Context, record *kafka.Record, cause error) {
	msg := &retry.DLQMessage{
		ID:            fmt.Sprintf("%s-%d-%d", record.Topic, record.Partition, record.Offset),
		OriginalTopic: record.Topic,
		OriginalKey:   string(record.Key),
		Payload:       json.RawMessage(record.Value),
		Headers:       record.Headers,
		Error:         cause.Error(),
		Attempts:      1,
	}
	if err := w.dlq.PublishToDLQ(ctx, msg); err != nil {
		w.log.Error("failed to publish to dlq",
			zap.String("topic", record.Topic),
			zap.Int64("offset", record.Offset),
			zap.Error(err),
		)
	}
}

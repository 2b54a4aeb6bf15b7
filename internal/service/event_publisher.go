package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vromao/catering-ops/internal/domain"
	"github.com/vromao/catering-ops/pkg/kafka"
	"github.com/vromao/catering-ops/pkg/retry"
)

// EventPublisher defines the interface for publishing planning events
type EventPublisher interface {
	// PublishEventPlanned publishes an event planned notification
	PublishEventPlanned(ctx context.Context, eventID uuid.UUID, payload any) error

	// PublishEventSettled publishes an event settled notification
	PublishEventSettled(ctx context.Context, eventID uuid.UUID, payload any) error

	// PublishLowStock publishes a low stock alert for a product
	PublishLowStock(ctx context.Context, product *domain.Product) error

	// Close closes the event publisher
	Close() error
}

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	producer    *kafka.Producer
	topic       string
	serviceName string
	retryCfg    *retry.Config
}

// EventPublisherConfig contains configuration for the event publisher
type EventPublisherConfig struct {
	Brokers     []string
	Topic       string
	ServiceName string
	ClientID    string
}

// NewKafkaEventPublisher creates a new Kafka event publisher
func NewKafkaEventPublisher(ctx context.Context, cfg *EventPublisherConfig) (*KafkaEventPublisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("event publisher config is required")
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	topic := cfg.Topic
	if topic == "" {
		topic = "catering-events"
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "catering-ops"
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "catering-ops-producer"
	}

	producer, err := kafka.NewProducer(ctx, &kafka.ProducerConfig{
		Brokers:       cfg.Brokers,
		ClientID:      clientID,
		MaxRetries:    3,
		RetryInterval: 2 * time.Second,
		BatchSize:     100,
		LingerMs:      10,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &KafkaEventPublisher{
		producer:    producer,
		topic:       topic,
		serviceName: serviceName,
		retryCfg: &retry.Config{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			Multiplier:      2.0,
			JitterFactor:    0.1,
		},
	}, nil
}

// PublishEventPlanned publishes an event planned notification
func (p *KafkaEventPublisher) PublishEventPlanned(ctx context.Context, eventID uuid.UUID, payload any) error {
	return p.publish(ctx, domain.IntegrationEventPlanned, eventID.String(), payload)
}

// PublishEventSettled publishes an event settled notification
func (p *KafkaEventPublisher) PublishEventSettled(ctx context.Context, eventID uuid.UUID, payload any) error {
	return p.publish(ctx, domain.IntegrationEventSettled, eventID.String(), payload)
}

// PublishLowStock publishes a low stock alert for a product
func (p *KafkaEventPublisher) PublishLowStock(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, domain.IntegrationEventLowStock, product.ID.String(), map[string]any{
		"product_id": product.ID.String(),
		"name":       product.Name,
		"unit":       product.Unit,
		"stock":      product.Stock,
		"min_stock":  product.MinStock,
	})
}

// Close closes the event publisher
func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		p.producer.Close()
	}
	return nil
}

// publish serializes the envelope and produces it with retries
func (p *KafkaEventPublisher) publish(ctx context.Context, eventType domain.IntegrationEventType, subject string, payload any) error {
	event := domain.NewIntegrationEvent(eventType, uuid.New().String(), subject, payload)

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	headers := map[string]string{
		"event_type":   string(eventType),
		"event_id":     event.ID,
		"source":       p.serviceName,
		"content_type": "application/json",
	}

	msg := &kafka.Message{
		Topic:     p.topic,
		Key:       []byte(event.Key()),
		Value:     value,
		Headers:   headers,
		Timestamp: time.Now(),
	}

	result := retry.Do(ctx, p.retryCfg, func(ctx context.Context) error {
		return p.producer.Produce(ctx, msg)
	})
	if result.Err != nil {
		cause := result.LastError
		if cause == nil {
			cause = result.Err
		}
		return fmt.Errorf("failed to publish %s event: %w", eventType, cause)
	}

	return nil
}

// NoOpEventPublisher is a no-op implementation of EventPublisher used
// when Kafka is disabled and in tests
type NoOpEventPublisher struct{}

// NewNoOpEventPublisher creates a new no-op event publisher
func NewNoOpEventPublisher() *NoOpEventPublisher {
	return &NoOpEventPublisher{}
}

// PublishEventPlanned is a no-op
func (p *NoOpEventPublisher) PublishEventPlanned(ctx context.Context, eventID uuid.UUID, payload any) error {
	return nil
}

// PublishEventSettled is a no-op
func (p *NoOpEventPublisher) PublishEventSettled(ctx context.Context, eventID uuid.UUID, payload any) error {
	return nil
}

// PublishLowStock is a no-op
func (p *NoOpEventPublisher) PublishLowStock(ctx context.Context, product *domain.Product) error {
	return nil
}

// Close is a no-op
func (p *NoOpEventPublisher) Close() error {
	return nil
}

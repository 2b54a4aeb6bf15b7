package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vromao/catering-ops/internal/worker"
	"github.com/vromao/catering-ops/pkg/config"
	"github.com/vromao/catering-ops/pkg/kafka"
	"github.com/vromao/catering-ops/pkg/logger"
	"github.com/vromao/catering-ops/pkg/retry"
)

// Audit consumer for the integration event stream.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&logger.Config{
		Level:       "info",
		ServiceName: "events-consumer",
		Development: cfg.IsDevelopment(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	if !cfg.Kafka.Enabled {
		log.Fatal("kafka must be enabled for the events consumer")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer, err := kafka.NewConsumer(ctx, &kafka.ConsumerConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.ConsumerGroup,
		Topics:         []string{cfg.Kafka.Topic},
		ClientID:       "events-consumer",
		SessionTimeout: 30 * time.Second,
	})
	if err != nil {
		log.Fatal("failed to create kafka consumer", zap.Error(err))
	}
	defer consumer.Close()

	var dlq retry.DLQPublisher = retry.NewNoOpDLQPublisher()
	producer, err := kafka.NewProducer(ctx, &kafka.ProducerConfig{
		Brokers:  cfg.Kafka.Brokers,
		ClientID: "events-consumer-dlq",
	})
	if err != nil {
		log.Warn("failed to create dlq producer, malformed events will be dropped", zap.Error(err))
	} else {
		defer producer.Close()
		dlqCfg := retry.DefaultDLQConfig()
		dlqCfg.Source = "events-consumer"
		dlq = retry.NewKafkaDLQPublisher(&retry.KafkaProducerAdapter{Producer: producer}, dlqCfg)
	}

	w := worker.NewAuditWorker(nil, consumer, dlq, log)
	go w.Start(ctx)
	log.Info("events consumer running",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("group", cfg.Kafka.ConsumerGroup),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	cancel()
}

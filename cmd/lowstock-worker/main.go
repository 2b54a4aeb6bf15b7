package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vromao/catering-ops/internal/repository"
	"github.com/vromao/catering-ops/internal/service"
	"github.com/vromao/catering-ops/internal/worker"
	"github.com/vromao/catering-ops/pkg/config"
	"github.com/vromao/catering-ops/pkg/database"
	"github.com/vromao/catering-ops/pkg/logger"
)

// Standalone low-stock sweeper. The API server can run the same worker
// in-process; this binary exists for deployments that scale it separately.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&logger.Config{
		Level:       "info",
		ServiceName: "lowstock-worker",
		Development: cfg.IsDevelopment(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  10 * time.Second,
		MaxRetries:      5,
		RetryInterval:   2 * time.Second,
	})
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	var publisher service.EventPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := service.NewKafkaEventPublisher(ctx, &service.EventPublisherConfig{
			Brokers:     cfg.Kafka.Brokers,
			Topic:       cfg.Kafka.Topic,
			ServiceName: "lowstock-worker",
			ClientID:    cfg.Kafka.ClientID,
		})
		if err != nil {
			log.Warn("failed to connect to kafka, alerts will not be published", zap.Error(err))
			publisher = service.NewNoOpEventPublisher()
		} else {
			publisher = kafkaPublisher
			defer kafkaPublisher.Close()
		}
	} else {
		publisher = service.NewNoOpEventPublisher()
	}

	products := repository.NewPostgresProductRepository(db.Pool())
	w := worker.NewLowStockWorker(
		&worker.LowStockWorkerConfig{Interval: cfg.Worker.LowStockInterval},
		products,
		publisher,
		log,
	)

	go w.Start(ctx)
	log.Info("low stock worker running", zap.Duration("interval", cfg.Worker.LowStockInterval))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	cancel()
}

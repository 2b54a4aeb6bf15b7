package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vromao/catering-ops/internal/di"
	"github.com/vromao/catering-ops/internal/metrics"
	"github.com/vromao/catering-ops/internal/service"
	"github.com/vromao/catering-ops/internal/worker"
	"github.com/vromao/catering-ops/pkg/config"
	"github.com/vromao/catering-ops/pkg/database"
	"github.com/vromao/catering-ops/pkg/logger"
	"github.com/vromao/catering-ops/pkg/middleware"
	pkgredis "github.com/vromao/catering-ops/pkg/redis"
	"github.com/vromao/catering-ops/pkg/telemetry"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("starting catering-ops",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	ctx := context.Background()

	if cfg.OTel.Enabled {
		if _, err := telemetry.Init(ctx, &telemetry.Config{
			Enabled:        true,
			ServiceName:    cfg.OTel.ServiceName,
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			CollectorAddr:  cfg.OTel.CollectorAddr,
		}); err != nil {
			log.Warn("failed to init telemetry, continuing without tracing", zap.Error(err))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := telemetry.Shutdown(shutdownCtx); err != nil {
					log.Warn("failed to shutdown telemetry", zap.Error(err))
				}
			}()
		}
	}

	if err := metrics.Init(); err != nil {
		log.Warn("failed to init metrics", zap.Error(err))
	}

	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  10 * time.Second,
		MaxRetries:      5,
		RetryInterval:   2 * time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	})
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()
	log.Info("connected to postgres",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(ctx, &pkgredis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		log.Info("connected to redis", zap.String("host", cfg.Redis.Host))
	} else {
		log.Info("redis disabled, menu cache and idempotency are off")
	}

	var eventPublisher service.EventPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := service.NewKafkaEventPublisher(ctx, &service.EventPublisherConfig{
			Brokers:     cfg.Kafka.Brokers,
			Topic:       cfg.Kafka.Topic,
			ServiceName: cfg.App.Name,
			ClientID:    cfg.Kafka.ClientID,
		})
		if err != nil {
			log.Warn("failed to connect to kafka, events will not be published", zap.Error(err))
			eventPublisher = service.NewNoOpEventPublisher()
		} else {
			eventPublisher = kafkaPublisher
			defer kafkaPublisher.Close()
			log.Info("connected to kafka", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		eventPublisher = service.NewNoOpEventPublisher()
	}

	container := di.NewContainer(&di.ContainerConfig{
		DB:             db,
		Redis:          redisClient,
		EventPublisher: eventPublisher,
	})

	if cfg.Worker.LowStockEnabled {
		lowStock := worker.NewLowStockWorker(
			&worker.LowStockWorkerConfig{Interval: cfg.Worker.LowStockInterval},
			container.ProductRepo,
			eventPublisher,
			log,
		)
		go lowStock.Start(ctx)
		log.Info("low stock worker started", zap.Duration("interval", cfg.Worker.LowStockInterval))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DisableConsoleColor()

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(cfg.App.Name))
	}
	router.Use(metrics.Middleware())

	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)
	router.GET("/metrics", func(c *gin.Context) {
		stats := db.Stats()
		c.JSON(http.StatusOK, gin.H{
			"db_total_conns":    stats.TotalConns(),
			"db_idle_conns":     stats.IdleConns(),
			"db_acquired_conns": stats.AcquiredConns(),
			"db_max_conns":      stats.MaxConns(),
		})
	})

	registerRoutes(router, container, redisClient)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	if cfg.IsDevelopment() {
		go func() {
			pprofAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port+1000)
			log.Info("pprof listening", zap.String("addr", pprofAddr))
			if err := http.ListenAndServe(pprofAddr, nil); err != nil {
				log.Warn("pprof server stopped", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

// registerRoutes wires the v1 API. Planning and settlement writes run behind
// the idempotency middleware when Redis is available.
func registerRoutes(router *gin.Engine, c *di.Container, redisClient *pkgredis.Client) {
	idem := gin.HandlerFunc(func(ctx *gin.Context) { ctx.Next() })
	if redisClient != nil {
		idemCfg := middleware.DefaultIdempotencyConfig(redisClient.Client())
		idemCfg.SkipPaths = []string{"/health", "/ready", "/metrics"}
		idem = middleware.IdempotencyMiddleware(idemCfg)
	}

	v1 := router.Group("/api/v1")

	v1.GET("/status", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	clients := v1.Group("/clients")
	{
		clients.POST("", c.CatalogHandler.CreateClient)
		clients.GET("", c.CatalogHandler.ListClients)
		clients.GET("/:id", c.CatalogHandler.GetClient)
		clients.PUT("/:id", c.CatalogHandler.UpdateClient)
		clients.DELETE("/:id", c.CatalogHandler.DeleteClient)
	}

	products := v1.Group("/products")
	{
		products.POST("", c.CatalogHandler.CreateProduct)
		products.GET("", c.CatalogHandler.ListProducts)
		products.GET("/:id", c.CatalogHandler.GetProduct)
		products.PUT("/:id", c.CatalogHandler.UpdateProduct)
		products.PATCH("/:id/stock", idem, c.CatalogHandler.AdjustStock)
		products.GET("/:id/movements", c.CatalogHandler.ListProductMovements)
		products.DELETE("/:id", c.CatalogHandler.DeleteProduct)
	}

	assets := v1.Group("/assets")
	{
		assets.POST("", c.CatalogHandler.CreateAsset)
		assets.GET("", c.CatalogHandler.ListAssets)
		assets.GET("/:id", c.CatalogHandler.GetAsset)
		assets.PATCH("/:id/quantity", c.CatalogHandler.ResizeAsset)
		assets.DELETE("/:id", c.CatalogHandler.DeleteAsset)
	}

	menus := v1.Group("/menus")
	{
		menus.POST("", c.MenuHandler.CreateMenu)
		menus.GET("", c.MenuHandler.ListMenus)
		menus.GET("/:id", c.MenuHandler.GetMenu)
		menus.POST("/:id/items", c.MenuHandler.AddItem)
		menus.POST("/:id/assets", c.MenuHandler.AddAsset)
		menus.DELETE("/:id/items/:itemId", c.MenuHandler.RemoveItem)
		menus.DELETE("/:id/assets/:entryId", c.MenuHandler.RemoveAsset)
		menus.DELETE("/:id", c.MenuHandler.DeleteMenu)
	}

	events := v1.Group("/events")
	{
		events.POST("", c.EventHandler.CreateEvent)
		events.GET("", c.EventHandler.ListEvents)
		events.GET("/:id", c.EventHandler.GetEvent)
		events.PUT("/:id", c.EventHandler.UpdateEvent)
		events.GET("/:id/movements", c.EventHandler.ListEventMovements)
		events.DELETE("/:id", c.EventHandler.DeleteEvent)

		events.POST("/:id/plan", idem, c.PlanningHandler.PlanEvent)
		events.GET("/:id/plan", c.PlanningHandler.GetPlan)
		events.POST("/:id/settle", idem, c.PlanningHandler.SettleEvent)
	}
}

package di

import (
	"time"

	"github.com/vromao/catering-ops/internal/handler"
	"github.com/vromao/catering-ops/internal/repository"
	"github.com/vromao/catering-ops/internal/service"
	"github.com/vromao/catering-ops/pkg/database"
	"github.com/vromao/catering-ops/pkg/redis"
)

// Container holds all dependencies for the catering service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	ClientRepo      repository.ClientRepository
	ProductRepo     repository.ProductRepository
	AssetRepo       repository.AssetRepository
	MenuRepo        repository.MenuRepository
	EventRepo       repository.EventRepository
	MovementRepo    repository.MovementRepository
	ReservationRepo repository.ReservationRepository
	PlanningStore   repository.PlanningStore
	MenuCache       repository.MenuCache

	// Publishers
	EventPublisher service.EventPublisher

	// Services
	CatalogService  service.CatalogService
	MenuService     service.MenuService
	EventService    service.EventService
	PlanningService service.PlanningService

	// Handlers
	HealthHandler   *handler.HealthHandler
	CatalogHandler  *handler.CatalogHandler
	MenuHandler     *handler.MenuHandler
	EventHandler    *handler.EventHandler
	PlanningHandler *handler.PlanningHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB             *database.PostgresDB
	Redis          *redis.Client
	EventPublisher service.EventPublisher
	MenuCacheTTL   time.Duration
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:             cfg.DB,
		Redis:          cfg.Redis,
		EventPublisher: cfg.EventPublisher,
	}
	if c.EventPublisher == nil {
		c.EventPublisher = service.NewNoOpEventPublisher()
	}

	pool := c.DB.Pool()

	// Repositories
	c.ClientRepo = repository.NewPostgresClientRepository(pool)
	c.ProductRepo = repository.NewPostgresProductRepository(pool)
	c.AssetRepo = repository.NewPostgresAssetRepository(pool)
	c.MenuRepo = repository.NewPostgresMenuRepository(pool)
	c.EventRepo = repository.NewPostgresEventRepository(pool)
	c.MovementRepo = repository.NewPostgresMovementRepository(pool)
	c.ReservationRepo = repository.NewPostgresReservationRepository(pool)
	c.PlanningStore = repository.NewPostgresPlanningStore(pool)

	// Menu cache is optional: without Redis every read hits Postgres
	if c.Redis != nil {
		ttl := cfg.MenuCacheTTL
		if ttl <= 0 {
			ttl = 10 * time.Minute
		}
		c.MenuCache = repository.NewRedisMenuCache(c.Redis, ttl)
	}

	// Services
	c.CatalogService = service.NewCatalogService(
		c.ClientRepo,
		c.ProductRepo,
		c.AssetRepo,
		c.MovementRepo,
	)
	c.MenuService = service.NewMenuService(
		c.MenuRepo,
		c.ProductRepo,
		c.AssetRepo,
		c.MenuCache,
	)
	c.EventService = service.NewEventService(
		c.EventRepo,
		c.ClientRepo,
		c.MenuRepo,
		c.MovementRepo,
		c.PlanningStore,
	)
	c.PlanningService = service.NewPlanningService(
		c.PlanningStore,
		c.ReservationRepo,
		c.EventRepo,
		c.ProductRepo,
		c.AssetRepo,
		c.EventPublisher,
	)

	// Handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.CatalogHandler = handler.NewCatalogHandler(c.CatalogService)
	c.MenuHandler = handler.NewMenuHandler(c.MenuService)
	c.EventHandler = handler.NewEventHandler(c.EventService)
	c.PlanningHandler = handler.NewPlanningHandler(c.PlanningService)

	return c
}

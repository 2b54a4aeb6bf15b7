package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vromao/catering-ops/internal/domain"
	pkgredis "github.com/vromao/catering-ops/pkg/redis"
	"github.com/vromao/catering-ops/pkg/telemetry"
)

// MenuCache caches menus, which planning reads on every plan and
// replan but which change rarely.
type MenuCache interface {
	// Get returns the cached menu, or nil on a miss
	Get(ctx context.Context, id uuid.UUID) (*domain.Menu, error)
	// Set stores a menu
	Set(ctx context.Context, menu *domain.Menu) error
	// Invalidate drops a menu from the cache
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// RedisMenuCache implements MenuCache using Redis
type RedisMenuCache struct {
	client *pkgredis.Client
	ttl    time.Duration
}

// NewRedisMenuCache creates a new RedisMenuCache
func NewRedisMenuCache(client *pkgredis.Client, ttl time.Duration) *RedisMenuCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisMenuCache{client: client, ttl: ttl}
}

func menuCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("menu:%s", id)
}

// Get returns the cached menu, or nil on a miss. Corrupt entries are
// dropped and treated as a miss.
func (c *RedisMenuCache) Get(ctx context.Context, id uuid.UUID) (*domain.Menu, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.redis.menu_cache.get")
	defer span.End()

	span.SetAttributes(attribute.String("menu_id", id.String()))

	data, err := c.client.Get(ctx, menuCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			span.SetAttributes(attribute.Bool("cache_hit", false))
			span.SetStatus(codes.Ok, "")
			return nil, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to read menu cache: %w", err)
	}

	menu := &domain.Menu{}
	if err := json.Unmarshal(data, menu); err != nil {
		c.client.Del(ctx, menuCacheKey(id))
		span.SetAttributes(attribute.Bool("cache_hit", false))
		span.SetStatus(codes.Ok, "dropped corrupt entry")
		return nil, nil
	}

	span.SetAttributes(attribute.Bool("cache_hit", true))
	span.SetStatus(codes.Ok, "")
	return menu, nil
}

// Set stores a menu with the configured TTL
func (c *RedisMenuCache) Set(ctx context.Context, menu *domain.Menu) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.redis.menu_cache.set")
	defer span.End()

	span.SetAttributes(attribute.String("menu_id", menu.ID.String()))

	data, err := json.Marshal(menu)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to marshal menu: %w", err)
	}

	if err := c.client.Set(ctx, menuCacheKey(menu.ID), data, c.ttl).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to write menu cache: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Invalidate drops a menu from the cache
func (c *RedisMenuCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.redis.menu_cache.invalidate")
	defer span.End()

	span.SetAttributes(attribute.String("menu_id", id.String()))

	if err := c.client.Del(ctx, menuCacheKey(id)).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to invalidate menu cache: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Ensure RedisMenuCache implements MenuCache
var _ MenuCache = (*RedisMenuCache)(nil)

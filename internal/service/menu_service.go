package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vromao/catering-ops/internal/domain"
	"github.com/vromao/catering-ops/internal/dto"
	"github.com/vromao/catering-ops/internal/repository"
	"github.com/vromao/catering-ops/pkg/telemetry"
)

// MenuService defines the interface for menu template management
type MenuService interface {
	// CreateMenu creates a new menu template
	CreateMenu(ctx context.Context, req *dto.CreateMenuRequest) (*dto.MenuResponse, error)
	// GetMenu retrieves a menu with its entries, cache-first
	GetMenu(ctx context.Context, id uuid.UUID) (*dto.MenuResponse, error)
	// ListMenus lists menus with pagination
	ListMenus(ctx context.Context, page, pageSize int) ([]*dto.MenuResponse, error)
	// AddItem attaches a product entry to a menu
	AddItem(ctx context.Context, menuID uuid.UUID, req *dto.AddMenuItemRequest) (*dto.MenuResponse, error)
	// AddAsset attaches an asset entry to a menu
	AddAsset(ctx context.Context, menuID uuid.UUID, req *dto.AddMenuAssetRequest) (*dto.MenuResponse, error)
	// RemoveItem detaches a product entry from a menu
	RemoveItem(ctx context.Context, menuID, itemID uuid.UUID) error
	// RemoveAsset detaches an asset entry from a menu
	RemoveAsset(ctx context.Context, menuID, entryID uuid.UUID) error
	// DeleteMenu deletes a menu and its entries
	DeleteMenu(ctx context.Context, id uuid.UUID) error
}

// menuService implements MenuService
type menuService struct {
	menus    repository.MenuRepository
	products repository.ProductRepository
	assets   repository.AssetRepository
	cache    repository.MenuCache
}

// NewMenuService creates a new menu service. cache may be nil, in which
// case every read goes to the database.
func NewMenuService(
	menus repository.MenuRepository,
	products repository.ProductRepository,
	assets repository.AssetRepository,
	cache repository.MenuCache,
) MenuService {
	return &menuService{
		menus:    menus,
		products: products,
		assets:   assets,
		cache:    cache,
	}
}

// CreateMenu creates a new menu template
func (s *menuService) CreateMenu(ctx context.Context, req *dto.CreateMenuRequest) (*dto.MenuResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.menu.create")
	defer span.End()

	if req == nil || req.Name == "" {
		span.SetStatus(codes.Error, "invalid menu")
		return nil, domain.ErrInvalidMenuID
	}

	now := time.Now()
	menu := &domain.Menu{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.menus.Create(ctx, menu); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("menu_id", menu.ID.String()))
	span.SetStatus(codes.Ok, "")
	return dto.FromMenu(menu), nil
}

// GetMenu retrieves a menu with its entries, cache-first
func (s *menuService) GetMenu(ctx context.Context, id uuid.UUID) (*dto.MenuResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.menu.get")
	defer span.End()

	span.SetAttributes(attribute.String("menu_id", id.String()))

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			span.SetStatus(codes.Ok, "")
			return dto.FromMenu(cached), nil
		}
	}

	menu, err := s.menus.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if s.cache != nil {
		// Cache failures must not fail the read
		_ = s.cache.Set(ctx, menu)
	}

	span.SetStatus(codes.Ok, "")
	return dto.FromMenu(menu), nil
}

// ListMenus lists menus with pagination
func (s *menuService) ListMenus(ctx context.Context, page, pageSize int) ([]*dto.MenuResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.menu.list")
	defer span.End()

	limit, offset := pageBounds(page, pageSize)
	menus, err := s.menus.List(ctx, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]*dto.MenuResponse, 0, len(menus))
	for _, menu := range menus {
		out = append(out, dto.FromMenu(menu))
	}

	span.SetAttributes(attribute.Int("count", len(out)))
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// AddItem attaches a product entry to a menu
func (s *menuService) AddItem(ctx context.Context, menuID uuid.UUID, req *dto.AddMenuItemRequest) (*dto.MenuResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.menu.add_item")
	defer span.End()

	if req == nil {
		span.SetStatus(codes.Error, "missing request")
		return nil, domain.ErrInvalidProductID
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		span.SetStatus(codes.Error, "invalid product_id")
		return nil, domain.ErrInvalidProductID
	}
	if !req.PerGuest.IsPositive() {
		span.SetStatus(codes.Error, "invalid per_guest")
		return nil, domain.ErrInvalidQuantity
	}

	span.SetAttributes(
		attribute.String("menu_id", menuID.String()),
		attribute.String("product_id", productID.String()),
	)

	// The product must exist before it can be put on a menu
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	item := &domain.MenuItem{
		ID:        uuid.New(),
		MenuID:    menuID,
		ProductID: productID,
		PerGuest:  req.PerGuest,
	}
	if err := s.menus.AddItem(ctx, item); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.invalidate(ctx, menuID)
	return s.reload(ctx, span, menuID)
}

// AddAsset attaches an asset entry to a menu
func (s *menuService) AddAsset(ctx context.Context, menuID uuid.UUID, req *dto.AddMenuAssetRequest) (*dto.MenuResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.menu.add_asset")
	defer span.End()

	if req == nil {
		span.SetStatus(codes.Error, "missing request")
		return nil, domain.ErrInvalidAssetID
	}
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		span.SetStatus(codes.Error, "invalid asset_id")
		return nil, domain.ErrInvalidAssetID
	}
	mode := domain.AllocationMode(req.Mode)
	if !mode.IsValid() {
		span.SetStatus(codes.Error, "invalid mode")
		return nil, domain.ErrInvalidAllocationMode
	}
	if req.Quantity <= 0 {
		span.SetStatus(codes.Error, "invalid quantity")
		return nil, domain.ErrInvalidQuantity
	}

	span.SetAttributes(
		attribute.String("menu_id", menuID.String()),
		attribute.String("asset_id", assetID.String()),
	)

	if _, err := s.assets.GetByID(ctx, assetID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	entry := &domain.MenuAsset{
		ID:       uuid.New(),
		MenuID:   menuID,
		AssetID:  assetID,
		Mode:     mode,
		Quantity: req.Quantity,
	}
	if err := s.menus.AddAsset(ctx, entry); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.invalidate(ctx, menuID)
	return s.reload(ctx, span, menuID)
}

// RemoveItem detaches a product entry from a menu
func (s *menuService) RemoveItem(ctx context.Context, menuID, itemID uuid.UUID) error {
	ctx, span := telemetry.StartSpan(ctx, "service.menu.remove_item")
	defer span.End()

	if err := s.menus.RemoveItem(ctx, menuID, itemID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	s.invalidate(ctx, menuID)
	span.SetStatus(codes.Ok, "")
	return nil
}

// RemoveAsset detaches an asset entry from a menu
func (s *menuService) RemoveAsset(ctx context.Context, menuID, entryID uuid.UUID) error {
	ctx, span := telemetry.StartSpan(ctx, "service.menu.remove_asset")
	defer span.End()

	if err := s.menus.RemoveAsset(ctx, menuID, entryID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	s.invalidate(ctx, menuID)
	span.SetStatus(codes.Ok, "")
	return nil
}

// DeleteMenu deletes a menu and its entries
func (s *menuService) DeleteMenu(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartSpan(ctx, "service.menu.delete")
	defer span.End()

	if err := s.menus.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	s.invalidate(ctx, id)
	span.SetStatus(codes.Ok, "")
	return nil
}

func (s *menuService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, id)
	}
}

func (s *menuService) reload(ctx context.Context, span trace.Span, id uuid.UUID) (*dto.MenuResponse, error) {
	menu, err := s.menus.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return dto.FromMenu(menu), nil
}

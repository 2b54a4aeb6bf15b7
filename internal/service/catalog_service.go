package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vromao/catering-ops/internal/domain"
	"github.com/vromao/catering-ops/internal/dto"
	"github.com/vromao/catering-ops/internal/metrics"
	"github.com/vromao/catering-ops/internal/repository"
	"github.com/vromao/catering-ops/pkg/telemetry"
)

// CatalogService defines the interface for client, product and asset
// management
type CatalogService interface {
	// CreateClient registers a new client
	CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error)
	// GetClient retrieves a client by ID
	GetClient(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error)
	// ListClients lists clients with pagination
	ListClients(ctx context.Context, page, pageSize int) ([]*dto.ClientResponse, error)
	// UpdateClient applies a partial client update
	UpdateClient(ctx context.Context, id uuid.UUID, req *dto.UpdateClientRequest) (*dto.ClientResponse, error)
	// DeleteClient deletes a client
	DeleteClient(ctx context.Context, id uuid.UUID) error

	// CreateProduct registers a new product
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	// GetProduct retrieves a product by ID
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	// ListProducts lists products with pagination
	ListProducts(ctx context.Context, page, pageSize int) ([]*dto.ProductResponse, error)
	// UpdateProduct applies a partial product update
	UpdateProduct(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	// AdjustStock applies a manual stock movement
	AdjustStock(ctx context.Context, id uuid.UUID, req *dto.AdjustStockRequest) (*dto.ProductResponse, error)
	// ListProductMovements lists a product's ledger, newest first
	ListProductMovements(ctx context.Context, id uuid.UUID, page, pageSize int) ([]*dto.MovementResponse, error)
	// DeleteProduct deletes a product
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// CreateAsset registers a new asset pool
	CreateAsset(ctx context.Context, req *dto.CreateAssetRequest) (*dto.AssetResponse, error)
	// GetAsset retrieves an asset pool by ID
	GetAsset(ctx context.Context, id uuid.UUID) (*dto.AssetResponse, error)
	// ListAssets lists asset pools with pagination
	ListAssets(ctx context.Context, page, pageSize int) ([]*dto.AssetResponse, error)
	// ResizeAsset changes an asset pool's total
	ResizeAsset(ctx context.Context, id uuid.UUID, req *dto.UpdateAssetQuantityRequest) (*dto.AssetResponse, error)
	// DeleteAsset deletes an asset pool
	DeleteAsset(ctx context.Context, id uuid.UUID) error
}

// catalogService implements CatalogService
type catalogService struct {
	clients   repository.ClientRepository
	products  repository.ProductRepository
	assets    repository.AssetRepository
	movements repository.MovementRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	clients repository.ClientRepository,
	products repository.ProductRepository,
	assets repository.AssetRepository,
	movements repository.MovementRepository,
) CatalogService {
	return &catalogService{
		clients:   clients,
		products:  products,
		assets:    assets,
		movements: movements,
	}
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// pageBounds converts page/pageSize into limit/offset
func pageBounds(page, pageSize int) (limit, offset int) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}

// CreateClient registers a new client
func (s *catalogService) CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.create_client")
	defer span.End()

	if req == nil || req.Name == "" {
		span.SetStatus(codes.Error, "invalid client")
		return nil, domain.ErrInvalidClientID
	}

	now := time.Now()
	client := &domain.Client{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.clients.Create(ctx, client); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("client_id", client.ID.String()))
	span.SetStatus(codes.Ok, "")
	return dto.FromClient(client), nil
}

// GetClient retrieves a client by ID
func (s *catalogService) GetClient(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.get_client")
	defer span.End()

	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.FromClient(client), nil
}

// ListClients lists clients with pagination
func (s *catalogService) ListClients(ctx context.Context, page, pageSize int) ([]*dto.ClientResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.list_clients")
	defer span.End()

	limit, offset := pageBounds(page, pageSize)
	clients, err := s.clients.List(ctx, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]*dto.ClientResponse, 0, len(clients))
	for _, client := range clients {
		out = append(out, dto.FromClient(client))
	}

	span.SetAttributes(attribute.Int("count", len(out)))
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// UpdateClient applies a partial client update
func (s *catalogService) UpdateClient(ctx context.Context, id uuid.UUID, req *dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.update_client")
	defer span.End()

	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if req != nil {
		if req.Name != nil {
			client.Name = *req.Name
		}
		if req.Email != nil {
			client.Email = *req.Email
		}
		if req.Phone != nil {
			client.Phone = *req.Phone
		}
		if req.Notes != nil {
			client.Notes = *req.Notes
		}
	}
	client.UpdatedAt = time.Now()

	if err := s.clients.Update(ctx, client); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.FromClient(client), nil
}

// DeleteClient deletes a client
func (s *catalogService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.delete_client")
	defer span.End()

	if err := s.clients.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// CreateProduct registers a new product
func (s *catalogService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.create_product")
	defer span.End()

	if req == nil || req.Name == "" || req.Unit == "" {
		span.SetStatus(codes.Error, "invalid product")
		return nil, domain.ErrInvalidProductID
	}
	if req.Stock.IsNegative() || req.MinStock.IsNegative() {
		span.SetStatus(codes.Error, "negative quantity")
		return nil, domain.ErrInvalidQuantity
	}

	now := time.Now()
	product := &domain.Product{
		ID:        uuid.New(),
		Name:      req.Name,
		Unit:      req.Unit,
		Stock:     req.Stock,
		MinStock:  req.MinStock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("product_id", product.ID.String()))
	span.SetStatus(codes.Ok, "")
	return dto.FromProduct(product), nil
}

// GetProduct retrieves a product by ID
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.get_product")
	defer span.End()

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.FromProduct(product), nil
}

// ListProducts lists products with pagination
func (s *catalogService) ListProducts(ctx context.Context, page, pageSize int) ([]*dto.ProductResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.list_products")
	defer span.End()

	limit, offset := pageBounds(page, pageSize)
	products, err := s.products.List(ctx, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]*dto.ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, dto.FromProduct(product))
	}

	span.SetAttributes(attribute.Int("count", len(out)))
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// UpdateProduct applies a partial product update
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.update_product")
	defer span.End()

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if req != nil {
		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Unit != nil {
			product.Unit = *req.Unit
		}
		if req.MinStock != nil {
			if req.MinStock.IsNegative() {
				span.SetStatus(codes.Error, "negative min stock")
				return nil, domain.ErrInvalidQuantity
			}
			product.MinStock = *req.MinStock
		}
	}
	product.UpdatedAt = time.Now()

	if err := s.products.Update(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.FromProduct(product), nil
}

// AdjustStock applies a manual stock movement. Only ENTRY, EXIT and
// ADJUSTMENT kinds are accepted here.
func (s *catalogService) AdjustStock(ctx context.Context, id uuid.UUID, req *dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.adjust_stock")
	defer span.End()

	if req == nil {
		span.SetStatus(codes.Error, "missing request")
		return nil, domain.ErrInvalidMovementKind
	}

	kind := domain.MovementKind(req.Kind)
	if !kind.IsValid() || !kind.IsManual() {
		span.SetStatus(codes.Error, "invalid movement kind")
		return nil, domain.ErrInvalidMovementKind
	}
	if req.Quantity.IsNegative() {
		span.SetStatus(codes.Error, "negative quantity")
		return nil, domain.ErrInvalidQuantity
	}

	span.SetAttributes(
		attribute.String("product_id", id.String()),
		attribute.String("kind", string(kind)),
	)

	product, err := s.products.AdjustStock(ctx, id, kind, req.Quantity, req.Note)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	metrics.RecordStockAdjustment(ctx, id.String(), string(kind))
	span.SetStatus(codes.Ok, "")
	return dto.FromProduct(product), nil
}

// ListProductMovements lists a product's ledger, newest first
func (s *catalogService) ListProductMovements(ctx context.Context, id uuid.UUID, page, pageSize int) ([]*dto.MovementResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.list_product_movements")
	defer span.End()

	// Fail on unknown product rather than returning an empty ledger
	if _, err := s.products.GetByID(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	limit, offset := pageBounds(page, pageSize)
	movements, err := s.movements.ListByProduct(ctx, id, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]*dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.FromMovement(m))
	}

	span.SetAttributes(attribute.Int("count", len(out)))
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// DeleteProduct deletes a product
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.delete_product")
	defer span.End()

	if err := s.products.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// CreateAsset registers a new asset pool, fully available at creation
func (s *catalogService) CreateAsset(ctx context.Context, req *dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.create_asset")
	defer span.End()

	if req == nil || req.Name == "" {
		span.SetStatus(codes.Error, "invalid asset")
		return nil, domain.ErrInvalidAssetID
	}
	if req.Total < 0 {
		span.SetStatus(codes.Error, "negative total")
		return nil, domain.ErrInvalidQuantity
	}
	category := domain.AssetCategory(req.Category)
	if !category.IsValid() {
		span.SetStatus(codes.Error, "invalid category")
		return nil, domain.ErrInvalidAssetCategory
	}

	now := time.Now()
	asset := &domain.Asset{
		ID:        uuid.New(),
		Name:      req.Name,
		Category:  category,
		Total:     req.Total,
		Available: req.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.assets.Create(ctx, asset); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("asset_id", asset.ID.String()))
	span.SetStatus(codes.Ok, "")
	return dto.FromAsset(asset), nil
}

// GetAsset retrieves an asset pool by ID
func (s *catalogService) GetAsset(ctx context.Context, id uuid.UUID) (*dto.AssetResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.get_asset")
	defer span.End()

	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.FromAsset(asset), nil
}

// ListAssets lists asset pools with pagination
func (s *catalogService) ListAssets(ctx context.Context, page, pageSize int) ([]*dto.AssetResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.list_assets")
	defer span.End()

	limit, offset := pageBounds(page, pageSize)
	assets, err := s.assets.List(ctx, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]*dto.AssetResponse, 0, len(assets))
	for _, asset := range assets {
		out = append(out, dto.FromAsset(asset))
	}

	span.SetAttributes(attribute.Int("count", len(out)))
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// ResizeAsset changes an asset pool's total. Shrinking below the
// currently allocated count is rejected.
func (s *catalogService) ResizeAsset(ctx context.Context, id uuid.UUID, req *dto.UpdateAssetQuantityRequest) (*dto.AssetResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.resize_asset")
	defer span.End()

	if req == nil || req.Total < 0 {
		span.SetStatus(codes.Error, "invalid total")
		return nil, domain.ErrInvalidQuantity
	}

	span.SetAttributes(
		attribute.String("asset_id", id.String()),
		attribute.Int("total", req.Total),
	)

	asset, err := s.assets.Resize(ctx, id, req.Total)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.FromAsset(asset), nil
}

// DeleteAsset deletes an asset pool
func (s *catalogService) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.delete_asset")
	defer span.End()

	if err := s.assets.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

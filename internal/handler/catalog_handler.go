package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vromao/catering-ops/internal/dto"
	"github.com/vromao/catering-ops/internal/service"
	"github.com/vromao/catering-ops/pkg/telemetry"
)

// CatalogHandler handles HTTP requests for clients, products and
// reusable asset pools
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateClient handles POST /clients
func (h *CatalogHandler) CreateClient(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.create_client")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	result, err := h.catalogService.CreateClient(ctx, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(attribute.String("client_id", result.ID))
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusCreated, result)
}

// GetClient handles GET /clients/:id
func (h *CatalogHandler) GetClient(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.get_client")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	result, err := h.catalogService.GetClient(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// ListClients handles GET /clients
func (h *CatalogHandler) ListClients(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.list_clients")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	page, pageSize := pagination(c)
	span.SetAttributes(
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize),
	)

	result, err := h.catalogService.ListClients(ctx, page, pageSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// UpdateClient handles PATCH /clients/:id
func (h *CatalogHandler) UpdateClient(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.update_client")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	result, err := h.catalogService.UpdateClient(ctx, id, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// DeleteClient handles DELETE /clients/:id
func (h *CatalogHandler) DeleteClient(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.delete_client")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	if err := h.catalogService.DeleteClient(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.Status(http.StatusNoContent)
}

// CreateProduct handles POST /products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.create_product")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	result, err := h.catalogService.CreateProduct(ctx, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(attribute.String("product_id", result.ID))
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusCreated, result)
}

// GetProduct handles GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.get_product")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	result, err := h.catalogService.GetProduct(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.list_products")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	page, pageSize := pagination(c)
	result, err := h.catalogService.ListProducts(ctx, page, pageSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("count", len(result)))
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// UpdateProduct handles PATCH /products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.update_product")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	result, err := h.catalogService.UpdateProduct(ctx, id, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// AdjustStock handles PATCH /products/:id/stock
// Manual movements only: ENTRY, EXIT and ADJUSTMENT. Event-driven
// movements are written by planning and settlement.
func (h *CatalogHandler) AdjustStock(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.adjust_stock")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	span.SetAttributes(
		attribute.String("product_id", id.String()),
		attribute.String("kind", req.Kind),
	)

	result, err := h.catalogService.AdjustStock(ctx, id, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// ListProductMovements handles GET /products/:id/movements
func (h *CatalogHandler) ListProductMovements(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.list_product_movements")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	page, pageSize := pagination(c)
	result, err := h.catalogService.ListProductMovements(ctx, id, page, pageSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("count", len(result)))
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// DeleteProduct handles DELETE /products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.delete_product")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	if err := h.catalogService.DeleteProduct(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.Status(http.StatusNoContent)
}

// CreateAsset handles POST /assets
func (h *CatalogHandler) CreateAsset(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.create_asset")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	result, err := h.catalogService.CreateAsset(ctx, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(attribute.String("asset_id", result.ID))
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusCreated, result)
}

// GetAsset handles GET /assets/:id
func (h *CatalogHandler) GetAsset(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.get_asset")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	result, err := h.catalogService.GetAsset(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// ListAssets handles GET /assets
func (h *CatalogHandler) ListAssets(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.list_assets")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	page, pageSize := pagination(c)
	result, err := h.catalogService.ListAssets(ctx, page, pageSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("count", len(result)))
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// ResizeAsset handles PATCH /assets/:id/quantity
func (h *CatalogHandler) ResizeAsset(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.resize_asset")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	var req dto.UpdateAssetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	span.SetAttributes(
		attribute.String("asset_id", id.String()),
		attribute.Int("total", req.Total),
	)

	result, err := h.catalogService.ResizeAsset(ctx, id, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// DeleteAsset handles DELETE /assets/:id
func (h *CatalogHandler) DeleteAsset(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.catalog.delete_asset")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	if err := h.catalogService.DeleteAsset(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.Status(http.StatusNoContent)
}

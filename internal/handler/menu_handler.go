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

// MenuHandler handles menu template HTTP requests
type MenuHandler struct {
	menuService service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// CreateMenu handles POST /menus
func (h *MenuHandler) CreateMenu(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.menu.create")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.CreateMenuRequest
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

	result, err := h.menuService.CreateMenu(ctx, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(attribute.String("menu_id", result.ID))
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusCreated, result)
}

// GetMenu handles GET /menus/:id
func (h *MenuHandler) GetMenu(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.menu.get")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	result, err := h.menuService.GetMenu(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// ListMenus handles GET /menus
func (h *MenuHandler) ListMenus(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.menu.list")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	page, pageSize := pagination(c)
	result, err := h.menuService.ListMenus(ctx, page, pageSize)
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

// AddItem handles POST /menus/:id/items
func (h *MenuHandler) AddItem(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.menu.add_item")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	var req dto.AddMenuItemRequest
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
		attribute.String("menu_id", id.String()),
		attribute.String("product_id", req.ProductID),
	)

	result, err := h.menuService.AddItem(ctx, id, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusCreated, result)
}

// AddAsset handles POST /menus/:id/assets
func (h *MenuHandler) AddAsset(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.menu.add_asset")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	var req dto.AddMenuAssetRequest
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
		attribute.String("menu_id", id.String()),
		attribute.String("asset_id", req.AssetID),
		attribute.String("mode", req.Mode),
	)

	result, err := h.menuService.AddAsset(ctx, id, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusCreated, result)
}

// RemoveItem handles DELETE /menus/:id/items/:itemId
func (h *MenuHandler) RemoveItem(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.menu.remove_item")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		span.SetStatus(codes.Error, "invalid itemId")
		return
	}

	if err := h.menuService.RemoveItem(ctx, id, itemID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.Status(http.StatusNoContent)
}

// RemoveAsset handles DELETE /menus/:id/assets/:entryId
func (h *MenuHandler) RemoveAsset(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.menu.remove_asset")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}
	entryID, ok := pathID(c, "entryId")
	if !ok {
		span.SetStatus(codes.Error, "invalid entryId")
		return
	}

	if err := h.menuService.RemoveAsset(ctx, id, entryID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.Status(http.StatusNoContent)
}

// DeleteMenu handles DELETE /menus/:id
func (h *MenuHandler) DeleteMenu(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.menu.delete")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	if err := h.menuService.DeleteMenu(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.Status(http.StatusNoContent)
}

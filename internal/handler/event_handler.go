package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vromao/catering-ops/internal/dto"
	"github.com/vromao/catering-ops/internal/service"
	"github.com/vromao/catering-ops/pkg/telemetry"
)

// EventHandler handles event lifecycle HTTP requests. Planning and
// settlement have their own handler.
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.create")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.CreateEventRequest
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
		attribute.String("client_id", req.ClientID),
		attribute.Int("guest_count", req.GuestCount),
	)

	result, err := h.eventService.CreateEvent(ctx, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(attribute.String("event_id", result.ID))
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusCreated, result)
}

// GetEvent handles GET /events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.get")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	result, err := h.eventService.GetEvent(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// ListEvents handles GET /events with optional client_id and status
// query filters
func (h *EventHandler) ListEvents(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.list")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var clientID *uuid.UUID
	if raw := c.Query("client_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			span.SetStatus(codes.Error, "invalid client_id")
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "invalid client_id",
				Code:  "INVALID_REQUEST",
			})
			return
		}
		clientID = &parsed
	}
	status := c.Query("status")

	page, pageSize := pagination(c)
	span.SetAttributes(
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize),
	)

	result, err := h.eventService.ListEvents(ctx, clientID, status, page, pageSize)
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

// UpdateEvent handles PATCH /events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.update")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	var req dto.UpdateEventRequest
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

	result, err := h.eventService.UpdateEvent(ctx, id, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(attribute.String("status", result.Status))
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// ListEventMovements handles GET /events/:id/movements
func (h *EventHandler) ListEventMovements(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.list_movements")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	result, err := h.eventService.ListEventMovements(ctx, id)
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

// DeleteEvent handles DELETE /events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.delete")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	if err := h.eventService.DeleteEvent(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.Status(http.StatusNoContent)
}

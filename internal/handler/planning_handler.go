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

// PlanningHandler handles planning and settlement HTTP requests.
// Both POST endpoints run behind the idempotency middleware, so a
// retried request replays the stored response instead of re-entering
// the engine.
type PlanningHandler struct {
	planningService service.PlanningService
}

// NewPlanningHandler creates a new planning handler
func NewPlanningHandler(planningService service.PlanningService) *PlanningHandler {
	return &PlanningHandler{planningService: planningService}
}

// PlanEvent handles POST /events/:id/plan
// Replanning a PLANNED event is allowed and rebuilds the plan from
// scratch, releasing previously held assets first.
func (h *PlanningHandler) PlanEvent(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.planning.plan")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	span.SetAttributes(attribute.String("event_id", id.String()))

	result, err := h.planningService.PlanEvent(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(
		attribute.Int("products", len(result.Products)),
		attribute.Int("assets", len(result.Assets)),
		attribute.Int("purchase_items", len(result.Purchase)),
	)
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// GetPlan handles GET /events/:id/plan
func (h *PlanningHandler) GetPlan(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.planning.get_plan")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	result, err := h.planningService.GetPlan(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, result)
}

// SettleEvent handles POST /events/:id/settle
// The body is optional: a missing or empty report settles with full
// consumption and zero losses.
func (h *PlanningHandler) SettleEvent(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.planning.settle")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		span.SetStatus(codes.Error, "invalid id")
		return
	}

	span.SetAttributes(attribute.String("event_id", id.String()))

	var req dto.SettleEventRequest
	if c.Request.ContentLength > 0 {
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
	}

	result, err := h.planningService.SettleEvent(ctx, id, &req)
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

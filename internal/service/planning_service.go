package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vromao/catering-ops/internal/domain"
	"github.com/vromao/catering-ops/internal/dto"
	"github.com/vromao/catering-ops/internal/metrics"
	"github.com/vromao/catering-ops/internal/planner"
	"github.com/vromao/catering-ops/internal/repository"
	"github.com/vromao/catering-ops/pkg/telemetry"
)

// PlanningService defines the interface for event planning and settlement
type PlanningService interface {
	// PlanEvent computes and stores the event's requirement plan.
	// Replanning a PLANNED event rebuilds the plan from scratch.
	PlanEvent(ctx context.Context, eventID uuid.UUID) (*dto.PlanEventResponse, error)

	// GetPlan returns the event's stored plan
	GetPlan(ctx context.Context, eventID uuid.UUID) (*dto.PlanEventResponse, error)

	// SettleEvent applies the post-event report, adjusts inventory and
	// closes the event
	SettleEvent(ctx context.Context, eventID uuid.UUID, req *dto.SettleEventRequest) (*dto.SettleEventResponse, error)
}

// planningService implements PlanningService
type planningService struct {
	store        repository.PlanningStore
	reservations repository.ReservationRepository
	events       repository.EventRepository
	products     repository.ProductRepository
	assets       repository.AssetRepository
	publisher    EventPublisher
}

// NewPlanningService creates a new planning service
func NewPlanningService(
	store repository.PlanningStore,
	reservations repository.ReservationRepository,
	events repository.EventRepository,
	products repository.ProductRepository,
	assets repository.AssetRepository,
	publisher EventPublisher,
) PlanningService {
	if publisher == nil {
		publisher = NewNoOpEventPublisher()
	}
	return &planningService{
		store:        store,
		reservations: reservations,
		events:       events,
		products:     products,
		assets:       assets,
		publisher:    publisher,
	}
}

// PlanEvent computes and stores the event's requirement plan in one
// transaction. Product reservations are soft holds; asset allocations
// decrement availability immediately. A replan first hands back the
// previous allocations, so running it twice yields the same state as
// running it once.
func (s *planningService) PlanEvent(ctx context.Context, eventID uuid.UUID) (*dto.PlanEventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.planning.plan_event")
	defer span.End()

	if eventID == uuid.Nil {
		span.SetStatus(codes.Error, "invalid event_id")
		return nil, domain.ErrInvalidEventID
	}

	span.SetAttributes(attribute.String("event_id", eventID.String()))

	var resp *dto.PlanEventResponse
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.PlanningTx) error {
		event, err := tx.LockEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if !event.CanPlan() {
			return domain.ErrEventNotPlannable
		}
		if event.MenuID == nil {
			return domain.ErrEventWithoutMenu
		}
		if event.GuestCount <= 0 {
			return domain.ErrEventWithoutGuests
		}

		menu, err := tx.GetMenu(ctx, *event.MenuID)
		if err != nil {
			return err
		}

		productReqs := planner.ProductRequirements(menu, event.GuestCount)
		assetReqs := planner.AssetRequirements(menu, event.GuestCount)

		// A replan must hand the previous allocations back before the
		// new ones are taken, so the old allocation's assets are locked
		// together with the menu's.
		oldAllocations, err := tx.GetAssetAllocations(ctx, eventID)
		if err != nil {
			return err
		}

		productIDs := make([]uuid.UUID, 0, len(productReqs))
		for _, req := range productReqs {
			productIDs = append(productIDs, req.ProductID)
		}

		assetIDSet := make(map[uuid.UUID]struct{}, len(assetReqs)+len(oldAllocations))
		assetIDs := make([]uuid.UUID, 0, len(assetReqs)+len(oldAllocations))
		for _, req := range assetReqs {
			if _, ok := assetIDSet[req.AssetID]; !ok {
				assetIDSet[req.AssetID] = struct{}{}
				assetIDs = append(assetIDs, req.AssetID)
			}
		}
		for _, alloc := range oldAllocations {
			if _, ok := assetIDSet[alloc.AssetID]; !ok {
				assetIDSet[alloc.AssetID] = struct{}{}
				assetIDs = append(assetIDs, alloc.AssetID)
			}
		}

		products, err := tx.LockProducts(ctx, productIDs)
		if err != nil {
			return err
		}
		assets, err := tx.LockAssets(ctx, assetIDs)
		if err != nil {
			return err
		}

		for _, req := range productReqs {
			if _, ok := products[req.ProductID]; !ok {
				return fmt.Errorf("menu references product %s: %w", req.ProductID, domain.ErrProductNotFound)
			}
		}
		for _, req := range assetReqs {
			if _, ok := assets[req.AssetID]; !ok {
				return fmt.Errorf("menu references asset %s: %w", req.AssetID, domain.ErrAssetNotFound)
			}
		}

		touchedAssets := make(map[uuid.UUID]struct{})
		for _, alloc := range oldAllocations {
			asset, ok := assets[alloc.AssetID]
			if !ok {
				// Asset pool deleted since the previous plan; nothing
				// left to hand availability back to.
				continue
			}
			asset.Available += alloc.Quantity
			if asset.Available > asset.Total {
				asset.Available = asset.Total
			}
			touchedAssets[asset.ID] = struct{}{}
		}

		now := time.Now()
		warnings := []string{}
		purchase := []dto.PurchaseItem{}

		// Reservations are soft holds capped at stock on hand; rows are
		// only written for positive quantities.
		reservations := make([]*domain.ProductReservation, 0, len(productReqs))
		plannedProducts := make([]dto.PlannedProduct, 0, len(productReqs))
		for _, req := range productReqs {
			product := products[req.ProductID]
			reserved, shortfall := planner.SplitProduct(req.Required, product.Stock)
			if reserved.IsPositive() {
				reservations = append(reservations, &domain.ProductReservation{
					ID:        uuid.New(),
					EventID:   eventID,
					ProductID: req.ProductID,
					Quantity:  reserved,
					Shortfall: shortfall,
					CreatedAt: now,
				})
			}
			plannedProducts = append(plannedProducts, dto.PlannedProduct{
				ProductID: req.ProductID.String(),
				Name:      product.Name,
				Unit:      product.Unit,
				Required:  req.Required,
				Reserved:  reserved,
				Shortfall: shortfall,
			})
			if shortfall.IsPositive() {
				purchase = append(purchase, dto.PurchaseItem{
					ProductID: req.ProductID.String(),
					Name:      product.Name,
					Unit:      product.Unit,
					Shortfall: shortfall,
				})
				warnings = append(warnings, fmt.Sprintf(
					"product %q is short by %s %s", product.Name, shortfall.String(), product.Unit))
			}
		}

		allocations := make([]*domain.AssetAllocation, 0, len(assetReqs))
		plannedAssets := make([]dto.PlannedAsset, 0, len(assetReqs))
		for _, req := range assetReqs {
			asset := assets[req.AssetID]
			allocated, shortfall := planner.SplitAsset(req.Required, asset.Available)
			asset.Available -= allocated
			touchedAssets[asset.ID] = struct{}{}
			if allocated > 0 {
				allocations = append(allocations, &domain.AssetAllocation{
					ID:        uuid.New(),
					EventID:   eventID,
					AssetID:   req.AssetID,
					Quantity:  allocated,
					Shortfall: shortfall,
					CreatedAt: now,
				})
			}
			plannedAssets = append(plannedAssets, dto.PlannedAsset{
				AssetID:   req.AssetID.String(),
				Name:      asset.Name,
				Required:  req.Required,
				Allocated: allocated,
				Shortfall: shortfall,
			})
			if shortfall > 0 {
				warnings = append(warnings, fmt.Sprintf(
					"asset %q is short by %d units", asset.Name, shortfall))
			}
		}

		if err := tx.ReplacePlan(ctx, eventID, reservations, allocations); err != nil {
			return err
		}

		for id := range touchedAssets {
			asset := assets[id]
			if err := tx.SetAssetCounts(ctx, id, asset.Total, asset.Available); err != nil {
				return err
			}
		}

		event.Status = domain.EventStatusPlanned
		event.PlannedAt = &now
		if err := tx.UpdateEvent(ctx, event); err != nil {
			return err
		}

		resp = &dto.PlanEventResponse{
			EventID:    eventID.String(),
			Status:     string(event.Status),
			GuestCount: event.GuestCount,
			PlannedAt:  now,
			Products:   plannedProducts,
			Assets:     plannedAssets,
			Purchase:   purchase,
			Warnings:   warnings,
		}
		return nil
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.RecordPlanFailure(ctx, eventID.String(), err.Error())
		return nil, err
	}

	if err := s.publisher.PublishEventPlanned(ctx, eventID, resp); err != nil {
		// Publishing is best effort; the plan is already committed
		span.RecordError(err)
	}

	metrics.RecordPlan(ctx, eventID.String(), len(resp.Products), len(resp.Assets), len(resp.Warnings))
	span.SetAttributes(
		attribute.Int("products", len(resp.Products)),
		attribute.Int("assets", len(resp.Assets)),
		attribute.Int("warnings", len(resp.Warnings)),
	)
	span.SetStatus(codes.Ok, "")
	return resp, nil
}

// GetPlan returns the event's stored plan with current item names
func (s *planningService) GetPlan(ctx context.Context, eventID uuid.UUID) (*dto.PlanEventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.planning.get_plan")
	defer span.End()

	if eventID == uuid.Nil {
		span.SetStatus(codes.Error, "invalid event_id")
		return nil, domain.ErrInvalidEventID
	}

	span.SetAttributes(attribute.String("event_id", eventID.String()))

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	reservations, err := s.reservations.GetProductReservations(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	allocations, err := s.reservations.GetAssetAllocations(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := &dto.PlanEventResponse{
		EventID:    eventID.String(),
		Status:     string(event.Status),
		GuestCount: event.GuestCount,
		Products:   make([]dto.PlannedProduct, 0, len(reservations)),
		Assets:     make([]dto.PlannedAsset, 0, len(allocations)),
	}
	if event.PlannedAt != nil {
		resp.PlannedAt = *event.PlannedAt
	}

	for _, res := range reservations {
		line := dto.PlannedProduct{
			ProductID: res.ProductID.String(),
			Required:  res.Quantity.Add(res.Shortfall),
			Reserved:  res.Quantity,
			Shortfall: res.Shortfall,
		}
		if product, err := s.products.GetByID(ctx, res.ProductID); err == nil {
			line.Name = product.Name
			line.Unit = product.Unit
		}
		resp.Products = append(resp.Products, line)
		if res.Shortfall.IsPositive() {
			resp.Purchase = append(resp.Purchase, dto.PurchaseItem{
				ProductID: res.ProductID.String(),
				Name:      line.Name,
				Unit:      line.Unit,
				Shortfall: res.Shortfall,
			})
		}
	}

	for _, alloc := range allocations {
		line := dto.PlannedAsset{
			AssetID:   alloc.AssetID.String(),
			Required:  alloc.Quantity + alloc.Shortfall,
			Allocated: alloc.Quantity,
			Shortfall: alloc.Shortfall,
		}
		if asset, err := s.assets.GetByID(ctx, alloc.AssetID); err == nil {
			line.Name = asset.Name
		}
		resp.Assets = append(resp.Assets, line)
	}

	span.SetStatus(codes.Ok, "")
	return resp, nil
}

// SettleEvent applies the post-event report in one transaction:
// consumed stock is deducted and ledgered, unused reservations return,
// surviving asset units go back to their pools and losses shrink the
// pool totals. The event ends CLOSED.
func (s *planningService) SettleEvent(ctx context.Context, eventID uuid.UUID, req *dto.SettleEventRequest) (*dto.SettleEventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.planning.settle_event")
	defer span.End()

	if eventID == uuid.Nil {
		span.SetStatus(codes.Error, "invalid event_id")
		return nil, domain.ErrInvalidEventID
	}

	span.SetAttributes(attribute.String("event_id", eventID.String()))

	leftovers := make(map[uuid.UUID]decimal.Decimal)
	losses := make(map[uuid.UUID]int)
	if req != nil {
		for _, entry := range req.Products {
			id, err := uuid.Parse(entry.ProductID)
			if err != nil {
				return nil, domain.ErrInvalidProductID
			}
			if entry.Leftover.IsNegative() {
				return nil, domain.ErrNegativeLeftover
			}
			leftovers[id] = entry.Leftover
		}
		for _, entry := range req.Assets {
			id, err := uuid.Parse(entry.AssetID)
			if err != nil {
				return nil, domain.ErrInvalidAssetID
			}
			if entry.Lost < 0 {
				return nil, domain.ErrNegativeLoss
			}
			losses[id] = entry.Lost
		}
	}

	var (
		resp            *dto.SettleEventResponse
		settledProducts int
		settledAssets   int
	)
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.PlanningTx) error {
		event, err := tx.LockEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if !event.CanSettle() {
			return domain.ErrEventNotSettleable
		}

		reservations, err := tx.GetProductReservations(ctx, eventID)
		if err != nil {
			return err
		}
		allocations, err := tx.GetAssetAllocations(ctx, eventID)
		if err != nil {
			return err
		}

		productIDs := make([]uuid.UUID, 0, len(reservations))
		for _, res := range reservations {
			productIDs = append(productIDs, res.ProductID)
		}
		assetIDs := make([]uuid.UUID, 0, len(allocations))
		for _, alloc := range allocations {
			assetIDs = append(assetIDs, alloc.AssetID)
		}

		products, err := tx.LockProducts(ctx, productIDs)
		if err != nil {
			return err
		}
		assets, err := tx.LockAssets(ctx, assetIDs)
		if err != nil {
			return err
		}

		now := time.Now()
		for _, res := range reservations {
			leftover, ok := leftovers[res.ProductID]
			if !ok {
				leftover = decimal.Zero
			}
			if leftover.GreaterThan(res.Quantity) {
				return fmt.Errorf("product %s: %w", res.ProductID, domain.ErrLeftoverExceedsReserved)
			}
			consumed := res.Quantity.Sub(leftover)

			product, ok := products[res.ProductID]
			if !ok {
				return fmt.Errorf("reserved product %s: %w", res.ProductID, domain.ErrProductNotFound)
			}

			product.Stock = product.Stock.Sub(consumed)
			if err := tx.SetProductStock(ctx, product.ID, product.Stock); err != nil {
				return err
			}
			if err := tx.FinalizeReservation(ctx, res.ID, consumed, leftover); err != nil {
				return err
			}

			evID := eventID
			if consumed.IsPositive() {
				movement := &domain.StockMovement{
					ID:        uuid.New(),
					ProductID: product.ID,
					EventID:   &evID,
					Kind:      domain.MovementConsumption,
					Quantity:  consumed,
					Note:      fmt.Sprintf("consumed by event %s", event.Name),
					CreatedAt: now,
				}
				if err := tx.InsertMovement(ctx, movement); err != nil {
					return err
				}
			}
			if leftover.IsPositive() {
				movement := &domain.StockMovement{
					ID:        uuid.New(),
					ProductID: product.ID,
					EventID:   &evID,
					Kind:      domain.MovementReturn,
					Quantity:  leftover,
					Note:      fmt.Sprintf("returned unused from event %s", event.Name),
					CreatedAt: now,
				}
				if err := tx.InsertMovement(ctx, movement); err != nil {
					return err
				}
			}
		}

		for _, alloc := range allocations {
			lost := losses[alloc.AssetID]
			if lost > alloc.Quantity {
				return fmt.Errorf("asset %s: %w", alloc.AssetID, domain.ErrLossExceedsAllocated)
			}
			returned := alloc.Quantity - lost

			asset, ok := assets[alloc.AssetID]
			if !ok {
				return fmt.Errorf("allocated asset %s: %w", alloc.AssetID, domain.ErrAssetNotFound)
			}

			asset.Total -= lost
			asset.Available += returned
			if err := tx.SetAssetCounts(ctx, asset.ID, asset.Total, asset.Available); err != nil {
				return err
			}
			if err := tx.FinalizeAllocation(ctx, alloc.ID, lost); err != nil {
				return err
			}
		}

		event.Status = domain.EventStatusClosed
		event.SettledAt = &now
		if err := tx.UpdateEvent(ctx, event); err != nil {
			return err
		}

		settledProducts = len(reservations)
		settledAssets = len(allocations)
		resp = &dto.SettleEventResponse{
			EventID:   eventID.String(),
			Status:    string(event.Status),
			SettledAt: now,
		}
		return nil
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.RecordSettlementFailure(ctx, eventID.String(), err.Error())
		return nil, err
	}

	if err := s.publisher.PublishEventSettled(ctx, eventID, resp); err != nil {
		span.RecordError(err)
	}

	metrics.RecordSettlement(ctx, eventID.String(), settledProducts, settledAssets)
	span.SetStatus(codes.Ok, "")
	return resp, nil
}

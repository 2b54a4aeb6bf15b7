package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vromao/catering-ops/internal/domain"
	"github.com/vromao/catering-ops/internal/dto"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newPlanningService(tx *MockPlanningTx) PlanningService {
	return NewPlanningService(
		&MockPlanningStore{Tx: tx},
		&MockReservationRepository{},
		&MockEventRepository{},
		&MockProductRepository{},
		&MockAssetRepository{},
		&MockEventPublisher{},
	)
}

func TestPlanningService_PlanEvent_FullStock(t *testing.T) {
	eventID := uuid.New()
	menuID := uuid.New()
	riceID := uuid.New()
	grillID := uuid.New()

	tx := &MockPlanningTx{
		LockEventFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
			return &domain.Event{
				ID:         eventID,
				MenuID:     &menuID,
				Name:       "garden wedding",
				GuestCount: 100,
				Status:     domain.EventStatusDraft,
			}, nil
		},
		GetMenuFunc: func(ctx context.Context, id uuid.UUID) (*domain.Menu, error) {
			return &domain.Menu{
				ID: menuID,
				Items: []domain.MenuItem{
					{MenuID: menuID, ProductID: riceID, PerGuest: dec("0.3")},
				},
				Assets: []domain.MenuAsset{
					{MenuID: menuID, AssetID: grillID, Mode: domain.AllocationPerEvent, Quantity: 2},
				},
			}, nil
		},
		LockProductsFunc: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
			return map[uuid.UUID]*domain.Product{
				riceID: {ID: riceID, Name: "rice", Unit: "kg", Stock: dec("50")},
			}, nil
		},
		LockAssetsFunc: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Asset, error) {
			return map[uuid.UUID]*domain.Asset{
				grillID: {ID: grillID, Name: "grill", Category: domain.AssetCategoryEquipment, Total: 2, Available: 2},
			}, nil
		},
	}

	var (
		savedReservations []*domain.ProductReservation
		savedAllocations  []*domain.AssetAllocation
		assetWrites       = map[uuid.UUID][2]int{}
		updatedEvent      *domain.Event
	)
	tx.ReplacePlanFunc = func(ctx context.Context, id uuid.UUID, reservations []*domain.ProductReservation, allocations []*domain.AssetAllocation) error {
		savedReservations = reservations
		savedAllocations = allocations
		return nil
	}
	tx.SetAssetCountsFunc = func(ctx context.Context, id uuid.UUID, total, available int) error {
		assetWrites[id] = [2]int{total, available}
		return nil
	}
	tx.UpdateEventFunc = func(ctx context.Context, event *domain.Event) error {
		updatedEvent = event
		return nil
	}

	resp, err := newPlanningService(tx).PlanEvent(context.Background(), eventID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.EventStatusPlanned), resp.Status)
	assert.Equal(t, 100, resp.GuestCount)
	assert.Empty(t, resp.Warnings)
	assert.Empty(t, resp.Purchase)

	require.Len(t, resp.Products, 1)
	assert.True(t, resp.Products[0].Required.Equal(dec("30")))
	assert.True(t, resp.Products[0].Reserved.Equal(dec("30")))
	assert.True(t, resp.Products[0].Shortfall.IsZero())

	require.Len(t, resp.Assets, 1)
	assert.Equal(t, 2, resp.Assets[0].Required)
	assert.Equal(t, 2, resp.Assets[0].Allocated)
	assert.Equal(t, 0, resp.Assets[0].Shortfall)

	// Reservation is soft: stock untouched, one row with the full amount
	require.Len(t, savedReservations, 1)
	assert.True(t, savedReservations[0].Quantity.Equal(dec("30")))

	// Allocation is hard: the pool is drained immediately
	require.Len(t, savedAllocations, 1)
	assert.Equal(t, 2, savedAllocations[0].Quantity)
	assert.Equal(t, [2]int{2, 0}, assetWrites[grillID])

	require.NotNil(t, updatedEvent)
	assert.Equal(t, domain.EventStatusPlanned, updatedEvent.Status)
	assert.NotNil(t, updatedEvent.PlannedAt)
}

func TestPlanningService_PlanEvent_Shortfall(t *testing.T) {
	eventID := uuid.New()
	menuID := uuid.New()
	riceID := uuid.New()

	var savedReservations []*domain.ProductReservation
	tx := &MockPlanningTx{
		LockEventFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
			return &domain.Event{ID: eventID, MenuID: &menuID, GuestCount: 100, Status: domain.EventStatusDraft}, nil
		},
		GetMenuFunc: func(ctx context.Context, id uuid.UUID) (*domain.Menu, error) {
			return &domain.Menu{
				ID:    menuID,
				Items: []domain.MenuItem{{MenuID: menuID, ProductID: riceID, PerGuest: dec("0.3")}},
			}, nil
		},
		LockProductsFunc: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
			return map[uuid.UUID]*domain.Product{
				riceID: {ID: riceID, Name: "rice", Unit: "kg", Stock: dec("10")},
			}, nil
		},
		ReplacePlanFunc: func(ctx context.Context, id uuid.UUID, reservations []*domain.ProductReservation, allocations []*domain.AssetAllocation) error {
			savedReservations = reservations
			return nil
		},
	}

	resp, err := newPlanningService(tx).PlanEvent(context.Background(), eventID)
	require.NoError(t, err)

	// required 30 against stock 10: reserve what exists, flag the rest
	require.Len(t, resp.Products, 1)
	assert.True(t, resp.Products[0].Reserved.Equal(dec("10")))
	assert.True(t, resp.Products[0].Shortfall.Equal(dec("20")))

	require.Len(t, resp.Purchase, 1)
	assert.Equal(t, riceID.String(), resp.Purchase[0].ProductID)
	assert.True(t, resp.Purchase[0].Shortfall.Equal(dec("20")))
	assert.Len(t, resp.Warnings, 1)

	require.Len(t, savedReservations, 1)
	assert.True(t, savedReservations[0].Quantity.Equal(dec("10")))
}

func TestPlanningService_PlanEvent_ReplanRestoresAvailability(t *testing.T) {
	eventID := uuid.New()
	menuID := uuid.New()
	tableID := uuid.New()
	oldAllocID := uuid.New()

	// The pool was drained by the first plan; the replan must hand the
	// old allocation back before taking the new one.
	assetWrites := map[uuid.UUID][2]int{}
	var savedAllocations []*domain.AssetAllocation
	tx := &MockPlanningTx{
		LockEventFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
			plannedAt := time.Now().Add(-time.Hour)
			return &domain.Event{ID: eventID, MenuID: &menuID, GuestCount: 10, Status: domain.EventStatusPlanned, PlannedAt: &plannedAt}, nil
		},
		GetMenuFunc: func(ctx context.Context, id uuid.UUID) (*domain.Menu, error) {
			return &domain.Menu{
				ID:     menuID,
				Assets: []domain.MenuAsset{{MenuID: menuID, AssetID: tableID, Mode: domain.AllocationPerEvent, Quantity: 5}},
			}, nil
		},
		GetAssetAllocationsFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.AssetAllocation, error) {
			return []*domain.AssetAllocation{
				{ID: oldAllocID, EventID: eventID, AssetID: tableID, Quantity: 5},
			}, nil
		},
		LockAssetsFunc: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Asset, error) {
			return map[uuid.UUID]*domain.Asset{
				tableID: {ID: tableID, Name: "table", Total: 5, Available: 0},
			}, nil
		},
		ReplacePlanFunc: func(ctx context.Context, id uuid.UUID, reservations []*domain.ProductReservation, allocations []*domain.AssetAllocation) error {
			savedAllocations = allocations
			return nil
		},
		SetAssetCountsFunc: func(ctx context.Context, id uuid.UUID, total, available int) error {
			assetWrites[id] = [2]int{total, available}
			return nil
		},
	}

	resp, err := newPlanningService(tx).PlanEvent(context.Background(), eventID)
	require.NoError(t, err)

	// Same requirement, same pool: the replan allocates the same five
	// units and availability ends where it started.
	require.Len(t, savedAllocations, 1)
	assert.Equal(t, 5, savedAllocations[0].Quantity)
	assert.Equal(t, 0, savedAllocations[0].Shortfall)
	assert.Equal(t, [2]int{5, 0}, assetWrites[tableID])
	assert.Empty(t, resp.Warnings)
}

func TestPlanningService_PlanEvent_Guards(t *testing.T) {
	eventID := uuid.New()
	menuID := uuid.New()

	tests := []struct {
		name    string
		event   *domain.Event
		wantErr error
	}{
		{
			name:    "closed event cannot be replanned",
			event:   &domain.Event{ID: eventID, MenuID: &menuID, GuestCount: 10, Status: domain.EventStatusClosed},
			wantErr: domain.ErrEventNotPlannable,
		},
		{
			name:    "event without menu",
			event:   &domain.Event{ID: eventID, GuestCount: 10, Status: domain.EventStatusDraft},
			wantErr: domain.ErrEventWithoutMenu,
		},
		{
			name:    "event without guests",
			event:   &domain.Event{ID: eventID, MenuID: &menuID, GuestCount: 0, Status: domain.EventStatusDraft},
			wantErr: domain.ErrEventWithoutGuests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &MockPlanningTx{
				LockEventFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
					return tt.event, nil
				},
			}
			_, err := newPlanningService(tx).PlanEvent(context.Background(), eventID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPlanningService_PlanEvent_NotFound(t *testing.T) {
	_, err := newPlanningService(&MockPlanningTx{}).PlanEvent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestPlanningService_SettleEvent(t *testing.T) {
	eventID := uuid.New()
	riceID := uuid.New()
	grillID := uuid.New()
	resID := uuid.New()
	allocID := uuid.New()

	var (
		stockWrites  = map[uuid.UUID]decimal.Decimal{}
		assetWrites  = map[uuid.UUID][2]int{}
		movements    []*domain.StockMovement
		finConsumed  decimal.Decimal
		finReturned  decimal.Decimal
		finLost      = -1
		updatedEvent *domain.Event
	)

	tx := &MockPlanningTx{
		LockEventFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
			return &domain.Event{ID: eventID, Name: "garden wedding", Status: domain.EventStatusPlanned}, nil
		},
		GetProductReservationsFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.ProductReservation, error) {
			return []*domain.ProductReservation{
				{ID: resID, EventID: eventID, ProductID: riceID, Quantity: dec("30")},
			}, nil
		},
		GetAssetAllocationsFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.AssetAllocation, error) {
			return []*domain.AssetAllocation{
				{ID: allocID, EventID: eventID, AssetID: grillID, Quantity: 2},
			}, nil
		},
		LockProductsFunc: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
			return map[uuid.UUID]*domain.Product{
				riceID: {ID: riceID, Name: "rice", Unit: "kg", Stock: dec("100")},
			}, nil
		},
		LockAssetsFunc: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Asset, error) {
			return map[uuid.UUID]*domain.Asset{
				grillID: {ID: grillID, Name: "grill", Total: 10, Available: 3},
			}, nil
		},
		SetProductStockFunc: func(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error {
			stockWrites[id] = stock
			return nil
		},
		SetAssetCountsFunc: func(ctx context.Context, id uuid.UUID, total, available int) error {
			assetWrites[id] = [2]int{total, available}
			return nil
		},
		InsertMovementFunc: func(ctx context.Context, movement *domain.StockMovement) error {
			movements = append(movements, movement)
			return nil
		},
		FinalizeReservationFunc: func(ctx context.Context, id uuid.UUID, consumed, returned decimal.Decimal) error {
			finConsumed, finReturned = consumed, returned
			return nil
		},
		FinalizeAllocationFunc: func(ctx context.Context, id uuid.UUID, lost int) error {
			finLost = lost
			return nil
		},
		UpdateEventFunc: func(ctx context.Context, event *domain.Event) error {
			updatedEvent = event
			return nil
		},
	}

	req := &dto.SettleEventRequest{
		Products: []dto.ProductReturnEntry{{ProductID: riceID.String(), Leftover: dec("5")}},
		Assets:   []dto.AssetLossEntry{{AssetID: grillID.String(), Lost: 1}},
	}

	resp, err := newPlanningService(tx).SettleEvent(context.Background(), eventID, req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.EventStatusClosed), resp.Status)

	// consumed = 30 reserved - 5 leftover; stock 100 -> 75
	assert.True(t, stockWrites[riceID].Equal(dec("75")))
	assert.True(t, finConsumed.Equal(dec("25")))
	assert.True(t, finReturned.Equal(dec("5")))

	// conservation: consumed + returned == reserved
	assert.True(t, finConsumed.Add(finReturned).Equal(dec("30")))

	require.Len(t, movements, 2)
	assert.Equal(t, domain.MovementConsumption, movements[0].Kind)
	assert.True(t, movements[0].Quantity.Equal(dec("25")))
	assert.Equal(t, domain.MovementReturn, movements[1].Kind)
	assert.True(t, movements[1].Quantity.Equal(dec("5")))

	// one of two grills lost: total 10 -> 9, available 3 + 1 returned
	assert.Equal(t, [2]int{9, 4}, assetWrites[grillID])
	assert.Equal(t, 1, finLost)

	require.NotNil(t, updatedEvent)
	assert.Equal(t, domain.EventStatusClosed, updatedEvent.Status)
	assert.NotNil(t, updatedEvent.SettledAt)
}

func TestPlanningService_SettleEvent_DefaultsToFullConsumption(t *testing.T) {
	eventID := uuid.New()
	riceID := uuid.New()

	var movements []*domain.StockMovement
	stockWrites := map[uuid.UUID]decimal.Decimal{}
	tx := &MockPlanningTx{
		LockEventFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
			return &domain.Event{ID: eventID, Status: domain.EventStatusInProgress}, nil
		},
		GetProductReservationsFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.ProductReservation, error) {
			return []*domain.ProductReservation{
				{ID: uuid.New(), EventID: eventID, ProductID: riceID, Quantity: dec("12")},
			}, nil
		},
		LockProductsFunc: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
			return map[uuid.UUID]*domain.Product{
				riceID: {ID: riceID, Name: "rice", Stock: dec("12")},
			}, nil
		},
		SetProductStockFunc: func(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error {
			stockWrites[id] = stock
			return nil
		},
		InsertMovementFunc: func(ctx context.Context, movement *domain.StockMovement) error {
			movements = append(movements, movement)
			return nil
		},
	}

	// no report: everything reserved counts as consumed, no RETURN line
	_, err := newPlanningService(tx).SettleEvent(context.Background(), eventID, nil)
	require.NoError(t, err)

	assert.True(t, stockWrites[riceID].Equal(dec("0")))
	require.Len(t, movements, 1)
	assert.Equal(t, domain.MovementConsumption, movements[0].Kind)
}

// Reservations are soft holds, so overlapping events can reserve the same
// stock and the later settlement legitimately drives it negative.
func TestPlanningService_SettleEvent_DrivesStockNegative(t *testing.T) {
	eventID := uuid.New()
	riceID := uuid.New()

	stockWrites := map[uuid.UUID]decimal.Decimal{}
	var updatedEvent *domain.Event
	tx := &MockPlanningTx{
		LockEventFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
			return &domain.Event{ID: eventID, Status: domain.EventStatusPlanned}, nil
		},
		GetProductReservationsFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.ProductReservation, error) {
			return []*domain.ProductReservation{
				{ID: uuid.New(), EventID: eventID, ProductID: riceID, Quantity: dec("10")},
			}, nil
		},
		LockProductsFunc: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
			// another event already consumed most of the shared stock
			return map[uuid.UUID]*domain.Product{
				riceID: {ID: riceID, Name: "rice", Stock: dec("4")},
			}, nil
		},
		SetProductStockFunc: func(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error {
			stockWrites[id] = stock
			return nil
		},
		UpdateEventFunc: func(ctx context.Context, event *domain.Event) error {
			updatedEvent = event
			return nil
		},
	}

	resp, err := newPlanningService(tx).SettleEvent(context.Background(), eventID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.EventStatusClosed), resp.Status)

	assert.True(t, stockWrites[riceID].Equal(dec("-6")))
	require.NotNil(t, updatedEvent)
	assert.Equal(t, domain.EventStatusClosed, updatedEvent.Status)
}

func TestPlanningService_SettleEvent_RejectsOutOfRangeReports(t *testing.T) {
	eventID := uuid.New()
	riceID := uuid.New()
	grillID := uuid.New()

	newTx := func() *MockPlanningTx {
		return &MockPlanningTx{
			LockEventFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
				return &domain.Event{ID: eventID, Status: domain.EventStatusPlanned}, nil
			},
			GetProductReservationsFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.ProductReservation, error) {
				return []*domain.ProductReservation{
					{ID: uuid.New(), EventID: eventID, ProductID: riceID, Quantity: dec("10")},
				}, nil
			},
			GetAssetAllocationsFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.AssetAllocation, error) {
				return []*domain.AssetAllocation{
					{ID: uuid.New(), EventID: eventID, AssetID: grillID, Quantity: 2},
				}, nil
			},
			LockProductsFunc: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
				return map[uuid.UUID]*domain.Product{riceID: {ID: riceID, Stock: dec("10")}}, nil
			},
			LockAssetsFunc: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Asset, error) {
				return map[uuid.UUID]*domain.Asset{grillID: {ID: grillID, Total: 5, Available: 3}}, nil
			},
		}
	}

	tests := []struct {
		name    string
		req     *dto.SettleEventRequest
		wantErr error
	}{
		{
			name: "leftover above reserved",
			req: &dto.SettleEventRequest{
				Products: []dto.ProductReturnEntry{{ProductID: riceID.String(), Leftover: dec("11")}},
			},
			wantErr: domain.ErrLeftoverExceedsReserved,
		},
		{
			name: "negative leftover",
			req: &dto.SettleEventRequest{
				Products: []dto.ProductReturnEntry{{ProductID: riceID.String(), Leftover: dec("-1")}},
			},
			wantErr: domain.ErrNegativeLeftover,
		},
		{
			name: "loss above allocated",
			req: &dto.SettleEventRequest{
				Assets: []dto.AssetLossEntry{{AssetID: grillID.String(), Lost: 3}},
			},
			wantErr: domain.ErrLossExceedsAllocated,
		},
		{
			name: "negative loss",
			req: &dto.SettleEventRequest{
				Assets: []dto.AssetLossEntry{{AssetID: grillID.String(), Lost: -1}},
			},
			wantErr: domain.ErrNegativeLoss,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newPlanningService(newTx()).SettleEvent(context.Background(), eventID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPlanningService_SettleEvent_IgnoresUnknownReportEntries(t *testing.T) {
	eventID := uuid.New()
	riceID := uuid.New()

	tx := &MockPlanningTx{
		LockEventFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
			return &domain.Event{ID: eventID, Status: domain.EventStatusPlanned}, nil
		},
		GetProductReservationsFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.ProductReservation, error) {
			return []*domain.ProductReservation{
				{ID: uuid.New(), EventID: eventID, ProductID: riceID, Quantity: dec("10")},
			}, nil
		},
		LockProductsFunc: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
			return map[uuid.UUID]*domain.Product{riceID: {ID: riceID, Stock: dec("10")}}, nil
		},
	}

	// a leftover for a product the event never reserved is ignored
	req := &dto.SettleEventRequest{
		Products: []dto.ProductReturnEntry{{ProductID: uuid.New().String(), Leftover: dec("4")}},
	}

	resp, err := newPlanningService(tx).SettleEvent(context.Background(), eventID, req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.EventStatusClosed), resp.Status)
}

func TestPlanningService_SettleEvent_Guards(t *testing.T) {
	eventID := uuid.New()

	tx := &MockPlanningTx{
		LockEventFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
			return &domain.Event{ID: eventID, Status: domain.EventStatusDraft}, nil
		},
	}
	_, err := newPlanningService(tx).SettleEvent(context.Background(), eventID, nil)
	assert.ErrorIs(t, err, domain.ErrEventNotSettleable)

	_, err = newPlanningService(&MockPlanningTx{}).SettleEvent(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestPlanningService_GetPlan(t *testing.T) {
	eventID := uuid.New()
	riceID := uuid.New()
	grillID := uuid.New()
	plannedAt := time.Now().Add(-time.Hour)

	svc := NewPlanningService(
		&MockPlanningStore{},
		&MockReservationRepository{
			GetProductReservationsFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.ProductReservation, error) {
				return []*domain.ProductReservation{
					{ID: uuid.New(), EventID: eventID, ProductID: riceID, Quantity: dec("10"), Shortfall: dec("20")},
				}, nil
			},
			GetAssetAllocationsFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.AssetAllocation, error) {
				return []*domain.AssetAllocation{
					{ID: uuid.New(), EventID: eventID, AssetID: grillID, Quantity: 2, Shortfall: 1},
				}, nil
			},
		},
		&MockEventRepository{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
				return &domain.Event{ID: eventID, GuestCount: 100, Status: domain.EventStatusPlanned, PlannedAt: &plannedAt}, nil
			},
		},
		&MockProductRepository{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
				return &domain.Product{ID: riceID, Name: "rice", Unit: "kg"}, nil
			},
		},
		&MockAssetRepository{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
				return &domain.Asset{ID: grillID, Name: "grill"}, nil
			},
		},
		&MockEventPublisher{},
	)

	resp, err := svc.GetPlan(context.Background(), eventID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.EventStatusPlanned), resp.Status)
	assert.Equal(t, 100, resp.GuestCount)

	require.Len(t, resp.Products, 1)
	assert.Equal(t, "rice", resp.Products[0].Name)
	assert.True(t, resp.Products[0].Required.Equal(dec("30")))
	assert.True(t, resp.Products[0].Reserved.Equal(dec("10")))

	require.Len(t, resp.Assets, 1)
	assert.Equal(t, "grill", resp.Assets[0].Name)
	assert.Equal(t, 3, resp.Assets[0].Required)
	assert.Equal(t, 2, resp.Assets[0].Allocated)

	require.Len(t, resp.Purchase, 1)
	assert.True(t, resp.Purchase[0].Shortfall.Equal(dec("20")))
}

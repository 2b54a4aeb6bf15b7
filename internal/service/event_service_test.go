package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vromao/catering-ops/internal/domain"
	"github.com/vromao/catering-ops/internal/dto"
	"github.com/vromao/catering-ops/internal/repository"
)

func strPtr(s string) *string { return &s }

func newEventService(events *MockEventRepository, clients *MockClientRepository, menus *MockMenuRepository) EventService {
	if events == nil {
		events = &MockEventRepository{}
	}
	if clients == nil {
		clients = &MockClientRepository{}
	}
	if menus == nil {
		menus = &MockMenuRepository{}
	}
	return NewEventService(events, clients, menus, &MockMovementRepository{}, &MockPlanningStore{})
}

func TestEventService_CreateEvent(t *testing.T) {
	clientID := uuid.New()
	menuID := uuid.New()

	clients := &MockClientRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
			return &domain.Client{ID: id, Name: "acme"}, nil
		},
	}
	menus := &MockMenuRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Menu, error) {
			return &domain.Menu{ID: id, Name: "buffet"}, nil
		},
	}
	var created *domain.Event
	events := &MockEventRepository{
		CreateFunc: func(ctx context.Context, event *domain.Event) error {
			created = event
			return nil
		},
	}

	svc := newEventService(events, clients, menus)

	resp, err := svc.CreateEvent(context.Background(), &dto.CreateEventRequest{
		ClientID:   clientID.String(),
		MenuID:     menuID.String(),
		Name:       "garden wedding",
		GuestCount: 100,
		StartsAt:   time.Now().Add(24 * time.Hour),
		EndsAt:     time.Now().Add(30 * time.Hour),
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, string(domain.EventStatusDraft), resp.Status)
	assert.Equal(t, menuID.String(), resp.MenuID)
	assert.Equal(t, 100, resp.GuestCount)
}

func TestEventService_CreateEvent_UnknownClient(t *testing.T) {
	svc := newEventService(nil, nil, nil)

	_, err := svc.CreateEvent(context.Background(), &dto.CreateEventRequest{
		ClientID: uuid.New().String(),
		Name:     "garden wedding",
	})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestEventService_UpdateEvent_StatusTransitions(t *testing.T) {
	clientID := uuid.New()

	tests := []struct {
		name    string
		current domain.EventStatus
		target  string
		wantErr error
	}{
		{"planned can start", domain.EventStatusPlanned, "IN_PROGRESS", nil},
		{"draft can cancel", domain.EventStatusDraft, "CANCELED", nil},
		{"in progress can cancel", domain.EventStatusInProgress, "CANCELED", nil},
		{"closed is terminal", domain.EventStatusClosed, "CANCELED", domain.ErrInvalidTransition},
		{"draft cannot start", domain.EventStatusDraft, "IN_PROGRESS", domain.ErrInvalidTransition},
		{"planned is owned by planning", domain.EventStatusDraft, "PLANNED", domain.ErrInvalidTransition},
		{"closed is owned by settlement", domain.EventStatusInProgress, "CLOSED", domain.ErrInvalidTransition},
		{"unknown status", domain.EventStatusDraft, "PAUSED", domain.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := &MockEventRepository{
				GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
					return &domain.Event{ID: id, ClientID: clientID, Name: "x", Status: tt.current}, nil
				},
			}
			svc := newEventService(events, nil, nil)

			resp, err := svc.UpdateEvent(context.Background(), uuid.New(), &dto.UpdateEventRequest{
				Status: strPtr(tt.target),
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, resp.Status)
		})
	}
}

func TestEventService_UpdateEvent_ClearsMenu(t *testing.T) {
	clientID := uuid.New()
	menuID := uuid.New()

	var updated *domain.Event
	events := &MockEventRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
			return &domain.Event{ID: id, ClientID: clientID, MenuID: &menuID, Name: "x", Status: domain.EventStatusDraft}, nil
		},
		UpdateFunc: func(ctx context.Context, event *domain.Event) error {
			updated = event
			return nil
		},
	}
	svc := newEventService(events, nil, nil)

	resp, err := svc.UpdateEvent(context.Background(), uuid.New(), &dto.UpdateEventRequest{
		MenuID: strPtr(""),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Nil(t, updated.MenuID)
	assert.Empty(t, resp.MenuID)
}

func TestEventService_ListEvents_StatusFilter(t *testing.T) {
	var gotFilter *repository.EventFilter
	events := &MockEventRepository{
		ListFunc: func(ctx context.Context, filter *repository.EventFilter, limit, offset int) ([]*domain.Event, error) {
			gotFilter = filter
			return []*domain.Event{}, nil
		},
	}
	svc := newEventService(events, nil, nil)

	_, err := svc.ListEvents(context.Background(), nil, "PLANNED", 1, 20)
	require.NoError(t, err)
	require.NotNil(t, gotFilter)
	assert.Equal(t, domain.EventStatusPlanned, gotFilter.Status)

	_, err = svc.ListEvents(context.Background(), nil, "BOOKED", 1, 20)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestEventService_ListEventMovements(t *testing.T) {
	eventID := uuid.New()
	events := &MockEventRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
			return &domain.Event{ID: id, Status: domain.EventStatusClosed}, nil
		},
	}
	movements := &MockMovementRepository{
		ListByEventFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.StockMovement, error) {
			return []*domain.StockMovement{
				{ID: uuid.New(), ProductID: uuid.New(), EventID: &eventID, Kind: domain.MovementConsumption, Quantity: dec("25")},
				{ID: uuid.New(), ProductID: uuid.New(), EventID: &eventID, Kind: domain.MovementReturn, Quantity: dec("5")},
			}, nil
		},
	}
	svc := NewEventService(events, &MockClientRepository{}, &MockMenuRepository{}, movements, &MockPlanningStore{})

	out, err := svc.ListEventMovements(context.Background(), eventID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, string(domain.MovementConsumption), out[0].Kind)
}

// Deleting an event with a live plan must hand the allocated assets back
// to their pools before the rows cascade away.
func TestEventService_DeleteEvent_ReleasesLiveAllocations(t *testing.T) {
	eventID := uuid.New()
	grillID := uuid.New()
	tentID := uuid.New()
	lost := 1

	assetWrites := map[uuid.UUID][2]int{}
	deleted := false
	tx := &MockPlanningTx{
		LockEventFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
			return &domain.Event{ID: eventID, Status: domain.EventStatusPlanned}, nil
		},
		GetAssetAllocationsFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.AssetAllocation, error) {
			return []*domain.AssetAllocation{
				// live hold: must be returned to the pool
				{ID: uuid.New(), EventID: eventID, AssetID: grillID, Quantity: 2},
				// finalized at settlement: already returned, must not double-count
				{ID: uuid.New(), EventID: eventID, AssetID: tentID, Quantity: 3, Lost: &lost},
			}, nil
		},
		LockAssetsFunc: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Asset, error) {
			require.Equal(t, []uuid.UUID{grillID}, ids)
			return map[uuid.UUID]*domain.Asset{
				grillID: {ID: grillID, Name: "grill", Total: 10, Available: 3},
			}, nil
		},
		SetAssetCountsFunc: func(ctx context.Context, id uuid.UUID, total, available int) error {
			assetWrites[id] = [2]int{total, available}
			return nil
		},
		DeleteEventFunc: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	svc := NewEventService(&MockEventRepository{}, &MockClientRepository{}, &MockMenuRepository{},
		&MockMovementRepository{}, &MockPlanningStore{Tx: tx})

	err := svc.DeleteEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// grill pool: available 3 + 2 handed back, total untouched
	assert.Equal(t, [2]int{10, 5}, assetWrites[grillID])
	_, touched := assetWrites[tentID]
	assert.False(t, touched)
}

func TestEventService_DeleteEvent_NotFound(t *testing.T) {
	tx := &MockPlanningTx{
		LockEventFunc: func(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
			return nil, domain.ErrEventNotFound
		},
	}
	svc := NewEventService(&MockEventRepository{}, &MockClientRepository{}, &MockMenuRepository{},
		&MockMovementRepository{}, &MockPlanningStore{Tx: tx})

	err := svc.DeleteEvent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

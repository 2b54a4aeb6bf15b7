package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vromao/catering-ops/internal/domain"
	"github.com/vromao/catering-ops/internal/dto"
	"github.com/vromao/catering-ops/internal/repository"
	"github.com/vromao/catering-ops/pkg/telemetry"
)

// EventService defines the interface for event lifecycle management
type EventService interface {
	// CreateEvent creates a new event in DRAFT status
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	// GetEvent retrieves an event by ID
	GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error)
	// ListEvents lists events with optional filters
	ListEvents(ctx context.Context, clientID *uuid.UUID, status string, page, pageSize int) ([]*dto.EventResponse, error)
	// UpdateEvent applies a partial event update, enforcing status
	// transition rules
	UpdateEvent(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	// ListEventMovements lists the stock movements an event generated
	ListEventMovements(ctx context.Context, id uuid.UUID) ([]*dto.MovementResponse, error)
	// DeleteEvent deletes an event
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

// eventService implements EventService
type eventService struct {
	events    repository.EventRepository
	clients   repository.ClientRepository
	menus     repository.MenuRepository
	movements repository.MovementRepository
	store     repository.PlanningStore
}

// NewEventService creates a new event service
func NewEventService(
	events repository.EventRepository,
	clients repository.ClientRepository,
	menus repository.MenuRepository,
	movements repository.MovementRepository,
	store repository.PlanningStore,
) EventService {
	return &eventService{
		events:    events,
		clients:   clients,
		menus:     menus,
		movements: movements,
		store:     store,
	}
}

// CreateEvent creates a new event in DRAFT status
func (s *eventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.create")
	defer span.End()

	if req == nil || req.Name == "" {
		span.SetStatus(codes.Error, "invalid event")
		return nil, domain.ErrInvalidEventID
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		span.SetStatus(codes.Error, "invalid client_id")
		return nil, domain.ErrInvalidClientID
	}
	if req.GuestCount < 0 {
		span.SetStatus(codes.Error, "invalid guest_count")
		return nil, domain.ErrInvalidGuestCount
	}

	span.SetAttributes(attribute.String("client_id", clientID.String()))

	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var menuID *uuid.UUID
	if req.MenuID != "" {
		parsed, err := uuid.Parse(req.MenuID)
		if err != nil {
			span.SetStatus(codes.Error, "invalid menu_id")
			return nil, domain.ErrInvalidMenuID
		}
		if _, err := s.menus.GetByID(ctx, parsed); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		menuID = &parsed
	}

	now := time.Now()
	event := &domain.Event{
		ID:         uuid.New(),
		ClientID:   clientID,
		MenuID:     menuID,
		Name:       req.Name,
		Venue:      req.Venue,
		GuestCount: req.GuestCount,
		Status:     domain.EventStatusDraft,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.events.Create(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("event_id", event.ID.String()))
	span.SetStatus(codes.Ok, "")
	return dto.FromEvent(event), nil
}

// GetEvent retrieves an event by ID
func (s *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.get")
	defer span.End()

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.FromEvent(event), nil
}

// ListEvents lists events with optional client and status filters
func (s *eventService) ListEvents(ctx context.Context, clientID *uuid.UUID, status string, page, pageSize int) ([]*dto.EventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.list")
	defer span.End()

	filter := &repository.EventFilter{ClientID: clientID}
	if status != "" {
		st := domain.EventStatus(status)
		if !st.IsValid() {
			span.SetStatus(codes.Error, "invalid status filter")
			return nil, domain.ErrInvalidTransition
		}
		filter.Status = st
	}

	limit, offset := pageBounds(page, pageSize)
	events, err := s.events.List(ctx, filter, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]*dto.EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, dto.FromEvent(event))
	}

	span.SetAttributes(attribute.Int("count", len(out)))
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// UpdateEvent applies a partial event update. Status changes must
// follow the transition table; planning and settlement set their own
// statuses and are not reachable from here.
func (s *eventService) UpdateEvent(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.update")
	defer span.End()

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if req != nil {
		if req.MenuID != nil {
			if *req.MenuID == "" {
				event.MenuID = nil
			} else {
				parsed, err := uuid.Parse(*req.MenuID)
				if err != nil {
					span.SetStatus(codes.Error, "invalid menu_id")
					return nil, domain.ErrInvalidMenuID
				}
				if _, err := s.menus.GetByID(ctx, parsed); err != nil {
					span.RecordError(err)
					span.SetStatus(codes.Error, err.Error())
					return nil, err
				}
				event.MenuID = &parsed
			}
		}
		if req.Name != nil {
			event.Name = *req.Name
		}
		if req.Venue != nil {
			event.Venue = *req.Venue
		}
		if req.GuestCount != nil {
			if *req.GuestCount < 0 {
				span.SetStatus(codes.Error, "invalid guest_count")
				return nil, domain.ErrInvalidGuestCount
			}
			event.GuestCount = *req.GuestCount
		}
		if req.StartsAt != nil {
			event.StartsAt = *req.StartsAt
		}
		if req.EndsAt != nil {
			event.EndsAt = *req.EndsAt
		}
		if req.Status != nil {
			target := domain.EventStatus(*req.Status)
			if !target.IsValid() {
				span.SetStatus(codes.Error, "unknown status")
				return nil, domain.ErrInvalidTransition
			}
			// PLANNED and CLOSED are owned by planning and settlement
			if target == domain.EventStatusPlanned || target == domain.EventStatusClosed {
				span.SetStatus(codes.Error, "status owned by planning")
				return nil, domain.ErrInvalidTransition
			}
			if target != event.Status {
				if !event.Status.CanTransition(target) {
					span.SetStatus(codes.Error, "illegal transition")
					return nil, domain.ErrInvalidTransition
				}
				event.Status = target
			}
		}
	}
	event.UpdatedAt = time.Now()

	if err := s.events.Update(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.FromEvent(event), nil
}

// ListEventMovements lists the stock movements an event generated
func (s *eventService) ListEventMovements(ctx context.Context, id uuid.UUID) ([]*dto.MovementResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.list_movements")
	defer span.End()

	if _, err := s.events.GetByID(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	movements, err := s.movements.ListByEvent(ctx, id)
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

// DeleteEvent deletes an event
// DeleteEvent deletes an event and hands its live asset allocations back
// to the pools in the same transaction, so deleting a planned event never
// leaks availability.
func (s *eventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartSpan(ctx, "service.event.delete")
	defer span.End()

	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.PlanningTx) error {
		if _, err := tx.LockEvent(ctx, id); err != nil {
			return err
		}

		allocations, err := tx.GetAssetAllocations(ctx, id)
		if err != nil {
			return err
		}
		// Settled allocations were already returned to the pool;
		// only unfinalized ones still hold availability.
		live := make([]*domain.AssetAllocation, 0, len(allocations))
		assetIDs := make([]uuid.UUID, 0, len(allocations))
		for _, alloc := range allocations {
			if alloc.Lost == nil {
				live = append(live, alloc)
				assetIDs = append(assetIDs, alloc.AssetID)
			}
		}

		if len(live) > 0 {
			assets, err := tx.LockAssets(ctx, assetIDs)
			if err != nil {
				return err
			}
			for _, alloc := range live {
				asset, ok := assets[alloc.AssetID]
				if !ok {
					continue
				}
				if err := tx.SetAssetCounts(ctx, asset.ID, asset.Total, asset.Available+alloc.Quantity); err != nil {
					return err
				}
			}
		}

		return tx.DeleteEvent(ctx, id)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

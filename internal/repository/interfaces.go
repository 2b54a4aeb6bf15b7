package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vromao/catering-ops/internal/domain"
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	// Create creates a new client
	Create(ctx context.Context, client *domain.Client) error
	// GetByID retrieves a client by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	// List lists clients with pagination
	List(ctx context.Context, limit, offset int) ([]*domain.Client, error)
	// Update updates a client
	Update(ctx context.Context, client *domain.Client) error
	// Delete deletes a client by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *domain.Product) error
	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	// List lists products with pagination
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
	// ListBelowMinimum lists products whose stock is under their alert threshold
	ListBelowMinimum(ctx context.Context) ([]*domain.Product, error)
	// Update updates a product's descriptive fields
	Update(ctx context.Context, product *domain.Product) error
	// AdjustStock applies a manual stock movement and records the ledger
	// line in the same transaction. Returns the product after the change.
	AdjustStock(ctx context.Context, productID uuid.UUID, kind domain.MovementKind, quantity decimal.Decimal, note string) (*domain.Product, error)
	// Delete deletes a product by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// AssetRepository defines the interface for asset pool data access
type AssetRepository interface {
	// Create creates a new asset pool
	Create(ctx context.Context, asset *domain.Asset) error
	// GetByID retrieves an asset pool by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error)
	// List lists asset pools with pagination
	List(ctx context.Context, limit, offset int) ([]*domain.Asset, error)
	// Update updates an asset pool's descriptive fields
	Update(ctx context.Context, asset *domain.Asset) error
	// Resize changes the pool's total, shifting availability by the same
	// delta. Fails when availability would leave the [0, total] range.
	Resize(ctx context.Context, id uuid.UUID, total int) (*domain.Asset, error)
	// Delete deletes an asset pool by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// MenuRepository defines the interface for menu template data access
type MenuRepository interface {
	// Create creates a new menu
	Create(ctx context.Context, menu *domain.Menu) error
	// GetByID retrieves a menu with its items and asset entries
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Menu, error)
	// List lists menus with pagination, without entries
	List(ctx context.Context, limit, offset int) ([]*domain.Menu, error)
	// AddItem attaches a product entry to a menu
	AddItem(ctx context.Context, item *domain.MenuItem) error
	// AddAsset attaches an asset entry to a menu
	AddAsset(ctx context.Context, entry *domain.MenuAsset) error
	// RemoveItem detaches a product entry from a menu
	RemoveItem(ctx context.Context, menuID, itemID uuid.UUID) error
	// RemoveAsset detaches an asset entry from a menu
	RemoveAsset(ctx context.Context, menuID, entryID uuid.UUID) error
	// Delete deletes a menu and its entries
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	// Create creates a new event
	Create(ctx context.Context, event *domain.Event) error
	// GetByID retrieves an event by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	// List lists events with optional status filter and pagination
	List(ctx context.Context, filter *EventFilter, limit, offset int) ([]*domain.Event, error)
	// Update updates an event
	Update(ctx context.Context, event *domain.Event) error
	// UpdateStatus updates only an event's status
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) error
}

// EventFilter contains filter options for listing events
type EventFilter struct {
	ClientID *uuid.UUID
	Status   domain.EventStatus
}

// MovementRepository defines read access to the stock movement ledger
type MovementRepository interface {
	// ListByProduct lists a product's movements, newest first
	ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*domain.StockMovement, error)
	// ListByEvent lists the movements a settled event generated
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.StockMovement, error)
}

// ReservationRepository defines read access to an event's current plan
type ReservationRepository interface {
	// GetProductReservations lists the event's product reservations
	GetProductReservations(ctx context.Context, eventID uuid.UUID) ([]*domain.ProductReservation, error)
	// GetAssetAllocations lists the event's asset allocations
	GetAssetAllocations(ctx context.Context, eventID uuid.UUID) ([]*domain.AssetAllocation, error)
}

// PlanningTx exposes the row-locked operations available inside a
// planning or settlement transaction. Lock order is fixed: the event
// row first, then products by ID, then assets by ID.
type PlanningTx interface {
	// LockEvent loads the event row under FOR UPDATE
	LockEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	// GetMenu loads a menu with its entries
	GetMenu(ctx context.Context, id uuid.UUID) (*domain.Menu, error)
	// LockProducts loads product rows under FOR UPDATE, ordered by ID
	LockProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error)
	// LockAssets loads asset rows under FOR UPDATE, ordered by ID
	LockAssets(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Asset, error)
	// GetProductReservations lists the event's current product reservations
	GetProductReservations(ctx context.Context, eventID uuid.UUID) ([]*domain.ProductReservation, error)
	// GetAssetAllocations lists the event's current asset allocations
	GetAssetAllocations(ctx context.Context, eventID uuid.UUID) ([]*domain.AssetAllocation, error)
	// ReplacePlan deletes the event's previous reservations and
	// allocations and inserts the new ones
	ReplacePlan(ctx context.Context, eventID uuid.UUID, reservations []*domain.ProductReservation, allocations []*domain.AssetAllocation) error
	// SetProductStock writes a product's new absolute stock
	SetProductStock(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error
	// SetAssetCounts writes an asset pool's new total and availability
	SetAssetCounts(ctx context.Context, id uuid.UUID, total, available int) error
	// FinalizeReservation writes the settled consumed and returned
	// quantities onto a reservation row
	FinalizeReservation(ctx context.Context, id uuid.UUID, consumed, returned decimal.Decimal) error
	// FinalizeAllocation writes the settled loss count onto an allocation row
	FinalizeAllocation(ctx context.Context, id uuid.UUID, lost int) error
	// InsertMovement appends a stock movement ledger line
	InsertMovement(ctx context.Context, movement *domain.StockMovement) error
	// UpdateEvent persists the event's status and timestamps
	UpdateEvent(ctx context.Context, event *domain.Event) error
	// DeleteEvent removes the event row; plan rows go with it
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

// PlanningStore runs planning and settlement work in one database
// transaction. The function's error aborts the transaction.
type PlanningStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx PlanningTx) error) error
}

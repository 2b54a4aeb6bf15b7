package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vromao/catering-ops/internal/domain"
	"github.com/vromao/catering-ops/internal/repository"
)

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	CreateFunc  func(ctx context.Context, client *domain.Client) error
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Client, error)
	UpdateFunc  func(ctx context.Context, client *domain.Client) error
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *MockClientRepository) Create(ctx context.Context, client *domain.Client) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, client)
	}
	return nil
}

func (m *MockClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrClientNotFound
}

func (m *MockClientRepository) List(ctx context.Context, limit, offset int) ([]*domain.Client, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*domain.Client{}, nil
}

func (m *MockClientRepository) Update(ctx context.Context, client *domain.Client) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, client)
	}
	return nil
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	CreateFunc           func(ctx context.Context, product *domain.Product) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Product, error)
	ListBelowMinimumFunc func(ctx context.Context) ([]*domain.Product, error)
	UpdateFunc           func(ctx context.Context, product *domain.Product) error
	AdjustStockFunc      func(ctx context.Context, productID uuid.UUID, kind domain.MovementKind, quantity decimal.Decimal, note string) (*domain.Product, error)
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*domain.Product{}, nil
}

func (m *MockProductRepository) ListBelowMinimum(ctx context.Context) ([]*domain.Product, error) {
	if m.ListBelowMinimumFunc != nil {
		return m.ListBelowMinimumFunc(ctx)
	}
	return []*domain.Product{}, nil
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, product)
	}
	return nil
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, productID uuid.UUID, kind domain.MovementKind, quantity decimal.Decimal, note string) (*domain.Product, error) {
	if m.AdjustStockFunc != nil {
		return m.AdjustStockFunc(ctx, productID, kind, quantity, note)
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockAssetRepository is a mock implementation of AssetRepository
type MockAssetRepository struct {
	CreateFunc  func(ctx context.Context, asset *domain.Asset) error
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Asset, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Asset, error)
	UpdateFunc  func(ctx context.Context, asset *domain.Asset) error
	ResizeFunc  func(ctx context.Context, id uuid.UUID, total int) (*domain.Asset, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, asset)
	}
	return nil
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrAssetNotFound
}

func (m *MockAssetRepository) List(ctx context.Context, limit, offset int) ([]*domain.Asset, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*domain.Asset{}, nil
}

func (m *MockAssetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, asset)
	}
	return nil
}

func (m *MockAssetRepository) Resize(ctx context.Context, id uuid.UUID, total int) (*domain.Asset, error) {
	if m.ResizeFunc != nil {
		return m.ResizeFunc(ctx, id, total)
	}
	return nil, domain.ErrAssetNotFound
}

func (m *MockAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockMenuRepository is a mock implementation of MenuRepository
type MockMenuRepository struct {
	CreateFunc      func(ctx context.Context, menu *domain.Menu) error
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Menu, error)
	ListFunc        func(ctx context.Context, limit, offset int) ([]*domain.Menu, error)
	AddItemFunc     func(ctx context.Context, item *domain.MenuItem) error
	AddAssetFunc    func(ctx context.Context, entry *domain.MenuAsset) error
	RemoveItemFunc  func(ctx context.Context, menuID, itemID uuid.UUID) error
	RemoveAssetFunc func(ctx context.Context, menuID, entryID uuid.UUID) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
}

func (m *MockMenuRepository) Create(ctx context.Context, menu *domain.Menu) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, menu)
	}
	return nil
}

func (m *MockMenuRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Menu, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrMenuNotFound
}

func (m *MockMenuRepository) List(ctx context.Context, limit, offset int) ([]*domain.Menu, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*domain.Menu{}, nil
}

func (m *MockMenuRepository) AddItem(ctx context.Context, item *domain.MenuItem) error {
	if m.AddItemFunc != nil {
		return m.AddItemFunc(ctx, item)
	}
	return nil
}

func (m *MockMenuRepository) AddAsset(ctx context.Context, entry *domain.MenuAsset) error {
	if m.AddAssetFunc != nil {
		return m.AddAssetFunc(ctx, entry)
	}
	return nil
}

func (m *MockMenuRepository) RemoveItem(ctx context.Context, menuID, itemID uuid.UUID) error {
	if m.RemoveItemFunc != nil {
		return m.RemoveItemFunc(ctx, menuID, itemID)
	}
	return nil
}

func (m *MockMenuRepository) RemoveAsset(ctx context.Context, menuID, entryID uuid.UUID) error {
	if m.RemoveAssetFunc != nil {
		return m.RemoveAssetFunc(ctx, menuID, entryID)
	}
	return nil
}

func (m *MockMenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	CreateFunc       func(ctx context.Context, event *domain.Event) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	ListFunc         func(ctx context.Context, filter *repository.EventFilter, limit, offset int) ([]*domain.Event, error)
	UpdateFunc       func(ctx context.Context, event *domain.Event) error
	UpdateStatusFunc func(ctx context.Context, id uuid.UUID, status domain.EventStatus) error
}

func (m *MockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	return nil
}

func (m *MockEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrEventNotFound
}

func (m *MockEventRepository) List(ctx context.Context, filter *repository.EventFilter, limit, offset int) ([]*domain.Event, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, limit, offset)
	}
	return []*domain.Event{}, nil
}

func (m *MockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, event)
	}
	return nil
}

func (m *MockEventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}


// MockMovementRepository is a mock implementation of MovementRepository
type MockMovementRepository struct {
	ListByProductFunc func(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*domain.StockMovement, error)
	ListByEventFunc   func(ctx context.Context, eventID uuid.UUID) ([]*domain.StockMovement, error)
}

func (m *MockMovementRepository) ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*domain.StockMovement, error) {
	if m.ListByProductFunc != nil {
		return m.ListByProductFunc(ctx, productID, limit, offset)
	}
	return []*domain.StockMovement{}, nil
}

func (m *MockMovementRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.StockMovement, error) {
	if m.ListByEventFunc != nil {
		return m.ListByEventFunc(ctx, eventID)
	}
	return []*domain.StockMovement{}, nil
}

// MockReservationRepository is a mock implementation of ReservationRepository
type MockReservationRepository struct {
	GetProductReservationsFunc func(ctx context.Context, eventID uuid.UUID) ([]*domain.ProductReservation, error)
	GetAssetAllocationsFunc    func(ctx context.Context, eventID uuid.UUID) ([]*domain.AssetAllocation, error)
}

func (m *MockReservationRepository) GetProductReservations(ctx context.Context, eventID uuid.UUID) ([]*domain.ProductReservation, error) {
	if m.GetProductReservationsFunc != nil {
		return m.GetProductReservationsFunc(ctx, eventID)
	}
	return []*domain.ProductReservation{}, nil
}

func (m *MockReservationRepository) GetAssetAllocations(ctx context.Context, eventID uuid.UUID) ([]*domain.AssetAllocation, error) {
	if m.GetAssetAllocationsFunc != nil {
		return m.GetAssetAllocationsFunc(ctx, eventID)
	}
	return []*domain.AssetAllocation{}, nil
}

// MockMenuCache is a mock implementation of MenuCache
type MockMenuCache struct {
	GetFunc        func(ctx context.Context, id uuid.UUID) (*domain.Menu, error)
	SetFunc        func(ctx context.Context, menu *domain.Menu) error
	InvalidateFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *MockMenuCache) Get(ctx context.Context, id uuid.UUID) (*domain.Menu, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockMenuCache) Set(ctx context.Context, menu *domain.Menu) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, menu)
	}
	return nil
}

func (m *MockMenuCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, id)
	}
	return nil
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	PublishEventPlannedFunc func(ctx context.Context, eventID uuid.UUID, payload any) error
	PublishEventSettledFunc func(ctx context.Context, eventID uuid.UUID, payload any) error
	PublishLowStockFunc     func(ctx context.Context, product *domain.Product) error
}

func (m *MockEventPublisher) PublishEventPlanned(ctx context.Context, eventID uuid.UUID, payload any) error {
	if m.PublishEventPlannedFunc != nil {
		return m.PublishEventPlannedFunc(ctx, eventID, payload)
	}
	return nil
}

func (m *MockEventPublisher) PublishEventSettled(ctx context.Context, eventID uuid.UUID, payload any) error {
	if m.PublishEventSettledFunc != nil {
		return m.PublishEventSettledFunc(ctx, eventID, payload)
	}
	return nil
}

func (m *MockEventPublisher) PublishLowStock(ctx context.Context, product *domain.Product) error {
	if m.PublishLowStockFunc != nil {
		return m.PublishLowStockFunc(ctx, product)
	}
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}

// MockPlanningTx is a mock implementation of PlanningTx
type MockPlanningTx struct {
	LockEventFunc              func(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	GetMenuFunc                func(ctx context.Context, id uuid.UUID) (*domain.Menu, error)
	LockProductsFunc           func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error)
	LockAssetsFunc             func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Asset, error)
	GetProductReservationsFunc func(ctx context.Context, eventID uuid.UUID) ([]*domain.ProductReservation, error)
	GetAssetAllocationsFunc    func(ctx context.Context, eventID uuid.UUID) ([]*domain.AssetAllocation, error)
	ReplacePlanFunc            func(ctx context.Context, eventID uuid.UUID, reservations []*domain.ProductReservation, allocations []*domain.AssetAllocation) error
	SetProductStockFunc        func(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error
	SetAssetCountsFunc         func(ctx context.Context, id uuid.UUID, total, available int) error
	FinalizeReservationFunc    func(ctx context.Context, id uuid.UUID, consumed, returned decimal.Decimal) error
	FinalizeAllocationFunc     func(ctx context.Context, id uuid.UUID, lost int) error
	InsertMovementFunc         func(ctx context.Context, movement *domain.StockMovement) error
	UpdateEventFunc            func(ctx context.Context, event *domain.Event) error
	DeleteEventFunc            func(ctx context.Context, id uuid.UUID) error
}

func (m *MockPlanningTx) LockEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	if m.LockEventFunc != nil {
		return m.LockEventFunc(ctx, id)
	}
	return nil, domain.ErrEventNotFound
}

func (m *MockPlanningTx) GetMenu(ctx context.Context, id uuid.UUID) (*domain.Menu, error) {
	if m.GetMenuFunc != nil {
		return m.GetMenuFunc(ctx, id)
	}
	return nil, domain.ErrMenuNotFound
}

func (m *MockPlanningTx) LockProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
	if m.LockProductsFunc != nil {
		return m.LockProductsFunc(ctx, ids)
	}
	return map[uuid.UUID]*domain.Product{}, nil
}

func (m *MockPlanningTx) LockAssets(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Asset, error) {
	if m.LockAssetsFunc != nil {
		return m.LockAssetsFunc(ctx, ids)
	}
	return map[uuid.UUID]*domain.Asset{}, nil
}

func (m *MockPlanningTx) GetProductReservations(ctx context.Context, eventID uuid.UUID) ([]*domain.ProductReservation, error) {
	if m.GetProductReservationsFunc != nil {
		return m.GetProductReservationsFunc(ctx, eventID)
	}
	return []*domain.ProductReservation{}, nil
}

func (m *MockPlanningTx) GetAssetAllocations(ctx context.Context, eventID uuid.UUID) ([]*domain.AssetAllocation, error) {
	if m.GetAssetAllocationsFunc != nil {
		return m.GetAssetAllocationsFunc(ctx, eventID)
	}
	return []*domain.AssetAllocation{}, nil
}

func (m *MockPlanningTx) ReplacePlan(ctx context.Context, eventID uuid.UUID, reservations []*domain.ProductReservation, allocations []*domain.AssetAllocation) error {
	if m.ReplacePlanFunc != nil {
		return m.ReplacePlanFunc(ctx, eventID, reservations, allocations)
	}
	return nil
}

func (m *MockPlanningTx) SetProductStock(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error {
	if m.SetProductStockFunc != nil {
		return m.SetProductStockFunc(ctx, id, stock)
	}
	return nil
}

func (m *MockPlanningTx) SetAssetCounts(ctx context.Context, id uuid.UUID, total, available int) error {
	if m.SetAssetCountsFunc != nil {
		return m.SetAssetCountsFunc(ctx, id, total, available)
	}
	return nil
}

func (m *MockPlanningTx) FinalizeReservation(ctx context.Context, id uuid.UUID, consumed, returned decimal.Decimal) error {
	if m.FinalizeReservationFunc != nil {
		return m.FinalizeReservationFunc(ctx, id, consumed, returned)
	}
	return nil
}

func (m *MockPlanningTx) FinalizeAllocation(ctx context.Context, id uuid.UUID, lost int) error {
	if m.FinalizeAllocationFunc != nil {
		return m.FinalizeAllocationFunc(ctx, id, lost)
	}
	return nil
}

func (m *MockPlanningTx) InsertMovement(ctx context.Context, movement *domain.StockMovement) error {
	if m.InsertMovementFunc != nil {
		return m.InsertMovementFunc(ctx, movement)
	}
	return nil
}

func (m *MockPlanningTx) UpdateEvent(ctx context.Context, event *domain.Event) error {
	if m.UpdateEventFunc != nil {
		return m.UpdateEventFunc(ctx, event)
	}
	return nil
}

func (m *MockPlanningTx) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if m.DeleteEventFunc != nil {
		return m.DeleteEventFunc(ctx, id)
	}
	return nil
}

// MockPlanningStore runs the transactional callback against a MockPlanningTx
type MockPlanningStore struct {
	Tx         *MockPlanningTx
	WithTxFunc func(ctx context.Context, fn func(ctx context.Context, tx repository.PlanningTx) error) error
}

func (m *MockPlanningStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.PlanningTx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, fn)
	}
	tx := m.Tx
	if tx == nil {
		tx = &MockPlanningTx{}
	}
	return fn(ctx, tx)
}

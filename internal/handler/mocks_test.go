package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/vromao/catering-ops/internal/dto"
)

// MockPlanningService is a mock implementation of PlanningService for testing
type MockPlanningService struct {
	PlanEventFunc   func(ctx context.Context, eventID uuid.UUID) (*dto.PlanEventResponse, error)
	GetPlanFunc     func(ctx context.Context, eventID uuid.UUID) (*dto.PlanEventResponse, error)
	SettleEventFunc func(ctx context.Context, eventID uuid.UUID, req *dto.SettleEventRequest) (*dto.SettleEventResponse, error)
}

func (m *MockPlanningService) PlanEvent(ctx context.Context, eventID uuid.UUID) (*dto.PlanEventResponse, error) {
	if m.PlanEventFunc != nil {
		return m.PlanEventFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *MockPlanningService) GetPlan(ctx context.Context, eventID uuid.UUID) (*dto.PlanEventResponse, error) {
	if m.GetPlanFunc != nil {
		return m.GetPlanFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *MockPlanningService) SettleEvent(ctx context.Context, eventID uuid.UUID, req *dto.SettleEventRequest) (*dto.SettleEventResponse, error) {
	if m.SettleEventFunc != nil {
		return m.SettleEventFunc(ctx, eventID, req)
	}
	return nil, nil
}

// MockEventService is a mock implementation of EventService for testing
type MockEventService struct {
	CreateEventFunc        func(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEventFunc           func(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error)
	ListEventsFunc         func(ctx context.Context, clientID *uuid.UUID, status string, page, pageSize int) ([]*dto.EventResponse, error)
	UpdateEventFunc        func(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	ListEventMovementsFunc func(ctx context.Context, id uuid.UUID) ([]*dto.MovementResponse, error)
	DeleteEventFunc        func(ctx context.Context, id uuid.UUID) error
}

func (m *MockEventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if m.CreateEventFunc != nil {
		return m.CreateEventFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockEventService) GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error) {
	if m.GetEventFunc != nil {
		return m.GetEventFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockEventService) ListEvents(ctx context.Context, clientID *uuid.UUID, status string, page, pageSize int) ([]*dto.EventResponse, error) {
	if m.ListEventsFunc != nil {
		return m.ListEventsFunc(ctx, clientID, status, page, pageSize)
	}
	return []*dto.EventResponse{}, nil
}

func (m *MockEventService) UpdateEvent(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	if m.UpdateEventFunc != nil {
		return m.UpdateEventFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockEventService) ListEventMovements(ctx context.Context, id uuid.UUID) ([]*dto.MovementResponse, error) {
	if m.ListEventMovementsFunc != nil {
		return m.ListEventMovementsFunc(ctx, id)
	}
	return []*dto.MovementResponse{}, nil
}

func (m *MockEventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if m.DeleteEventFunc != nil {
		return m.DeleteEventFunc(ctx, id)
	}
	return nil
}

// MockCatalogService is a mock implementation of CatalogService for testing
type MockCatalogService struct {
	CreateClientFunc         func(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetClientFunc            func(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error)
	ListClientsFunc          func(ctx context.Context, page, pageSize int) ([]*dto.ClientResponse, error)
	UpdateClientFunc         func(ctx context.Context, id uuid.UUID, req *dto.UpdateClientRequest) (*dto.ClientResponse, error)
	DeleteClientFunc         func(ctx context.Context, id uuid.UUID) error
	CreateProductFunc        func(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProductFunc           func(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	ListProductsFunc         func(ctx context.Context, page, pageSize int) ([]*dto.ProductResponse, error)
	UpdateProductFunc        func(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	AdjustStockFunc          func(ctx context.Context, id uuid.UUID, req *dto.AdjustStockRequest) (*dto.ProductResponse, error)
	ListProductMovementsFunc func(ctx context.Context, id uuid.UUID, page, pageSize int) ([]*dto.MovementResponse, error)
	DeleteProductFunc        func(ctx context.Context, id uuid.UUID) error
	CreateAssetFunc          func(ctx context.Context, req *dto.CreateAssetRequest) (*dto.AssetResponse, error)
	GetAssetFunc             func(ctx context.Context, id uuid.UUID) (*dto.AssetResponse, error)
	ListAssetsFunc           func(ctx context.Context, page, pageSize int) ([]*dto.AssetResponse, error)
	ResizeAssetFunc          func(ctx context.Context, id uuid.UUID, req *dto.UpdateAssetQuantityRequest) (*dto.AssetResponse, error)
	DeleteAssetFunc          func(ctx context.Context, id uuid.UUID) error
}

func (m *MockCatalogService) CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if m.CreateClientFunc != nil {
		return m.CreateClientFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockCatalogService) GetClient(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error) {
	if m.GetClientFunc != nil {
		return m.GetClientFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCatalogService) ListClients(ctx context.Context, page, pageSize int) ([]*dto.ClientResponse, error) {
	if m.ListClientsFunc != nil {
		return m.ListClientsFunc(ctx, page, pageSize)
	}
	return []*dto.ClientResponse{}, nil
}

func (m *MockCatalogService) UpdateClient(ctx context.Context, id uuid.UUID, req *dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if m.UpdateClientFunc != nil {
		return m.UpdateClientFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockCatalogService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if m.DeleteClientFunc != nil {
		return m.DeleteClientFunc(ctx, id)
	}
	return nil
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if m.CreateProductFunc != nil {
		return m.CreateProductFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCatalogService) ListProducts(ctx context.Context, page, pageSize int) ([]*dto.ProductResponse, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx, page, pageSize)
	}
	return []*dto.ProductResponse{}, nil
}

func (m *MockCatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if m.UpdateProductFunc != nil {
		return m.UpdateProductFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockCatalogService) AdjustStock(ctx context.Context, id uuid.UUID, req *dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if m.AdjustStockFunc != nil {
		return m.AdjustStockFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockCatalogService) ListProductMovements(ctx context.Context, id uuid.UUID, page, pageSize int) ([]*dto.MovementResponse, error) {
	if m.ListProductMovementsFunc != nil {
		return m.ListProductMovementsFunc(ctx, id, page, pageSize)
	}
	return []*dto.MovementResponse{}, nil
}

func (m *MockCatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if m.DeleteProductFunc != nil {
		return m.DeleteProductFunc(ctx, id)
	}
	return nil
}

func (m *MockCatalogService) CreateAsset(ctx context.Context, req *dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	if m.CreateAssetFunc != nil {
		return m.CreateAssetFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockCatalogService) GetAsset(ctx context.Context, id uuid.UUID) (*dto.AssetResponse, error) {
	if m.GetAssetFunc != nil {
		return m.GetAssetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCatalogService) ListAssets(ctx context.Context, page, pageSize int) ([]*dto.AssetResponse, error) {
	if m.ListAssetsFunc != nil {
		return m.ListAssetsFunc(ctx, page, pageSize)
	}
	return []*dto.AssetResponse{}, nil
}

func (m *MockCatalogService) ResizeAsset(ctx context.Context, id uuid.UUID, req *dto.UpdateAssetQuantityRequest) (*dto.AssetResponse, error) {
	if m.ResizeAssetFunc != nil {
		return m.ResizeAssetFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockCatalogService) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	if m.DeleteAssetFunc != nil {
		return m.DeleteAssetFunc(ctx, id)
	}
	return nil
}

// MockMenuService is a mock implementation of MenuService for testing
type MockMenuService struct {
	CreateMenuFunc  func(ctx context.Context, req *dto.CreateMenuRequest) (*dto.MenuResponse, error)
	GetMenuFunc     func(ctx context.Context, id uuid.UUID) (*dto.MenuResponse, error)
	ListMenusFunc   func(ctx context.Context, page, pageSize int) ([]*dto.MenuResponse, error)
	AddItemFunc     func(ctx context.Context, menuID uuid.UUID, req *dto.AddMenuItemRequest) (*dto.MenuResponse, error)
	AddAssetFunc    func(ctx context.Context, menuID uuid.UUID, req *dto.AddMenuAssetRequest) (*dto.MenuResponse, error)
	RemoveItemFunc  func(ctx context.Context, menuID, itemID uuid.UUID) error
	RemoveAssetFunc func(ctx context.Context, menuID, entryID uuid.UUID) error
	DeleteMenuFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *MockMenuService) CreateMenu(ctx context.Context, req *dto.CreateMenuRequest) (*dto.MenuResponse, error) {
	if m.CreateMenuFunc != nil {
		return m.CreateMenuFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockMenuService) GetMenu(ctx context.Context, id uuid.UUID) (*dto.MenuResponse, error) {
	if m.GetMenuFunc != nil {
		return m.GetMenuFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockMenuService) ListMenus(ctx context.Context, page, pageSize int) ([]*dto.MenuResponse, error) {
	if m.ListMenusFunc != nil {
		return m.ListMenusFunc(ctx, page, pageSize)
	}
	return []*dto.MenuResponse{}, nil
}

func (m *MockMenuService) AddItem(ctx context.Context, menuID uuid.UUID, req *dto.AddMenuItemRequest) (*dto.MenuResponse, error) {
	if m.AddItemFunc != nil {
		return m.AddItemFunc(ctx, menuID, req)
	}
	return nil, nil
}

func (m *MockMenuService) AddAsset(ctx context.Context, menuID uuid.UUID, req *dto.AddMenuAssetRequest) (*dto.MenuResponse, error) {
	if m.AddAssetFunc != nil {
		return m.AddAssetFunc(ctx, menuID, req)
	}
	return nil, nil
}

func (m *MockMenuService) RemoveItem(ctx context.Context, menuID, itemID uuid.UUID) error {
	if m.RemoveItemFunc != nil {
		return m.RemoveItemFunc(ctx, menuID, itemID)
	}
	return nil
}

func (m *MockMenuService) RemoveAsset(ctx context.Context, menuID, entryID uuid.UUID) error {
	if m.RemoveAssetFunc != nil {
		return m.RemoveAssetFunc(ctx, menuID, entryID)
	}
	return nil
}

func (m *MockMenuService) DeleteMenu(ctx context.Context, id uuid.UUID) error {
	if m.DeleteMenuFunc != nil {
		return m.DeleteMenuFunc(ctx, id)
	}
	return nil
}

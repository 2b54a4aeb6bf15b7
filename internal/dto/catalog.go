package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vromao/catering-ops/internal/domain"
)

// CreateClientRequest represents a request to register a client
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// UpdateClientRequest represents a partial client update
type UpdateClientRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone *string `json:"phone,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromClient converts a domain Client to a ClientResponse
func FromClient(c *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CreateProductRequest represents a request to register a product
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Unit     string          `json:"unit" binding:"required"`
	Stock    decimal.Decimal `json:"stock"`
	MinStock decimal.Decimal `json:"min_stock"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty"`
	Unit     *string          `json:"unit,omitempty"`
	MinStock *decimal.Decimal `json:"min_stock,omitempty"`
}

// AdjustStockRequest represents a manual stock movement
type AdjustStockRequest struct {
	Kind     string          `json:"kind" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Note     string          `json:"note,omitempty"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Stock     decimal.Decimal `json:"stock"`
	MinStock  decimal.Decimal `json:"min_stock"`
	LowStock  bool            `json:"low_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// FromProduct converts a domain Product to a ProductResponse
func FromProduct(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Unit:      p.Unit,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		LowStock:  p.BelowMinimum(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// CreateAssetRequest represents a request to register an asset pool
type CreateAssetRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required,oneof=EQUIPMENT UTENSIL"`
	Total    int    `json:"total" binding:"required,min=0"`
}

// UpdateAssetQuantityRequest represents a change to an asset pool size
type UpdateAssetQuantityRequest struct {
	Total int `json:"total" binding:"min=0"`
}

// AssetResponse represents an asset pool in API responses
type AssetResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Total     int       `json:"total"`
	Available int       `json:"available"`
	Allocated int       `json:"allocated"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromAsset converts a domain Asset to an AssetResponse
func FromAsset(a *domain.Asset) *AssetResponse {
	return &AssetResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Category:  string(a.Category),
		Total:     a.Total,
		Available: a.Available,
		Allocated: a.Allocated(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// CreateMenuRequest represents a request to create a menu template
type CreateMenuRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// AddMenuItemRequest attaches a product to a menu
type AddMenuItemRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	PerGuest  decimal.Decimal `json:"per_guest" binding:"required"`
}

// AddMenuAssetRequest attaches an asset pool to a menu
type AddMenuAssetRequest struct {
	AssetID  string `json:"asset_id" binding:"required"`
	Mode     string `json:"mode" binding:"required,oneof=PER_EVENT PER_PERSON"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// MenuItemResponse represents a menu's product entry
type MenuItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	PerGuest  decimal.Decimal `json:"per_guest"`
}

// MenuAssetResponse represents a menu's asset entry
type MenuAssetResponse struct {
	ID       string `json:"id"`
	AssetID  string `json:"asset_id"`
	Mode     string `json:"mode"`
	Quantity int    `json:"quantity"`
}

// MenuResponse represents a menu in API responses
type MenuResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Items       []MenuItemResponse  `json:"items"`
	Assets      []MenuAssetResponse `json:"assets"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// FromMenu converts a domain Menu to a MenuResponse
func FromMenu(m *domain.Menu) *MenuResponse {
	resp := &MenuResponse{
		ID:          m.ID.String(),
		Name:        m.Name,
		Description: m.Description,
		Items:       make([]MenuItemResponse, 0, len(m.Items)),
		Assets:      make([]MenuAssetResponse, 0, len(m.Assets)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for _, item := range m.Items {
		resp.Items = append(resp.Items, MenuItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			PerGuest:  item.PerGuest,
		})
	}
	for _, ma := range m.Assets {
		resp.Assets = append(resp.Assets, MenuAssetResponse{
			ID:       ma.ID.String(),
			AssetID:  ma.AssetID.String(),
			Mode:     string(ma.Mode),
			Quantity: ma.Quantity,
		})
	}
	return resp
}

// CreateEventRequest represents a request to create an event
type CreateEventRequest struct {
	ClientID   string    `json:"client_id" binding:"required"`
	MenuID     string    `json:"menu_id,omitempty"`
	Name       string    `json:"name" binding:"required"`
	Venue      string    `json:"venue,omitempty"`
	GuestCount int       `json:"guest_count" binding:"min=0"`
	StartsAt   time.Time `json:"starts_at" binding:"required"`
	EndsAt     time.Time `json:"ends_at" binding:"required"`
}

// UpdateEventRequest represents a partial event update
type UpdateEventRequest struct {
	MenuID     *string    `json:"menu_id,omitempty"`
	Name       *string    `json:"name,omitempty"`
	Venue      *string    `json:"venue,omitempty"`
	GuestCount *int       `json:"guest_count,omitempty"`
	StartsAt   *time.Time `json:"starts_at,omitempty"`
	EndsAt     *time.Time `json:"ends_at,omitempty"`
	Status     *string    `json:"status,omitempty"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID         string     `json:"id"`
	ClientID   string     `json:"client_id"`
	MenuID     string     `json:"menu_id,omitempty"`
	Name       string     `json:"name"`
	Venue      string     `json:"venue,omitempty"`
	GuestCount int        `json:"guest_count"`
	Status     string     `json:"status"`
	StartsAt   time.Time  `json:"starts_at"`
	EndsAt     time.Time  `json:"ends_at"`
	PlannedAt  *time.Time `json:"planned_at,omitempty"`
	SettledAt  *time.Time `json:"settled_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// FromEvent converts a domain Event to an EventResponse
func FromEvent(e *domain.Event) *EventResponse {
	resp := &EventResponse{
		ID:         e.ID.String(),
		ClientID:   e.ClientID.String(),
		Name:       e.Name,
		Venue:      e.Venue,
		GuestCount: e.GuestCount,
		Status:     string(e.Status),
		StartsAt:   e.StartsAt,
		EndsAt:     e.EndsAt,
		PlannedAt:  e.PlannedAt,
		SettledAt:  e.SettledAt,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if e.MenuID != nil {
		resp.MenuID = e.MenuID.String()
	}
	return resp
}

// MovementResponse represents a stock movement in API responses
type MovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	EventID   string          `json:"event_id,omitempty"`
	Kind      string          `json:"kind"`
	Quantity  decimal.Decimal `json:"quantity"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// FromMovement converts a domain StockMovement to a MovementResponse
func FromMovement(m *domain.StockMovement) *MovementResponse {
	resp := &MovementResponse{
		ID:        m.ID.String(),
		ProductID: m.ProductID.String(),
		Kind:      string(m.Kind),
		Quantity:  m.Quantity,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
	if m.EventID != nil {
		resp.EventID = m.EventID.String()
	}
	return resp
}

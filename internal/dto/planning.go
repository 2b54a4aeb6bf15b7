package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlannedProduct is one product line of a computed event plan
type PlannedProduct struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Required  decimal.Decimal `json:"required"`
	Reserved  decimal.Decimal `json:"reserved"`
	Shortfall decimal.Decimal `json:"shortfall"`
}

// PlannedAsset is one asset line of a computed event plan
type PlannedAsset struct {
	AssetID   string `json:"asset_id"`
	Name      string `json:"name"`
	Required  int    `json:"required"`
	Allocated int    `json:"allocated"`
	Shortfall int    `json:"shortfall"`
}

// PurchaseItem is one entry of the purchase checklist: a product whose
// requirement exceeds the stock on hand
type PurchaseItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Shortfall decimal.Decimal `json:"shortfall"`
}

// PlanEventResponse represents the plan computed for an event:
// the carry checklist (products and assets) plus the purchase
// checklist covering everything stock could not supply
type PlanEventResponse struct {
	EventID    string           `json:"event_id"`
	Status     string           `json:"status"`
	GuestCount int              `json:"guest_count"`
	PlannedAt  time.Time        `json:"planned_at"`
	Products   []PlannedProduct `json:"products"`
	Assets     []PlannedAsset   `json:"assets"`
	Purchase   []PurchaseItem   `json:"purchase,omitempty"`
	Warnings   []string         `json:"warnings,omitempty"`
}

// ProductReturnEntry reports the unused leftover of one reserved product
type ProductReturnEntry struct {
	ProductID string          `json:"product_id" binding:"required"`
	Leftover  decimal.Decimal `json:"leftover"`
}

// AssetLossEntry reports broken or missing units of one allocated asset
type AssetLossEntry struct {
	AssetID string `json:"asset_id" binding:"required"`
	Lost    int    `json:"lost"`
}

// SettleEventRequest represents the post-event settlement report
type SettleEventRequest struct {
	Products []ProductReturnEntry `json:"products"`
	Assets   []AssetLossEntry     `json:"assets"`
}

// SettleEventResponse confirms the event's new status after settlement
type SettleEventResponse struct {
	EventID   string    `json:"event_id"`
	Status    string    `json:"status"`
	SettledAt time.Time `json:"settled_at"`
}

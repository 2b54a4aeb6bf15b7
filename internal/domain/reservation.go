package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductReservation is a soft hold of a product quantity for one
// event. It does not decrement stock; it records intent that the
// settlement later converts into real consumption. Consumed and
// Returned stay nil until settlement finalizes the row.
type ProductReservation struct {
	ID        uuid.UUID        `json:"id"`
	EventID   uuid.UUID        `json:"event_id"`
	ProductID uuid.UUID        `json:"product_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Shortfall decimal.Decimal  `json:"shortfall"`
	Consumed  *decimal.Decimal `json:"consumed,omitempty"`
	Returned  *decimal.Decimal `json:"returned,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// AssetAllocation is a hard hold of asset units for one event.
// Planning decrements the pool's availability by Quantity and the
// settlement returns whatever was not lost. Lost stays nil until
// settlement finalizes the row.
type AssetAllocation struct {
	ID        uuid.UUID `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	AssetID   uuid.UUID `json:"asset_id"`
	Quantity  int       `json:"quantity"`
	Shortfall int       `json:"shortfall"`
	Lost      *int      `json:"lost,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

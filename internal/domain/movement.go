package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementKind classifies a stock movement
type MovementKind string

const (
	// MovementEntry adds purchased stock.
	MovementEntry MovementKind = "ENTRY"
	// MovementExit removes stock outside of any event.
	MovementExit MovementKind = "EXIT"
	// MovementAdjustment sets stock to an absolute counted value.
	MovementAdjustment MovementKind = "ADJUSTMENT"
	// MovementConsumption is stock consumed by a settled event.
	MovementConsumption MovementKind = "CONSUMPTION"
	// MovementReturn is reserved stock returned unused by a settled event.
	MovementReturn MovementKind = "RETURN"
)

// IsValid reports whether k is a known movement kind.
func (k MovementKind) IsValid() bool {
	switch k {
	case MovementEntry, MovementExit, MovementAdjustment,
		MovementConsumption, MovementReturn:
		return true
	}
	return false
}

// IsManual reports whether the kind may be posted through the stock
// adjustment endpoint. Consumption and return movements are only ever
// written by settlements.
func (k MovementKind) IsManual() bool {
	return k == MovementEntry || k == MovementExit || k == MovementAdjustment
}

// StockMovement is an immutable ledger line recording one change to a
// product's stock.
type StockMovement struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	EventID   *uuid.UUID      `json:"event_id,omitempty"`
	Kind      MovementKind    `json:"kind"`
	Quantity  decimal.Decimal `json:"quantity"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

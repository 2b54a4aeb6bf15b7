package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a consumable stock item (ingredients, beverages,
// disposables). Quantities are decimal so fractional units such as
// kilograms and liters stay exact.
type Product struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Stock     decimal.Decimal `json:"stock"`
	MinStock  decimal.Decimal `json:"min_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BelowMinimum reports whether current stock sits under the alert threshold.
func (p *Product) BelowMinimum() bool {
	return p.Stock.LessThan(p.MinStock)
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// AssetCategory classifies a pool of reusable gear.
type AssetCategory string

const (
	AssetCategoryEquipment AssetCategory = "EQUIPMENT"
	AssetCategoryUtensil   AssetCategory = "UTENSIL"
)

// IsValid reports whether the category is a known value.
func (c AssetCategory) IsValid() bool {
	return c == AssetCategoryEquipment || c == AssetCategoryUtensil
}

// Asset represents a reusable equipment pool (tables, chafing dishes,
// glassware). Total is the owned count, Available the part not
// allocated to any open event.
type Asset struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Category  AssetCategory `json:"category"`
	Total     int           `json:"total"`
	Available int           `json:"available"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Allocated returns the count currently tied up in open events.
func (a *Asset) Allocated() int {
	return a.Total - a.Available
}

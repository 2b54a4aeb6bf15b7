package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Menu is a reusable template describing what one guest consumes and
// which equipment serves them.
type Menu struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Items       []MenuItem  `json:"items,omitempty"`
	Assets      []MenuAsset `json:"assets,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// MenuItem binds a product to a menu with a per-guest consumption rate.
type MenuItem struct {
	ID        uuid.UUID       `json:"id"`
	MenuID    uuid.UUID       `json:"menu_id"`
	ProductID uuid.UUID       `json:"product_id"`
	PerGuest  decimal.Decimal `json:"per_guest"`
}

// AllocationMode controls how a menu's asset quantity scales with the
// guest count.
type AllocationMode string

const (
	// AllocationPerEvent allocates a fixed number of units regardless
	// of how many guests attend.
	AllocationPerEvent AllocationMode = "PER_EVENT"
	// AllocationPerPerson allocates Quantity units for each guest.
	AllocationPerPerson AllocationMode = "PER_PERSON"
)

// IsValid reports whether the mode is a known value.
func (m AllocationMode) IsValid() bool {
	return m == AllocationPerEvent || m == AllocationPerPerson
}

// MenuAsset binds an asset pool to a menu. Quantity is either a flat
// per-event count or a per-guest multiplier depending on Mode.
type MenuAsset struct {
	ID       uuid.UUID      `json:"id"`
	MenuID   uuid.UUID      `json:"menu_id"`
	AssetID  uuid.UUID      `json:"asset_id"`
	Mode     AllocationMode `json:"mode"`
	Quantity int            `json:"quantity"`
}

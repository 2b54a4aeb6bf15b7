// Package planner computes event requirements from a menu and a guest
// count. It is pure arithmetic; persistence and locking live in the
// planning service on top of it.
package planner

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vromao/catering-ops/internal/domain"
)

// ProductRequirement is the total quantity of one product an event needs.
type ProductRequirement struct {
	ProductID uuid.UUID
	Required  decimal.Decimal
}

// AssetRequirement is the unit count of one asset pool an event needs.
type AssetRequirement struct {
	AssetID  uuid.UUID
	Required int
}

// ProductRequirements scales the menu's per-guest rates by the guest
// count. Entries referencing the same product are summed; result order
// follows first appearance in the menu.
func ProductRequirements(menu *domain.Menu, guests int) []ProductRequirement {
	g := decimal.NewFromInt(int64(guests))
	idx := make(map[uuid.UUID]int, len(menu.Items))
	out := make([]ProductRequirement, 0, len(menu.Items))
	for _, item := range menu.Items {
		required := item.PerGuest.Mul(g)
		if i, ok := idx[item.ProductID]; ok {
			out[i].Required = out[i].Required.Add(required)
			continue
		}
		idx[item.ProductID] = len(out)
		out = append(out, ProductRequirement{ProductID: item.ProductID, Required: required})
	}
	return out
}

// AssetRequirements resolves each menu asset entry against the guest
// count: PER_PERSON entries scale by guests, PER_EVENT entries are
// flat. Entries referencing the same asset are summed.
func AssetRequirements(menu *domain.Menu, guests int) []AssetRequirement {
	idx := make(map[uuid.UUID]int, len(menu.Assets))
	out := make([]AssetRequirement, 0, len(menu.Assets))
	for _, ma := range menu.Assets {
		required := ma.Quantity
		if ma.Mode == domain.AllocationPerPerson {
			required = ma.Quantity * guests
		}
		if i, ok := idx[ma.AssetID]; ok {
			out[i].Required += required
			continue
		}
		idx[ma.AssetID] = len(out)
		out = append(out, AssetRequirement{AssetID: ma.AssetID, Required: required})
	}
	return out
}

// SplitProduct turns a product requirement into a reservation.
// Reservations are soft holds capped at the stock on hand; the gap to
// the full requirement is reported as shortfall so the caller can
// build a purchase checklist.
func SplitProduct(required, stock decimal.Decimal) (reserved, shortfall decimal.Decimal) {
	shortfall = required.Sub(stock)
	if shortfall.IsNegative() {
		shortfall = decimal.Zero
	}
	reserved = required
	if reserved.GreaterThan(stock) {
		reserved = stock
	}
	if reserved.IsNegative() {
		reserved = decimal.Zero
	}
	return reserved, shortfall
}

// SplitAsset turns an asset requirement into an allocation. Allocations
// are hard: only what the pool has available is allocated, and the rest
// is reported as shortfall.
func SplitAsset(required, available int) (allocated, shortfall int) {
	allocated = required
	if allocated > available {
		allocated = available
	}
	if allocated < 0 {
		allocated = 0
	}
	return allocated, required - allocated
}

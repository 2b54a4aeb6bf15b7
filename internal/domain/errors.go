package domain

import "errors"

// Domain errors
var (
	// Not-found errors
	ErrEventNotFound       = errors.New("event not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrAssetNotFound       = errors.New("asset not found")
	ErrMenuNotFound        = errors.New("menu not found")
	ErrReservationNotFound = errors.New("product reservation not found")
	ErrAllocationNotFound  = errors.New("asset allocation not found")

	// Invalid-state errors (planning / settlement)
	ErrEventWithoutMenu   = errors.New("event has no menu assigned")
	ErrEventWithoutGuests = errors.New("event has no guest count")
	ErrEventNotPlannable  = errors.New("event cannot be planned in its current status")
	ErrEventNotSettleable = errors.New("event is not in a settleable status")
	ErrInvalidTransition  = errors.New("illegal event status transition")

	// Settlement report validation errors
	ErrNegativeLeftover        = errors.New("leftover quantity cannot be negative")
	ErrLeftoverExceedsReserved = errors.New("leftover quantity exceeds reserved quantity")
	ErrNegativeLoss            = errors.New("loss quantity cannot be negative")
	ErrLossExceedsAllocated    = errors.New("loss quantity exceeds allocated quantity")

	// Validation errors
	ErrInvalidEventID        = errors.New("invalid event id")
	ErrInvalidProductID      = errors.New("invalid product id")
	ErrInvalidAssetID        = errors.New("invalid asset id")
	ErrInvalidMenuID         = errors.New("invalid menu id")
	ErrInvalidClientID       = errors.New("invalid client id")
	ErrInvalidGuestCount     = errors.New("guest count must be greater than zero")
	ErrInvalidQuantity       = errors.New("quantity must be greater than zero")
	ErrInvalidMovementKind   = errors.New("invalid movement kind")
	ErrInvalidAssetCategory  = errors.New("invalid asset category")
	ErrInvalidAllocationMode = errors.New("invalid allocation mode")

	// Inventory errors
	ErrAssetAvailabilityRange = errors.New("asset availability must stay between zero and total")
)

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrAssetNotFound) ||
		errors.Is(err, ErrMenuNotFound) ||
		errors.Is(err, ErrReservationNotFound) ||
		errors.Is(err, ErrAllocationNotFound)
}

// IsInvalidStateError checks if the error is an invalid-state error
func IsInvalidStateError(err error) bool {
	return errors.Is(err, ErrEventWithoutMenu) ||
		errors.Is(err, ErrEventWithoutGuests) ||
		errors.Is(err, ErrEventNotPlannable) ||
		errors.Is(err, ErrEventNotSettleable) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrNegativeLeftover) ||
		errors.Is(err, ErrLeftoverExceedsReserved) ||
		errors.Is(err, ErrNegativeLoss) ||
		errors.Is(err, ErrLossExceedsAllocated)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidEventID) ||
		errors.Is(err, ErrInvalidProductID) ||
		errors.Is(err, ErrInvalidAssetID) ||
		errors.Is(err, ErrInvalidMenuID) ||
		errors.Is(err, ErrInvalidClientID) ||
		errors.Is(err, ErrInvalidGuestCount) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidMovementKind) ||
		errors.Is(err, ErrInvalidAssetCategory) ||
		errors.Is(err, ErrInvalidAllocationMode)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrAssetAvailabilityRange)
}

package rental

import "errors"

var (
	ErrRentalNotFound    = errors.New("rental not found")
	ErrOutOfStock        = errors.New("not enough items in stock for this period")
	ErrInvalidTimeRange  = errors.New("invalid rental time range")
	ErrProductInactive   = errors.New("product is not available for rent")
	ErrNotRentalParty    = errors.New("you are not a party to this rental")
	ErrInvalidTransition = errors.New("invalid rental status transition")
)

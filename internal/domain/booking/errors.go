package booking

import "errors"

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrTimeSlotTaken     = errors.New("time slot is already booked")
	ErrInvalidTimeRange  = errors.New("invalid booking time range")
	ErrOutsideOpenHours  = errors.New("booking is outside court opening hours")
	ErrCourtInactive     = errors.New("court is not available for booking")
	ErrNotBookingParty   = errors.New("you are not a party to this booking")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrCancelTooLate     = errors.New("booking can no longer be cancelled")
)

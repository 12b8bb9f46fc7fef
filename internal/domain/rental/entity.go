package rental

import (
	"time"

	"github.com/google/uuid"
)

// Status represents rental status (matches rental_status enum)
type Status string

const (
	StatusReserved  Status = "reserved"
	StatusActive    Status = "active"
	StatusReturned  Status = "returned"
	StatusCancelled Status = "cancelled"
)

// Rental represents equipment rented from a facility for a period.
// TotalPrice is stored in minor currency units (cents).
type Rental struct {
	ID         uuid.UUID     `db:"id"`
	ProductID  uuid.UUID     `db:"product_id"`
	UserID     uuid.UUID     `db:"user_id"`
	BookingID  uuid.NullUUID `db:"booking_id"`
	Quantity   int           `db:"quantity"`
	StartsAt   time.Time     `db:"starts_at"`
	EndsAt     time.Time     `db:"ends_at"`
	UnitCount  int           `db:"unit_count"`
	TotalPrice int64         `db:"total_price"`
	Status     Status        `db:"status"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`

	// Joined data, populated by list queries
	ProductName string    `db:"product_name"`
	FacilityID  uuid.UUID `db:"facility_id"`
}

// Holds reports whether this rental still claims stock
func (r *Rental) Holds() bool {
	return r.Status == StatusReserved || r.Status == StatusActive
}

// CanTransitionTo validates a status change
func (r *Rental) CanTransitionTo(next Status) bool {
	switch r.Status {
	case StatusReserved:
		return next == StatusActive || next == StatusCancelled
	case StatusActive:
		return next == StatusReturned
	}
	// returned and cancelled are terminal
	return false
}

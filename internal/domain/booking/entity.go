package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents booking status (matches booking_status enum)
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// SlotStep is the granularity bookings snap to.
const SlotStep = 30 * time.Minute

// Booking represents a court reservation.
// TotalPrice is stored in minor currency units (cents).
type Booking struct {
	ID         uuid.UUID      `db:"id"`
	CourtID    uuid.UUID      `db:"court_id"`
	UserID     uuid.UUID      `db:"user_id"`
	StartsAt   time.Time      `db:"starts_at"`
	EndsAt     time.Time      `db:"ends_at"`
	Status     Status         `db:"status"`
	TotalPrice int64          `db:"total_price"`
	Note       sql.NullString `db:"note"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`

	// Joined data, populated by list queries
	CourtName    string    `db:"court_name"`
	FacilityID   uuid.UUID `db:"facility_id"`
	FacilityName string    `db:"facility_name"`
}

// IsBookedBy reports whether userID made this booking
func (b *Booking) IsBookedBy(userID uuid.UUID) bool {
	return b.UserID == userID
}

// Blocks reports whether this booking still occupies its time slot
func (b *Booking) Blocks() bool {
	return b.Status != StatusCancelled
}

// CanTransitionTo validates a status change
func (b *Booking) CanTransitionTo(next Status) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted
	}
	// cancelled and completed are terminal
	return false
}

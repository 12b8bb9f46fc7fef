package payment

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents payment status (matches payment_status enum)
type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

// Provider identifies the charging channel
const (
	ProviderMock = "mock"
	ProviderCard = "card"
)

// Payment represents a charge for a booking or a rental. Amount is in
// minor currency units and always comes from the referenced record,
// never from the client.
type Payment struct {
	ID          uuid.UUID     `db:"id"`
	UserID      uuid.UUID     `db:"user_id"`
	BookingID   uuid.NullUUID `db:"booking_id"`
	RentalID    uuid.NullUUID `db:"rental_id"`
	Amount      int64         `db:"amount"`
	Currency    string        `db:"currency"`
	Status      Status        `db:"status"`
	Provider    string        `db:"provider"`
	ProviderRef string        `db:"provider_ref"`
	PaidAt      sql.NullTime  `db:"paid_at"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

// IsSettled reports whether the payment reached a terminal state
func (p *Payment) IsSettled() bool {
	return p.Status == StatusPaid || p.Status == StatusFailed || p.Status == StatusRefunded
}

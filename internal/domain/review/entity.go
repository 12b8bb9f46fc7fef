package review

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Review represents a rating left by a customer for a facility.
// One review per user per facility.
type Review struct {
	ID         uuid.UUID      `db:"id"`
	FacilityID uuid.UUID      `db:"facility_id"`
	UserID     uuid.UUID      `db:"user_id"`
	Rating     int            `db:"rating"`
	Comment    sql.NullString `db:"comment"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`

	// Joined data
	AuthorName string `db:"author_name"`
}

// Summary aggregates a facility's reviews
type Summary struct {
	Average      float64     `db:"average"`
	Count        int         `db:"count"`
	Distribution map[int]int `db:"-"`
}

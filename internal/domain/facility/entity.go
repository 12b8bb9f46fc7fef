package facility

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Facility represents a bookable venue owned by a single tenant
type Facility struct {
	ID          uuid.UUID      `db:"id"`
	OwnerID     uuid.UUID      `db:"owner_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	City        string         `db:"city"`
	Address     string         `db:"address"`
	Amenities   pq.StringArray `db:"amenities"`
	Phone       sql.NullString `db:"phone"`
	CoverURL    sql.NullString `db:"cover_url"`

	// Denormalized review aggregates, recomputed in the same transaction
	// as every review write.
	RatingScore  float64 `db:"rating_score"`
	ReviewsCount int     `db:"reviews_count"`

	IsPublished bool      `db:"is_published"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// IsOwnedBy reports whether userID is the tenant that owns this facility
func (f *Facility) IsOwnedBy(userID uuid.UUID) bool {
	return f.OwnerID == userID
}

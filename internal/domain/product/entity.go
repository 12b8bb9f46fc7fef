package product

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// RentalUnit is the period one price unit covers
type RentalUnit string

const (
	UnitHour RentalUnit = "hour"
	UnitDay  RentalUnit = "day"
)

// Product represents rentable equipment stocked by a facility.
// PricePerUnit is stored in minor currency units (cents).
type Product struct {
	ID           uuid.UUID      `db:"id"`
	FacilityID   uuid.UUID      `db:"facility_id"`
	Name         string         `db:"name"`
	Description  sql.NullString `db:"description"`
	Category     sql.NullString `db:"category"`
	PricePerUnit int64          `db:"price_per_unit"`
	RentalUnit   RentalUnit     `db:"rental_unit"`
	StockTotal   int            `db:"stock_total"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

package rental

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines rental data access
type Repository interface {
	CreateIfAvailable(ctx context.Context, r *Rental) error
	GetByID(ctx context.Context, id uuid.UUID) (*Rental, error)
	List(ctx context.Context, filter Filter) ([]*Rental, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

// Filter narrows rental listings
type Filter struct {
	UserID     uuid.UUID
	FacilityID uuid.UUID
	ProductID  uuid.UUID
	Status     Status
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewRepository creates rental repository
func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const rentalSelect = `
	SELECT r.id, r.product_id, r.user_id, r.booking_id, r.quantity,
	       r.starts_at, r.ends_at, r.unit_count, r.total_price, r.status,
	       r.created_at, r.updated_at,
	       p.name AS product_name, p.facility_id
	FROM rentals r
	JOIN products p ON p.id = r.product_id
`

// CreateIfAvailable inserts the rental only if enough stock remains for
// the requested period. The product row is locked and stock_total read
// under that lock, so concurrent rentals of the same product serialize
// on the availability check and a mid-flight stock change is seen.
func (r *postgresRepository) CreateIfAvailable(ctx context.Context, rental *Rental) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var stockTotal int
	err = tx.GetContext(ctx, &stockTotal,
		`SELECT stock_total FROM products WHERE id = $1 AND is_active = true FOR UPDATE`,
		rental.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductInactive
		}
		return fmt.Errorf("failed to lock product: %w", err)
	}

	var reserved int
	err = tx.GetContext(ctx, &reserved, `
		SELECT COALESCE(SUM(quantity), 0)
		FROM rentals
		WHERE product_id = $1
		  AND status IN ('reserved', 'active')
		  AND starts_at < $3
		  AND ends_at > $2`,
		rental.ProductID, rental.StartsAt, rental.EndsAt)
	if err != nil {
		return fmt.Errorf("failed to count reserved stock: %w", err)
	}

	if reserved+rental.Quantity > stockTotal {
		return ErrOutOfStock
	}

	query := `
		INSERT INTO rentals (product_id, user_id, booking_id, quantity,
		                     starts_at, ends_at, unit_count, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRowxContext(ctx, query,
		rental.ProductID, rental.UserID, rental.BookingID, rental.Quantity,
		rental.StartsAt, rental.EndsAt, rental.UnitCount, rental.TotalPrice,
		rental.Status,
	).Scan(&rental.ID, &rental.CreatedAt, &rental.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create rental: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rental: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Rental, error) {
	var rental Rental
	err := r.db.GetContext(ctx, &rental, rentalSelect+` WHERE r.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRentalNotFound
		}
		return nil, fmt.Errorf("failed to get rental: %w", err)
	}
	return &rental, nil
}

func (r *postgresRepository) List(ctx context.Context, filter Filter) ([]*Rental, error) {
	query := rentalSelect + ` WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	addArg := func(cond string, val interface{}) {
		query += fmt.Sprintf(" AND "+cond, argNum)
		args = append(args, val)
		argNum++
	}

	if filter.UserID != uuid.Nil {
		addArg("r.user_id = $%d", filter.UserID)
	}
	if filter.FacilityID != uuid.Nil {
		addArg("p.facility_id = $%d", filter.FacilityID)
	}
	if filter.ProductID != uuid.Nil {
		addArg("r.product_id = $%d", filter.ProductID)
	}
	if filter.Status != "" {
		addArg("r.status = $%d", filter.Status)
	}

	query += ` ORDER BY r.created_at DESC`

	rentals := []*Rental{}
	if err := r.db.SelectContext(ctx, &rentals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}
	return rentals, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE rentals SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("failed to update rental status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrRentalNotFound
	}
	return nil
}

package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Filter represents booking list filters
type Filter struct {
	UserID     *uuid.UUID
	FacilityID *uuid.UUID
	CourtID    *uuid.UUID
	Status     *Status
	DateFrom   *time.Time
	DateTo     *time.Time
}

// Pagination for listing
type Pagination struct {
	Page  int
	Limit int
}

// Repository defines booking data access
type Repository interface {
	// CreateIfFree inserts the booking only if its slot does not overlap a
	// blocking booking on the same court. The conflict check and insert run
	// in one transaction with the court row locked, so two concurrent
	// requests for the same slot cannot both pass the check.
	CreateIfFree(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	List(ctx context.Context, filter *Filter, pagination *Pagination) ([]*Booking, int, error)
	BookedIntervals(ctx context.Context, courtID uuid.UUID, dayStart, dayEnd time.Time) ([]Interval, error)
	HasCompleted(ctx context.Context, userID, facilityID uuid.UUID) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// overlapCondition matches any booking whose [starts_at, ends_at) range
// intersects [$2, $3): it either covers the new start, covers the new end,
// or sits entirely inside the new range.
const overlapCondition = `
	(starts_at <= $2 AND ends_at > $2)
	OR (starts_at < $3 AND ends_at >= $3)
	OR (starts_at >= $2 AND ends_at <= $3)
`

func (r *repository) CreateIfFree(ctx context.Context, b *Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Serialize concurrent bookings on the same court.
	var courtID uuid.UUID
	err = tx.GetContext(ctx, &courtID, `SELECT id FROM courts WHERE id = $1 FOR UPDATE`, b.CourtID)
	if err == sql.ErrNoRows {
		return ErrCourtInactive
	}
	if err != nil {
		return err
	}

	var taken bool
	query := fmt.Sprintf(`
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE court_id = $1 AND status != 'cancelled' AND (%s)
		)
	`, overlapCondition)
	if err := tx.GetContext(ctx, &taken, query, b.CourtID, b.StartsAt, b.EndsAt); err != nil {
		return err
	}
	if taken {
		return ErrTimeSlotTaken
	}

	insert := `
		INSERT INTO bookings (id, court_id, user_id, starts_at, ends_at, status, total_price, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.ExecContext(ctx, insert,
		b.ID, b.CourtID, b.UserID, b.StartsAt, b.EndsAt, b.Status, b.TotalPrice, b.Note, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

const bookingSelect = `
	SELECT b.id, b.court_id, b.user_id, b.starts_at, b.ends_at, b.status,
		b.total_price, b.note, b.created_at, b.updated_at,
		c.name AS court_name, c.facility_id AS facility_id, f.name AS facility_name
	FROM bookings b
	JOIN courts c ON c.id = b.court_id
	JOIN facilities f ON f.id = c.facility_id
`

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var b Booking
	err := r.db.GetContext(ctx, &b, bookingSelect+` WHERE b.id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &b, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *repository) List(ctx context.Context, filter *Filter, pagination *Pagination) ([]*Booking, int, error) {
	var conds []string
	var args []interface{}

	addArg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter != nil {
		if filter.UserID != nil {
			conds = append(conds, "b.user_id = "+addArg(*filter.UserID))
		}
		if filter.FacilityID != nil {
			conds = append(conds, "c.facility_id = "+addArg(*filter.FacilityID))
		}
		if filter.CourtID != nil {
			conds = append(conds, "b.court_id = "+addArg(*filter.CourtID))
		}
		if filter.Status != nil {
			conds = append(conds, "b.status = "+addArg(*filter.Status))
		}
		if filter.DateFrom != nil {
			conds = append(conds, "b.starts_at >= "+addArg(*filter.DateFrom))
		}
		if filter.DateTo != nil {
			conds = append(conds, "b.starts_at < "+addArg(*filter.DateTo))
		}
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN courts c ON c.id = b.court_id
		JOIN facilities f ON f.id = c.facility_id
	` + where

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	limitPos := addArg(pagination.Limit)
	offsetPos := addArg((pagination.Page - 1) * pagination.Limit)
	query := bookingSelect + where + " ORDER BY b.starts_at DESC LIMIT " + limitPos + " OFFSET " + offsetPos

	var bookings []*Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *repository) BookedIntervals(ctx context.Context, courtID uuid.UUID, dayStart, dayEnd time.Time) ([]Interval, error) {
	query := fmt.Sprintf(`
		SELECT starts_at, ends_at FROM bookings
		WHERE court_id = $1 AND status != 'cancelled' AND (%s)
		ORDER BY starts_at ASC
	`, overlapCondition)

	intervals := []Interval{}
	err := r.db.SelectContext(ctx, &intervals, query, courtID, dayStart, dayEnd)
	return intervals, err
}

// HasCompleted reports whether the user finished at least one booking at
// any court of the facility.
func (r *repository) HasCompleted(ctx context.Context, userID, facilityID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings b
			JOIN courts c ON c.id = b.court_id
			WHERE b.user_id = $1 AND c.facility_id = $2 AND b.status = 'completed'
		)
	`
	var ok bool
	err := r.db.GetContext(ctx, &ok, query, userID, facilityID)
	return ok, err
}

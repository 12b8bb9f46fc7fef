package payment

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines payment data access
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	GetByProviderRef(ctx context.Context, ref string) (*Payment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// Settle flips the payment status, stamps paid_at on success and,
	// when the payment covers a booking that just got paid, confirms
	// that booking in the same transaction.
	Settle(ctx context.Context, p *Payment, status Status) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new payment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Payment) error {
	query := `
		INSERT INTO payments (id, user_id, booking_id, rental_id, amount, currency, status, provider, provider_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.BookingID, p.RentalID, p.Amount, p.Currency,
		p.Status, p.Provider, p.ProviderRef, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	var p Payment
	err := r.db.GetContext(ctx, &p, `SELECT * FROM payments WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &p, err
}

func (r *repository) GetByProviderRef(ctx context.Context, ref string) (*Payment, error) {
	var p Payment
	err := r.db.GetContext(ctx, &p, `SELECT * FROM payments WHERE provider_ref = $1`, ref)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &p, err
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Payment, error) {
	payments := []*Payment{}
	err := r.db.SelectContext(ctx, &payments,
		`SELECT * FROM payments WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	return payments, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *repository) Settle(ctx context.Context, p *Payment, status Status) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if status == StatusPaid {
		_, err = tx.ExecContext(ctx,
			`UPDATE payments SET status = $2, paid_at = NOW(), updated_at = NOW() WHERE id = $1`, p.ID, status)
	} else {
		_, err = tx.ExecContext(ctx,
			`UPDATE payments SET status = $2, updated_at = NOW() WHERE id = $1`, p.ID, status)
	}
	if err != nil {
		return err
	}

	if status == StatusPaid && p.BookingID.Valid {
		_, err = tx.ExecContext(ctx,
			`UPDATE bookings SET status = 'confirmed', updated_at = NOW() WHERE id = $1 AND status = 'pending'`,
			p.BookingID.UUID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

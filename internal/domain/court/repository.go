package court

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines court data access
type Repository interface {
	Create(ctx context.Context, c *Court) error
	GetByID(ctx context.Context, id uuid.UUID) (*Court, error)
	Update(ctx context.Context, c *Court) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByFacility(ctx context.Context, facilityID uuid.UUID, activeOnly bool) ([]*Court, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new court repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Court) error {
	query := `
		INSERT INTO courts (
			id, facility_id, name, sport, surface, indoor,
			price_per_hour, open_hour, close_hour, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.FacilityID, c.Name, c.Sport, c.Surface, c.Indoor,
		c.PricePerHour, c.OpenHour, c.CloseHour, c.IsActive,
		c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Court, error) {
	query := `SELECT * FROM courts WHERE id = $1`
	var c Court
	err := r.db.GetContext(ctx, &c, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &c, err
}

func (r *repository) Update(ctx context.Context, c *Court) error {
	query := `
		UPDATE courts
		SET name = $2, sport = $3, surface = $4, indoor = $5,
			price_per_hour = $6, open_hour = $7, close_hour = $8,
			is_active = $9, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Sport, c.Surface, c.Indoor,
		c.PricePerHour, c.OpenHour, c.CloseHour, c.IsActive,
	)
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM courts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *repository) ListByFacility(ctx context.Context, facilityID uuid.UUID, activeOnly bool) ([]*Court, error) {
	query := `SELECT * FROM courts WHERE facility_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY name ASC`

	var courts []*Court
	err := r.db.SelectContext(ctx, &courts, query, facilityID)
	return courts, err
}

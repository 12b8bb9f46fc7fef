package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines review data access. Every write also recomputes the
// facility's rating_score and reviews_count inside the same transaction,
// so the aggregate never drifts from the rows it summarizes.
type Repository interface {
	Create(ctx context.Context, rv *Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)
	GetByFacilityAndUser(ctx context.Context, facilityID, userID uuid.UUID) (*Review, error)
	Update(ctx context.Context, rv *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByFacility(ctx context.Context, facilityID uuid.UUID, page, limit int) ([]*Review, int, error)
	Summarize(ctx context.Context, facilityID uuid.UUID) (*Summary, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new review repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const reviewSelect = `
	SELECT r.id, r.facility_id, r.user_id, r.rating, r.comment,
		r.created_at, r.updated_at, u.full_name AS author_name
	FROM reviews r
	JOIN users u ON u.id = r.user_id
`

// refreshAggregate recomputes the facility's cached rating columns from
// the review rows. Must run inside the same tx as the write it follows.
func refreshAggregate(ctx context.Context, tx *sqlx.Tx, facilityID uuid.UUID) error {
	query := `
		UPDATE facilities f SET
			rating_score = COALESCE(agg.avg_rating, 0),
			reviews_count = agg.cnt
		FROM (
			SELECT ROUND(AVG(rating)::numeric, 2) AS avg_rating, COUNT(*) AS cnt
			FROM reviews WHERE facility_id = $1
		) agg
		WHERE f.id = $1
	`
	_, err := tx.ExecContext(ctx, query, facilityID)
	return err
}

func (r *repository) Create(ctx context.Context, rv *Review) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO reviews (id, facility_id, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, insert,
		rv.ID, rv.FacilityID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt, rv.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadyReviewed
		}
		return err
	}

	if err := refreshAggregate(ctx, tx, rv.FacilityID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	var rv Review
	err := r.db.GetContext(ctx, &rv, reviewSelect+` WHERE r.id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &rv, err
}

func (r *repository) GetByFacilityAndUser(ctx context.Context, facilityID, userID uuid.UUID) (*Review, error) {
	var rv Review
	err := r.db.GetContext(ctx, &rv,
		reviewSelect+` WHERE r.facility_id = $1 AND r.user_id = $2`, facilityID, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &rv, err
}

func (r *repository) Update(ctx context.Context, rv *Review) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE reviews SET rating = $2, comment = $3, updated_at = NOW() WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, rv.ID, rv.Rating, rv.Comment); err != nil {
		return err
	}

	if err := refreshAggregate(ctx, tx, rv.FacilityID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var facilityID uuid.UUID
	err = tx.GetContext(ctx, &facilityID,
		`DELETE FROM reviews WHERE id = $1 RETURNING facility_id`, id)
	if err == sql.ErrNoRows {
		return ErrReviewNotFound
	}
	if err != nil {
		return err
	}

	if err := refreshAggregate(ctx, tx, facilityID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *repository) ListByFacility(ctx context.Context, facilityID uuid.UUID, page, limit int) ([]*Review, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM reviews WHERE facility_id = $1`, facilityID)
	if err != nil {
		return nil, 0, err
	}

	query := reviewSelect + ` WHERE r.facility_id = $1 ORDER BY r.created_at DESC LIMIT $2 OFFSET $3`
	reviews := []*Review{}
	err = r.db.SelectContext(ctx, &reviews, query, facilityID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *repository) Summarize(ctx context.Context, facilityID uuid.UUID) (*Summary, error) {
	var s Summary
	err := r.db.GetContext(ctx, &s, `
		SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0) AS average, COUNT(*) AS count
		FROM reviews WHERE facility_id = $1
	`, facilityID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize reviews: %w", err)
	}

	rows := []struct {
		Rating int `db:"rating"`
		Count  int `db:"count"`
	}{}
	err = r.db.SelectContext(ctx, &rows, `
		SELECT rating, COUNT(*) AS count
		FROM reviews WHERE facility_id = $1 GROUP BY rating
	`, facilityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rating distribution: %w", err)
	}

	s.Distribution = map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, row := range rows {
		s.Distribution[row.Rating] = row.Count
	}
	return &s, nil
}

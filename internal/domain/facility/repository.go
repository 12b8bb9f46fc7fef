package facility

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Filter represents facility search filters
type Filter struct {
	Query     *string
	City      *string
	Amenity   *string
	MinRating *float64
	OwnerID   *uuid.UUID

	// IncludeUnpublished lists drafts too; only set for owner/admin queries.
	IncludeUnpublished bool
}

// SortBy represents sort options
type SortBy string

const (
	SortByNewest SortBy = "newest"
	SortByRating SortBy = "rating"
)

// Pagination for listing
type Pagination struct {
	Page  int
	Limit int
}

func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Repository defines facility data access
type Repository interface {
	Create(ctx context.Context, f *Facility) error
	GetByID(ctx context.Context, id uuid.UUID) (*Facility, error)
	Update(ctx context.Context, f *Facility) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *Filter, sortBy SortBy, pagination *Pagination) ([]*Facility, int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new facility repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *Facility) error {
	query := `
		INSERT INTO facilities (
			id, owner_id, name, description, city, address, amenities,
			phone, cover_url, rating_score, reviews_count, is_published,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14
		)
	`
	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.OwnerID, f.Name, f.Description, f.City, f.Address, f.Amenities,
		f.Phone, f.CoverURL, f.RatingScore, f.ReviewsCount, f.IsPublished,
		f.CreatedAt, f.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	query := `SELECT * FROM facilities WHERE id = $1`
	var f Facility
	err := r.db.GetContext(ctx, &f, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &f, err
}

func (r *repository) Update(ctx context.Context, f *Facility) error {
	query := `
		UPDATE facilities
		SET name = $2, description = $3, city = $4, address = $5,
			amenities = $6, phone = $7, cover_url = $8, is_published = $9,
			updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.Name, f.Description, f.City, f.Address,
		f.Amenities, f.Phone, f.CoverURL, f.IsPublished,
	)
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM facilities WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *repository) List(ctx context.Context, filter *Filter, sortBy SortBy, pagination *Pagination) ([]*Facility, int, error) {
	var conds []string
	var args []interface{}

	addArg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter != nil {
		if !filter.IncludeUnpublished {
			conds = append(conds, "is_published = true")
		}
		if filter.Query != nil {
			p := addArg("%" + *filter.Query + "%")
			conds = append(conds, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", p, p))
		}
		if filter.City != nil {
			conds = append(conds, fmt.Sprintf("LOWER(city) = LOWER(%s)", addArg(*filter.City)))
		}
		if filter.Amenity != nil {
			conds = append(conds, fmt.Sprintf("%s = ANY(amenities)", addArg(*filter.Amenity)))
		}
		if filter.MinRating != nil {
			conds = append(conds, fmt.Sprintf("rating_score >= %s", addArg(*filter.MinRating)))
		}
		if filter.OwnerID != nil {
			conds = append(conds, fmt.Sprintf("owner_id = %s", addArg(*filter.OwnerID)))
		}
	} else {
		conds = append(conds, "is_published = true")
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM facilities "+where, args...); err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if sortBy == SortByRating {
		order = "rating_score DESC, reviews_count DESC"
	}

	limitPos := addArg(pagination.Limit)
	offsetPos := addArg(pagination.Offset())
	query := fmt.Sprintf("SELECT * FROM facilities %s ORDER BY %s LIMIT %s OFFSET %s", where, order, limitPos, offsetPos)

	var facilities []*Facility
	if err := r.db.SelectContext(ctx, &facilities, query, args...); err != nil {
		return nil, 0, err
	}

	return facilities, total, nil
}

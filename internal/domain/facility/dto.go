package facility

import (
	"time"

	"github.com/google/uuid"
)

// CreateFacilityRequest for POST /facilities
type CreateFacilityRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"max=4000"`
	City        string   `json:"city" validate:"required,min=2,max=100"`
	Address     string   `json:"address" validate:"required,min=2,max=300"`
	Amenities   []string `json:"amenities" validate:"max=30,dive,min=1,max=50"`
	Phone       string   `json:"phone" validate:"omitempty,min=5,max=32"`
	CoverURL    string   `json:"cover_url" validate:"omitempty,url"`
	IsPublished *bool    `json:"is_published"`
}

// UpdateFacilityRequest for PUT /facilities/{id}
type UpdateFacilityRequest struct {
	Name        string   `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=4000"`
	City        string   `json:"city" validate:"omitempty,min=2,max=100"`
	Address     string   `json:"address" validate:"omitempty,min=2,max=300"`
	Amenities   []string `json:"amenities" validate:"omitempty,max=30,dive,min=1,max=50"`
	Phone       *string  `json:"phone" validate:"omitempty,min=5,max=32"`
	CoverURL    *string  `json:"cover_url" validate:"omitempty,url"`
	IsPublished *bool    `json:"is_published"`
}

// FacilityResponse for API responses
type FacilityResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	City         string    `json:"city"`
	Address      string    `json:"address"`
	Amenities    []string  `json:"amenities"`
	Phone        string    `json:"phone,omitempty"`
	CoverURL     string    `json:"cover_url,omitempty"`
	RatingScore  float64   `json:"rating_score"`
	ReviewsCount int       `json:"reviews_count"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    string    `json:"created_at"`
}

// FacilityResponseFromEntity converts entity to response
func FacilityResponseFromEntity(f *Facility) *FacilityResponse {
	resp := &FacilityResponse{
		ID:           f.ID,
		OwnerID:      f.OwnerID,
		Name:         f.Name,
		City:         f.City,
		Address:      f.Address,
		Amenities:    f.Amenities,
		RatingScore:  f.RatingScore,
		ReviewsCount: f.ReviewsCount,
		IsPublished:  f.IsPublished,
		CreatedAt:    f.CreatedAt.Format(time.RFC3339),
	}
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	if f.Description.Valid {
		resp.Description = f.Description.String
	}
	if f.Phone.Valid {
		resp.Phone = f.Phone.String
	}
	if f.CoverURL.Valid {
		resp.CoverURL = f.CoverURL.String
	}
	return resp
}

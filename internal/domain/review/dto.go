package review

import (
	"time"

	"github.com/google/uuid"
)

// CreateReviewRequest for POST /facilities/{id}/reviews
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// UpdateReviewRequest for PUT /reviews/{id}
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

// ReviewResponse for API responses
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	FacilityID uuid.UUID `json:"facility_id"`
	UserID     uuid.UUID `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  string    `json:"created_at"`
	UpdatedAt  string    `json:"updated_at"`
}

// SummaryResponse for GET /facilities/{id}/reviews/summary
type SummaryResponse struct {
	Average      float64     `json:"average"`
	Count        int         `json:"count"`
	Distribution map[int]int `json:"distribution"`
}

// ReviewResponseFromEntity converts entity to response
func ReviewResponseFromEntity(rv *Review) *ReviewResponse {
	resp := &ReviewResponse{
		ID:         rv.ID,
		FacilityID: rv.FacilityID,
		UserID:     rv.UserID,
		Rating:     rv.Rating,
		AuthorName: rv.AuthorName,
		CreatedAt:  rv.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  rv.UpdatedAt.Format(time.RFC3339),
	}
	if rv.Comment.Valid {
		resp.Comment = rv.Comment.String
	}
	return resp
}

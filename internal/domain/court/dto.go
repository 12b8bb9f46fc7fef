package court

import (
	"time"

	"github.com/google/uuid"
)

// CreateCourtRequest for POST /facilities/{id}/courts
type CreateCourtRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Sport        string `json:"sport" validate:"required,sport"`
	Surface      string `json:"surface" validate:"max=50"`
	Indoor       bool   `json:"indoor"`
	PricePerHour int64  `json:"price_per_hour" validate:"required,gte=0"`
	OpenHour     int    `json:"open_hour" validate:"gte=0,lte=23"`
	CloseHour    int    `json:"close_hour" validate:"required,gte=1,lte=24"`
}

// UpdateCourtRequest for PUT /courts/{id}
type UpdateCourtRequest struct {
	Name         string `json:"name" validate:"omitempty,min=1,max=100"`
	Sport        string `json:"sport" validate:"omitempty,sport"`
	Surface      *string `json:"surface" validate:"omitempty,max=50"`
	Indoor       *bool  `json:"indoor"`
	PricePerHour *int64 `json:"price_per_hour" validate:"omitempty,gte=0"`
	OpenHour     *int   `json:"open_hour" validate:"omitempty,gte=0,lte=23"`
	CloseHour    *int   `json:"close_hour" validate:"omitempty,gte=1,lte=24"`
	IsActive     *bool  `json:"is_active"`
}

// CourtResponse for API responses
type CourtResponse struct {
	ID           uuid.UUID `json:"id"`
	FacilityID   uuid.UUID `json:"facility_id"`
	Name         string    `json:"name"`
	Sport        string    `json:"sport"`
	Surface      string    `json:"surface,omitempty"`
	Indoor       bool      `json:"indoor"`
	PricePerHour int64     `json:"price_per_hour"`
	OpenHour     int       `json:"open_hour"`
	CloseHour    int       `json:"close_hour"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    string    `json:"created_at"`
}

// CourtResponseFromEntity converts entity to response
func CourtResponseFromEntity(c *Court) *CourtResponse {
	resp := &CourtResponse{
		ID:           c.ID,
		FacilityID:   c.FacilityID,
		Name:         c.Name,
		Sport:        string(c.Sport),
		Indoor:       c.Indoor,
		PricePerHour: c.PricePerHour,
		OpenHour:     c.OpenHour,
		CloseHour:    c.CloseHour,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
	if c.Surface.Valid {
		resp.Surface = c.Surface.String
	}
	return resp
}

package rental

import (
	"time"

	"github.com/google/uuid"
)

// CreateRentalRequest for POST /rentals
type CreateRentalRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	BookingID string `json:"booking_id" validate:"omitempty,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=100"`
	StartsAt  string `json:"starts_at" validate:"required"`
	EndsAt    string `json:"ends_at" validate:"required"`
}

// UpdateStatusRequest for PATCH /rentals/{id}/status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active returned cancelled"`
}

// RentalResponse for API responses
type RentalResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	UserID      uuid.UUID `json:"user_id"`
	BookingID   *string   `json:"booking_id,omitempty"`
	Quantity    int       `json:"quantity"`
	StartsAt    string    `json:"starts_at"`
	EndsAt      string    `json:"ends_at"`
	UnitCount   int       `json:"unit_count"`
	TotalPrice  int64     `json:"total_price"`
	Status      string    `json:"status"`
	ProductName string    `json:"product_name,omitempty"`
	FacilityID  uuid.UUID `json:"facility_id,omitempty"`
	CreatedAt   string    `json:"created_at"`
}

// RentalResponseFromEntity converts entity to response
func RentalResponseFromEntity(r *Rental) *RentalResponse {
	resp := &RentalResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		UserID:      r.UserID,
		Quantity:    r.Quantity,
		StartsAt:    r.StartsAt.Format(time.RFC3339),
		EndsAt:      r.EndsAt.Format(time.RFC3339),
		UnitCount:   r.UnitCount,
		TotalPrice:  r.TotalPrice,
		Status:      string(r.Status),
		ProductName: r.ProductName,
		FacilityID:  r.FacilityID,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
	if r.BookingID.Valid {
		s := r.BookingID.UUID.String()
		resp.BookingID = &s
	}
	return resp
}

package booking

import (
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequest for POST /bookings
type CreateBookingRequest struct {
	CourtID  string `json:"court_id" validate:"required,uuid"`
	StartsAt string `json:"starts_at" validate:"required"`
	EndsAt   string `json:"ends_at" validate:"required"`
	Note     string `json:"note" validate:"max=500"`
}

// UpdateStatusRequest for PATCH /bookings/{id}/status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled completed"`
}

// BookingResponse for API responses
type BookingResponse struct {
	ID           uuid.UUID `json:"id"`
	CourtID      uuid.UUID `json:"court_id"`
	UserID       uuid.UUID `json:"user_id"`
	StartsAt     string    `json:"starts_at"`
	EndsAt       string    `json:"ends_at"`
	Status       string    `json:"status"`
	TotalPrice   int64     `json:"total_price"`
	Note         string    `json:"note,omitempty"`
	CourtName    string    `json:"court_name,omitempty"`
	FacilityID   uuid.UUID `json:"facility_id,omitempty"`
	FacilityName string    `json:"facility_name,omitempty"`
	CreatedAt    string    `json:"created_at"`
}

// BookingResponseFromEntity converts entity to response
func BookingResponseFromEntity(b *Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:           b.ID,
		CourtID:      b.CourtID,
		UserID:       b.UserID,
		StartsAt:     b.StartsAt.Format(time.RFC3339),
		EndsAt:       b.EndsAt.Format(time.RFC3339),
		Status:       string(b.Status),
		TotalPrice:   b.TotalPrice,
		CourtName:    b.CourtName,
		FacilityID:   b.FacilityID,
		FacilityName: b.FacilityName,
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
	}
	if b.Note.Valid {
		resp.Note = b.Note.String
	}
	return resp
}

// Interval is a booked [start, end) window on a court
type Interval struct {
	StartsAt time.Time `db:"starts_at" json:"starts_at"`
	EndsAt   time.Time `db:"ends_at" json:"ends_at"`
}

// AvailabilityResponse for GET /courts/{id}/availability
type AvailabilityResponse struct {
	CourtID uuid.UUID  `json:"court_id"`
	Date    string     `json:"date"`
	Booked  []Interval `json:"booked"`
}

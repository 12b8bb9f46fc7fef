package payment

import (
	"time"

	"github.com/google/uuid"
)

// CreatePaymentRequest for POST /payments. Exactly one of booking_id or
// rental_id must be set.
type CreatePaymentRequest struct {
	BookingID string `json:"booking_id" validate:"omitempty,uuid"`
	RentalID  string `json:"rental_id" validate:"omitempty,uuid"`
	Provider  string `json:"provider" validate:"omitempty,oneof=mock card"`
}

// WebhookEvent is the provider callback payload
type WebhookEvent struct {
	ProviderRef string `json:"provider_ref" validate:"required"`
	Status      string `json:"status" validate:"required,oneof=succeeded failed"`
}

// PaymentResponse for API responses
type PaymentResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	BookingID   *string   `json:"booking_id,omitempty"`
	RentalID    *string   `json:"rental_id,omitempty"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Provider    string    `json:"provider"`
	ProviderRef string    `json:"provider_ref"`
	PaidAt      *string   `json:"paid_at,omitempty"`
	CreatedAt   string    `json:"created_at"`
}

// PaymentResponseFromEntity converts entity to response
func PaymentResponseFromEntity(p *Payment) *PaymentResponse {
	resp := &PaymentResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Status:      string(p.Status),
		Provider:    p.Provider,
		ProviderRef: p.ProviderRef,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
	if p.PaidAt.Valid {
		s := p.PaidAt.Time.Format(time.RFC3339)
		resp.PaidAt = &s
	}
	if p.BookingID.Valid {
		s := p.BookingID.UUID.String()
		resp.BookingID = &s
	}
	if p.RentalID.Valid {
		s := p.RentalID.UUID.String()
		resp.RentalID = &s
	}
	return resp
}

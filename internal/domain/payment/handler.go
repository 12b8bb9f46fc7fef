package payment

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/playgrid/playgrid-api/internal/domain/booking"
	"github.com/playgrid/playgrid-api/internal/domain/rental"
	"github.com/playgrid/playgrid-api/internal/middleware"
	"github.com/playgrid/playgrid-api/internal/pkg/response"
	"github.com/playgrid/playgrid-api/internal/pkg/validator"
)

// Handler handles payment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates payment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /payments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	p, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrMissingReference:
			response.BadRequest(w, "Provide exactly one of booking_id or rental_id")
		case booking.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case rental.ErrRentalNotFound:
			response.NotFound(w, "Rental not found")
		case ErrNotPaymentParty:
			response.Forbidden(w, "You can only pay for your own bookings and rentals")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, PaymentResponseFromEntity(p))
}

// Webhook handles POST /webhooks/payments. Unauthenticated, guarded by
// an HMAC signature over the raw body. Refused outright when no secret
// is configured.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	if !h.service.WebhookEnabled() {
		response.NotFound(w, "Not found")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		response.BadRequest(w, "Cannot read body")
		return
	}

	if !h.service.VerifySignature(body, r.Header.Get("X-Payment-Signature")) {
		response.Unauthorized(w, "Invalid webhook signature")
		return
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&event); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.service.HandleWebhook(r.Context(), &event); err != nil {
		switch err {
		case ErrPaymentNotFound:
			response.NotFound(w, "Unknown provider reference")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"received": "ok"})
}

// ListMy handles GET /payments/my
func (h *Handler) ListMy(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	payments, err := h.service.ListMy(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		items[i] = PaymentResponseFromEntity(p)
	}
	response.OK(w, items)
}

// GetByID handles GET /payments/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	role := middleware.GetRole(r.Context())

	p, err := h.service.GetByID(r.Context(), id, userID, role)
	if err != nil {
		switch err {
		case ErrPaymentNotFound:
			response.NotFound(w, "Payment not found")
		case ErrNotPaymentParty:
			response.Forbidden(w, "You do not have access to this payment")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, PaymentResponseFromEntity(p))
}

// Refund handles POST /payments/{id}/refund
func (h *Handler) Refund(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	p, err := h.service.Refund(r.Context(), id)
	if err != nil {
		switch err {
		case ErrPaymentNotFound:
			response.NotFound(w, "Payment not found")
		case ErrNotRefundable:
			response.Conflict(w, "Only paid payments can be refunded")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, PaymentResponseFromEntity(p))
}

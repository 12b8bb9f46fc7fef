package rental

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/playgrid/playgrid-api/internal/domain/booking"
	"github.com/playgrid/playgrid-api/internal/domain/facility"
	"github.com/playgrid/playgrid-api/internal/middleware"
	"github.com/playgrid/playgrid-api/internal/pkg/response"
	"github.com/playgrid/playgrid-api/internal/pkg/validator"
)

// Handler handles rental HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates rental handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /rentals
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	rental, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrInvalidTimeRange:
			response.BadRequest(w, "Rental period must be a future range with start before end")
		case ErrProductInactive:
			response.NotFound(w, "Product not found or inactive")
		case ErrOutOfStock:
			response.Conflict(w, "Not enough items in stock for this period")
		case booking.ErrBookingNotFound:
			response.NotFound(w, "Linked booking not found")
		case ErrNotRentalParty:
			response.Forbidden(w, "You can only link rentals to your own bookings")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, RentalResponseFromEntity(rental))
}

// ListMy handles GET /rentals/my
func (h *Handler) ListMy(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	status := Status(r.URL.Query().Get("status"))

	rentals, err := h.service.ListMy(r.Context(), userID, status)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*RentalResponse, len(rentals))
	for i, rental := range rentals {
		items[i] = RentalResponseFromEntity(rental)
	}
	response.OK(w, items)
}

// GetByID handles GET /rentals/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid rental ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	role := middleware.GetRole(r.Context())

	rental, err := h.service.GetByID(r.Context(), id, userID, role)
	if err != nil {
		switch err {
		case ErrRentalNotFound:
			response.NotFound(w, "Rental not found")
		case ErrNotRentalParty:
			response.Forbidden(w, "You do not have access to this rental")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, RentalResponseFromEntity(rental))
}

// UpdateStatus handles PATCH /rentals/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid rental ID")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	role := middleware.GetRole(r.Context())

	rental, err := h.service.UpdateStatus(r.Context(), id, userID, role, Status(req.Status))
	if err != nil {
		switch err {
		case ErrRentalNotFound:
			response.NotFound(w, "Rental not found")
		case ErrNotRentalParty:
			response.Forbidden(w, "You cannot change this rental")
		case ErrInvalidTransition:
			response.Conflict(w, "Rental cannot move to the requested status")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, RentalResponseFromEntity(rental))
}

// ListByFacility handles GET /facilities/{id}/rentals
func (h *Handler) ListByFacility(w http.ResponseWriter, r *http.Request) {
	facilityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid facility ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	role := middleware.GetRole(r.Context())
	status := Status(r.URL.Query().Get("status"))

	rentals, err := h.service.ListByFacility(r.Context(), facilityID, userID, role, status)
	if err != nil {
		switch err {
		case facility.ErrFacilityNotFound:
			response.NotFound(w, "Facility not found")
		case ErrNotRentalParty:
			response.Forbidden(w, "Only the facility owner can view its rentals")
		default:
			response.InternalError(w)
		}
		return
	}

	items := make([]*RentalResponse, len(rentals))
	for i, rental := range rentals {
		items[i] = RentalResponseFromEntity(rental)
	}
	response.OK(w, items)
}

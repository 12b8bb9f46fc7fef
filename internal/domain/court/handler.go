package court

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/playgrid/playgrid-api/internal/domain/facility"
	"github.com/playgrid/playgrid-api/internal/middleware"
	"github.com/playgrid/playgrid-api/internal/pkg/response"
	"github.com/playgrid/playgrid-api/internal/pkg/validator"
)

// Handler handles court HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates court handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /facilities/{id}/courts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	facilityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid facility ID")
		return
	}

	var req CreateCourtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	c, err := h.service.Create(r.Context(), facilityID, userID, &req)
	if err != nil {
		switch err {
		case facility.ErrFacilityNotFound:
			response.NotFound(w, "Facility not found")
		case ErrNotFacilityOwner:
			response.Forbidden(w, "You can only add courts to your own facilities")
		case ErrInvalidHours:
			response.ValidationError(w, map[string]string{"open_hour": "open_hour must be before close_hour"})
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, CourtResponseFromEntity(c))
}

// ListByFacility handles GET /facilities/{id}/courts
func (h *Handler) ListByFacility(w http.ResponseWriter, r *http.Request) {
	facilityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid facility ID")
		return
	}

	// Owners see inactive courts too
	activeOnly := middleware.GetRole(r.Context()) == ""

	courts, err := h.service.ListByFacility(r.Context(), facilityID, activeOnly)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*CourtResponse, len(courts))
	for i, c := range courts {
		items[i] = CourtResponseFromEntity(c)
	}

	response.OK(w, items)
}

// GetByID handles GET /courts/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid court ID")
		return
	}

	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Court not found")
		return
	}

	response.OK(w, CourtResponseFromEntity(c))
}

// Update handles PUT /courts/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid court ID")
		return
	}

	var req UpdateCourtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	c, err := h.service.Update(r.Context(), id, userID, &req)
	if err != nil {
		switch err {
		case ErrCourtNotFound, facility.ErrFacilityNotFound:
			response.NotFound(w, "Court not found")
		case ErrNotFacilityOwner:
			response.Forbidden(w, "You can only edit courts of your own facilities")
		case ErrInvalidHours:
			response.ValidationError(w, map[string]string{"open_hour": "open_hour must be before close_hour"})
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, CourtResponseFromEntity(c))
}

// Delete handles DELETE /courts/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid court ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		switch err {
		case ErrCourtNotFound, facility.ErrFacilityNotFound:
			response.NotFound(w, "Court not found")
		case ErrNotFacilityOwner:
			response.Forbidden(w, "You can only delete courts of your own facilities")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

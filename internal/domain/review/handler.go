package review

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/playgrid/playgrid-api/internal/domain/facility"
	"github.com/playgrid/playgrid-api/internal/middleware"
	"github.com/playgrid/playgrid-api/internal/pkg/response"
	"github.com/playgrid/playgrid-api/internal/pkg/validator"
)

// Handler handles review HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates review handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /facilities/{id}/reviews
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	facilityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid facility ID")
		return
	}

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	rv, err := h.service.Create(r.Context(), facilityID, userID, &req)
	if err != nil {
		switch err {
		case facility.ErrFacilityNotFound:
			response.NotFound(w, "Facility not found")
		case ErrNoCompletedStay:
			response.Forbidden(w, "You can only review facilities you have visited")
		case ErrAlreadyReviewed:
			response.Conflict(w, "You have already reviewed this facility")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, ReviewResponseFromEntity(rv))
}

// ListByFacility handles GET /facilities/{id}/reviews
func (h *Handler) ListByFacility(w http.ResponseWriter, r *http.Request) {
	facilityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid facility ID")
		return
	}

	page, limit := 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	reviews, total, err := h.service.ListByFacility(r.Context(), facilityID, page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*ReviewResponse, len(reviews))
	for i, rv := range reviews {
		items[i] = ReviewResponseFromEntity(rv)
	}

	response.WithMeta(w, items, response.NewMeta(total, page, limit))
}

// Summary handles GET /facilities/{id}/reviews/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	facilityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid facility ID")
		return
	}

	s, err := h.service.Summarize(r.Context(), facilityID)
	if err != nil {
		switch err {
		case facility.ErrFacilityNotFound:
			response.NotFound(w, "Facility not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, &SummaryResponse{
		Average:      s.Average,
		Count:        s.Count,
		Distribution: s.Distribution,
	})
}

// Update handles PUT /reviews/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid review ID")
		return
	}

	var req UpdateReviewRequest
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

	rv, err := h.service.Update(r.Context(), id, userID, role, &req)
	if err != nil {
		switch err {
		case ErrReviewNotFound:
			response.NotFound(w, "Review not found")
		case ErrNotReviewAuthor:
			response.Forbidden(w, "You can only edit your own reviews")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ReviewResponseFromEntity(rv))
}

// Delete handles DELETE /reviews/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid review ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	role := middleware.GetRole(r.Context())

	if err := h.service.Delete(r.Context(), id, userID, role); err != nil {
		switch err {
		case ErrReviewNotFound:
			response.NotFound(w, "Review not found")
		case ErrNotReviewAuthor:
			response.Forbidden(w, "You can only delete your own reviews")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

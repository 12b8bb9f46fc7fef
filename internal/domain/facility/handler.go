package facility

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/playgrid/playgrid-api/internal/middleware"
	"github.com/playgrid/playgrid-api/internal/pkg/response"
	"github.com/playgrid/playgrid-api/internal/pkg/validator"
)

// Handler handles facility HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates facility handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /facilities
// @Summary Create a facility
// @Tags Facility
// @Security BearerAuth
// @Success 201 {object} response.Response{data=FacilityResponse}
// @Router /facilities [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	f, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrOnlyOwnersAllowed:
			response.Forbidden(w, "Only facility owners can create facilities")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, FacilityResponseFromEntity(f))
}

// GetByID handles GET /facilities/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid facility ID")
		return
	}

	viewerID := middleware.GetUserID(r.Context())
	f, err := h.service.GetByID(r.Context(), id, viewerID)
	if err != nil {
		response.NotFound(w, "Facility not found")
		return
	}

	response.OK(w, FacilityResponseFromEntity(f))
}

// Update handles PUT /facilities/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid facility ID")
		return
	}

	var req UpdateFacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	f, err := h.service.Update(r.Context(), id, userID, &req)
	if err != nil {
		switch err {
		case ErrFacilityNotFound:
			response.NotFound(w, "Facility not found")
		case ErrNotFacilityOwner:
			response.Forbidden(w, "You can only edit your own facilities")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, FacilityResponseFromEntity(f))
}

// Delete handles DELETE /facilities/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid facility ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		switch err {
		case ErrFacilityNotFound:
			response.NotFound(w, "Facility not found")
		case ErrNotFacilityOwner:
			response.Forbidden(w, "You can only delete your own facilities")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// List handles GET /facilities
// @Summary List facilities
// @Tags Facility
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param city query string false "City"
// @Param amenity query string false "Amenity"
// @Router /facilities [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := &Filter{}
	query := r.URL.Query()

	if q := query.Get("q"); q != "" {
		filter.Query = &q
	}
	if city := query.Get("city"); city != "" {
		filter.City = &city
	}
	if amenity := query.Get("amenity"); amenity != "" {
		filter.Amenity = &amenity
	}
	if minRating := query.Get("min_rating"); minRating != "" {
		if v, err := strconv.ParseFloat(minRating, 64); err == nil && v >= 0 && v <= 5 {
			filter.MinRating = &v
		}
	}

	sortBy := SortByNewest
	if query.Get("sort") == "rating" {
		sortBy = SortByRating
	}

	page, limit := parsePagination(query)
	pagination := &Pagination{Page: page, Limit: limit}

	facilities, total, err := h.service.List(r.Context(), filter, sortBy, pagination)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*FacilityResponse, len(facilities))
	for i, f := range facilities {
		items[i] = FacilityResponseFromEntity(f)
	}

	response.WithMeta(w, items, response.NewMeta(total, page, limit))
}

// ListMy handles GET /facilities/my
func (h *Handler) ListMy(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	page, limit := parsePagination(r.URL.Query())
	pagination := &Pagination{Page: page, Limit: limit}

	facilities, total, err := h.service.ListMy(r.Context(), userID, pagination)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*FacilityResponse, len(facilities))
	for i, f := range facilities {
		items[i] = FacilityResponseFromEntity(f)
	}

	response.WithMeta(w, items, response.NewMeta(total, page, limit))
}

func parsePagination(query url.Values) (page, limit int) {
	page = 1
	limit = 20
	if p := query.Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if l := query.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	return page, limit
}

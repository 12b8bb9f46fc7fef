package booking

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/playgrid/playgrid-api/internal/domain/court"
	"github.com/playgrid/playgrid-api/internal/domain/facility"
	"github.com/playgrid/playgrid-api/internal/middleware"
	"github.com/playgrid/playgrid-api/internal/pkg/response"
	"github.com/playgrid/playgrid-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /bookings
// @Summary Book a court slot
// @Tags Booking
// @Security BearerAuth
// @Success 201 {object} response.Response{data=BookingResponse}
// @Failure 400,409,422,500 {object} response.Response
// @Router /bookings [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	courtID, _ := uuid.Parse(req.CourtID)
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		response.ValidationError(w, map[string]string{"starts_at": "Invalid RFC3339 timestamp"})
		return
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		response.ValidationError(w, map[string]string{"ends_at": "Invalid RFC3339 timestamp"})
		return
	}

	userID := middleware.GetUserID(r.Context())
	b, err := h.service.Create(r.Context(), userID, courtID, startsAt, endsAt, req.Note)
	if err != nil {
		switch err {
		case ErrCourtInactive:
			response.NotFound(w, "Court not found or inactive")
		case ErrInvalidTimeRange:
			response.ValidationError(w, map[string]string{"starts_at": "Slot must be in the future, aligned to 30 minutes and end after start"})
		case ErrOutsideOpenHours:
			response.ValidationError(w, map[string]string{"starts_at": "Slot is outside court opening hours"})
		case ErrTimeSlotTaken:
			response.Conflict(w, "Time slot is already booked")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, BookingResponseFromEntity(b))
}

// GetByID handles GET /bookings/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	b, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		switch err {
		case ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case ErrNotBookingParty:
			response.Forbidden(w, "You are not a party to this booking")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, BookingResponseFromEntity(b))
}

// UpdateStatus handles PATCH /bookings/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
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
	b, err := h.service.UpdateStatus(r.Context(), id, userID, Status(req.Status))
	if err != nil {
		switch err {
		case ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case ErrNotBookingParty:
			response.Forbidden(w, "You are not allowed to change this booking")
		case ErrInvalidTransition:
			response.Conflict(w, "Invalid status transition")
		case ErrCancelTooLate:
			response.Conflict(w, "Booking can no longer be cancelled")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, BookingResponseFromEntity(b))
}

// ListMy handles GET /bookings/my
func (h *Handler) ListMy(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	query := r.URL.Query()

	var status *Status
	if s := query.Get("status"); s != "" {
		st := Status(s)
		status = &st
	}

	page, limit := parsePagination(query)
	bookings, total, err := h.service.ListMy(r.Context(), userID, status, &Pagination{Page: page, Limit: limit})
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = BookingResponseFromEntity(b)
	}

	response.WithMeta(w, items, response.NewMeta(total, page, limit))
}

// ListByFacility handles GET /facilities/{id}/bookings
func (h *Handler) ListByFacility(w http.ResponseWriter, r *http.Request) {
	facilityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid facility ID")
		return
	}

	query := r.URL.Query()
	filter := &Filter{}
	if s := query.Get("status"); s != "" {
		st := Status(s)
		filter.Status = &st
	}
	if d := query.Get("date"); d != "" {
		if day, err := time.Parse("2006-01-02", d); err == nil {
			dayEnd := day.Add(24 * time.Hour)
			filter.DateFrom = &day
			filter.DateTo = &dayEnd
		}
	}

	userID := middleware.GetUserID(r.Context())
	page, limit := parsePagination(query)
	bookings, total, err := h.service.ListByFacility(r.Context(), facilityID, userID, filter, &Pagination{Page: page, Limit: limit})
	if err != nil {
		switch err {
		case facility.ErrNotFacilityOwner:
			response.Forbidden(w, "You can only view bookings of your own facilities")
		default:
			response.InternalError(w)
		}
		return
	}

	items := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = BookingResponseFromEntity(b)
	}

	response.WithMeta(w, items, response.NewMeta(total, page, limit))
}

// Availability handles GET /courts/{id}/availability
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	courtID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid court ID")
		return
	}

	day := time.Now()
	if d := r.URL.Query().Get("date"); d != "" {
		day, err = time.Parse("2006-01-02", d)
		if err != nil {
			response.BadRequest(w, "Invalid date, expected YYYY-MM-DD")
			return
		}
	}

	avail, err := h.service.Availability(r.Context(), courtID, day)
	if err != nil {
		if err == court.ErrCourtNotFound {
			response.NotFound(w, "Court not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, avail)
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

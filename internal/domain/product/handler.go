package product

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

// Handler handles product HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates product handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /facilities/{id}/products
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	facilityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid facility ID")
		return
	}

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	p, err := h.service.Create(r.Context(), facilityID, userID, &req)
	if err != nil {
		switch err {
		case facility.ErrFacilityNotFound:
			response.NotFound(w, "Facility not found")
		case ErrNotFacilityOwner:
			response.Forbidden(w, "You can only add products to your own facilities")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, ProductResponseFromEntity(p))
}

// ListByFacility handles GET /facilities/{id}/products
func (h *Handler) ListByFacility(w http.ResponseWriter, r *http.Request) {
	facilityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid facility ID")
		return
	}

	activeOnly := middleware.GetRole(r.Context()) == ""

	products, err := h.service.ListByFacility(r.Context(), facilityID, activeOnly)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*ProductResponse, len(products))
	for i, p := range products {
		items[i] = ProductResponseFromEntity(p)
	}

	response.OK(w, items)
}

// GetByID handles GET /products/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return
	}

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Product not found")
		return
	}

	response.OK(w, ProductResponseFromEntity(p))
}

// Update handles PUT /products/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	p, err := h.service.Update(r.Context(), id, userID, &req)
	if err != nil {
		switch err {
		case ErrProductNotFound, facility.ErrFacilityNotFound:
			response.NotFound(w, "Product not found")
		case ErrNotFacilityOwner:
			response.Forbidden(w, "You can only edit products of your own facilities")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ProductResponseFromEntity(p))
}

// Delete handles DELETE /products/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		switch err {
		case ErrProductNotFound, facility.ErrFacilityNotFound:
			response.NotFound(w, "Product not found")
		case ErrNotFacilityOwner:
			response.Forbidden(w, "You can only delete products of your own facilities")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

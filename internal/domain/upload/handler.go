package upload

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/playgrid/playgrid-api/internal/middleware"
	"github.com/playgrid/playgrid-api/internal/pkg/response"
	"github.com/playgrid/playgrid-api/internal/pkg/validator"
)

// Handler handles upload HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates upload handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Presign handles POST /files/presign
func (h *Handler) Presign(w http.ResponseWriter, r *http.Request) {
	var req PresignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	u, presigned, err := h.service.Presign(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrUnsupportedType:
			response.BadRequest(w, "Only jpeg, png and webp images are accepted")
		case ErrPresignUnavailable:
			response.Error(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "File storage is not configured")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, &PresignResponse{
		ID:        u.ID,
		UploadURL: presigned.UploadURL,
		Key:       presigned.Key,
		PublicURL: h.service.PublicURL(presigned.Key),
		ExpiresAt: presigned.ExpiresAt.Format(time.RFC3339),
	})
}

// GetByID handles GET /files/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid upload ID")
		return
	}

	u, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Upload not found")
		return
	}

	response.OK(w, UploadResponseFromEntity(u, h.service.PublicURL(u.Key)))
}

// Delete handles DELETE /files/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid upload ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	role := middleware.GetRole(r.Context())

	if err := h.service.Delete(r.Context(), id, userID, role); err != nil {
		switch err {
		case ErrUploadNotFound:
			response.NotFound(w, "Upload not found")
		case ErrNotUploadOwner:
			response.Forbidden(w, "You can only delete your own uploads")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

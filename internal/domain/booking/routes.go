package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the /bookings router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Post("/", h.Create)
	r.Get("/my", h.ListMy)
	r.Get("/{id}", h.GetByID)
	r.Patch("/{id}/status", h.UpdateStatus)

	return r
}

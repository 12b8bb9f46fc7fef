package facility

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns facility router. nested registers sub-resources
// (courts, products, bookings, reviews) under /facilities/{id}.
func (h *Handler) Routes(authMiddleware, requireOwner func(http.Handler) http.Handler, nested func(r chi.Router)) chi.Router {
	r := chi.NewRouter()

	// Public routes
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.With(requireOwner).Post("/", h.Create)
		r.With(requireOwner).Get("/my", h.ListMy)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	if nested != nil {
		nested(r)
	}

	return r
}

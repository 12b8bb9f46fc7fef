package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the /payments router
func (h *Handler) Routes(authMiddleware, requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/", h.Create)
	r.Get("/my", h.ListMy)
	r.Get("/{id}", h.GetByID)

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Post("/{id}/refund", h.Refund)
	})

	return r
}

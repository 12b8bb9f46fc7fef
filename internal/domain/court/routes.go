package court

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the /courts router. The availability handler lives in
// the booking domain but hangs off the court resource.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, availability http.HandlerFunc) chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}", h.GetByID)
	r.Get("/{id}/availability", availability)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}

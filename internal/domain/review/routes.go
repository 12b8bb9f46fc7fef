package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the /reviews router for edits to existing reviews.
// Creation and listing hang off the facility routes.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

package setup

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/playgrid/playgrid-api/internal/pkg/response"
)

// Handler exposes ad-hoc database setup endpoints for fresh
// environments. Guarded by a shared token and unavailable in production.
type Handler struct {
	db       *sqlx.DB
	token    string
	disabled bool
}

// NewHandler creates setup handler. Pass disabled=true in production.
func NewHandler(db *sqlx.DB, token string, disabled bool) *Handler {
	return &Handler{db: db, token: token, disabled: disabled}
}

func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) bool {
	if h.disabled || h.token == "" {
		response.NotFound(w, "Not found")
		return false
	}
	got := r.Header.Get("X-Setup-Token")
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) != 1 {
		response.Unauthorized(w, "Invalid setup token")
		return false
	}
	return true
}

// Schema handles POST /api/admin/setup/schema
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	if _, err := h.db.ExecContext(r.Context(), schemaDDL); err != nil {
		log.Error().Err(err).Msg("schema setup failed")
		response.InternalError(w)
		return
	}

	log.Info().Msg("database schema created")
	response.OK(w, map[string]string{"status": "schema created"})
}

// Reset handles POST /api/admin/setup/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	if _, err := h.db.ExecContext(r.Context(), resetDDL); err != nil {
		log.Error().Err(err).Msg("schema reset failed")
		response.InternalError(w)
		return
	}
	if _, err := h.db.ExecContext(r.Context(), schemaDDL); err != nil {
		log.Error().Err(err).Msg("schema rebuild failed")
		response.InternalError(w)
		return
	}

	log.Warn().Msg("database schema reset")
	response.OK(w, map[string]string{"status": "schema reset"})
}

// Routes returns the /setup router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/schema", h.Schema)
	r.Post("/reset", h.Reset)
	return r
}

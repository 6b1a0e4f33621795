package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/internal/service"
)

// HealthHandler serves book health reports and the onboarding data they
// depend on
type HealthHandler struct {
	responder
	health service.HealthReporter
}

// NewHealthHandler creates a new book health HTTP handler
func NewHealthHandler(health service.HealthReporter, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		responder: responder{logger: logger.With().Str("component", "health_handler").Logger()},
		health:    health,
	}
}

// RegisterRoutes registers book health routes
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health/{user}/{book}", h.handleReport)
	r.Post("/profiles", h.handleUpsertProfile)
	r.Post("/limit-events", h.handleLimitEvent)
}

// handleReport handles GET /api/v1/health/{user}/{book}
func (h *HealthHandler) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.health.Report(r.Context(), chi.URLParam(r, "user"), chi.URLParam(r, "book"))
	if err != nil {
		h.serviceError(w, err, "compute book health")
		return
	}
	h.jsonResponse(w, http.StatusOK, report)
}

// handleUpsertProfile handles POST /api/v1/profiles
func (h *HealthHandler) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	var p models.UserBookProfile
	if !h.decode(w, r, &p) {
		return
	}
	if err := h.health.UpsertProfile(r.Context(), &p); err != nil {
		h.serviceError(w, err, "store profile")
		return
	}
	h.jsonResponse(w, http.StatusOK, p)
}

// handleLimitEvent handles POST /api/v1/limit-events
func (h *HealthHandler) handleLimitEvent(w http.ResponseWriter, r *http.Request) {
	var ev models.LimitEvent
	if !h.decode(w, r, &ev) {
		return
	}
	if err := h.health.RecordLimit(r.Context(), &ev); err != nil {
		h.serviceError(w, err, "record limit event")
		return
	}
	h.jsonResponse(w, http.StatusCreated, ev)
}

package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/internal/service"
)

// ParlayHandler serves the advisory and on-demand verification
type ParlayHandler struct {
	responder
	advisor service.Advisor
}

// NewParlayHandler creates a new parlay HTTP handler
func NewParlayHandler(advisor service.Advisor, logger zerolog.Logger) *ParlayHandler {
	return &ParlayHandler{
		responder: responder{logger: logger.With().Str("component", "parlay_handler").Logger()},
		advisor:   advisor,
	}
}

// RegisterRoutes registers parlay routes
func (h *ParlayHandler) RegisterRoutes(r chi.Router) {
	// GET /api/v1/parlays?user_id=&profiles=&books=&limit= - Advisory
	r.Get("/parlays", h.handleAdvisory)

	// GET /api/v1/parlays/{id} - One parlay
	r.Get("/parlays/{id}", h.handleGetParlay)

	// POST /api/v1/parlays/{id}/verify?user_id= - Re-quote and update
	r.Post("/parlays/{id}/verify", h.handleVerify)
}

// handleAdvisory handles GET /api/v1/parlays
func (h *ParlayHandler) handleAdvisory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := models.AdvisoryRequest{
		UserID: strings.TrimSpace(q.Get("user_id")),
	}
	for _, raw := range splitList(q.Get("profiles")) {
		p, err := models.ParseRiskProfile(raw)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Profiles = append(req.Profiles, p)
	}
	for _, book := range splitList(q.Get("books")) {
		req.Sportsbooks = append(req.Sportsbooks, strings.ToLower(book))
	}
	limit, ok := parseLimit(q.Get("limit"))
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	req.Limit = limit

	parlays, err := h.advisor.Advisory(r.Context(), req)
	if err != nil {
		h.serviceError(w, err, "retrieve parlays")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"count":   len(parlays),
		"parlays": parlays,
	})
}

// handleGetParlay handles GET /api/v1/parlays/{id}
func (h *ParlayHandler) handleGetParlay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.advisor.GetParlay(r.Context(), id)
	if err != nil {
		h.serviceError(w, err, "retrieve parlay")
		return
	}
	h.jsonResponse(w, http.StatusOK, p)
}

// handleVerify handles POST /api/v1/parlays/{id}/verify
func (h *ParlayHandler) handleVerify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		h.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	result, err := h.advisor.Verify(r.Context(), userID, id)
	if err != nil {
		h.serviceError(w, err, "verify parlay")
		return
	}
	h.jsonResponse(w, http.StatusOK, result)
}

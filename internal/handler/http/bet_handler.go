package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/internal/service"
)

// BetHandler records user bets and their completion
type BetHandler struct {
	responder
	tracker service.BetTracker
}

// NewBetHandler creates a new bet HTTP handler
func NewBetHandler(tracker service.BetTracker, logger zerolog.Logger) *BetHandler {
	return &BetHandler{
		responder: responder{logger: logger.With().Str("component", "bet_handler").Logger()},
		tracker:   tracker,
	}
}

// RegisterRoutes registers bet routes
func (h *BetHandler) RegisterRoutes(r chi.Router) {
	r.Post("/bets", h.handleRecordBet)
	r.Get("/bets/{id}", h.handleGetBet)
	r.Post("/bets/{id}/closing", h.handleClosing)
	r.Post("/bets/{id}/result", h.handleResult)
}

// RecordBetResponse carries the stored bet and, every N-th bet, a fresh
// book health report
type RecordBetResponse struct {
	Bet    *models.TrackedBet   `json:"bet"`
	Health *models.HealthReport `json:"health,omitempty"`
}

// handleRecordBet handles POST /api/v1/bets
func (h *BetHandler) handleRecordBet(w http.ResponseWriter, r *http.Request) {
	var bet models.TrackedBet
	if !h.decode(w, r, &bet) {
		return
	}

	report, err := h.tracker.RecordBet(r.Context(), &bet)
	if err != nil {
		h.serviceError(w, err, "record bet")
		return
	}
	h.jsonResponse(w, http.StatusCreated, RecordBetResponse{Bet: &bet, Health: report})
}

// handleGetBet handles GET /api/v1/bets/{id}
func (h *BetHandler) handleGetBet(w http.ResponseWriter, r *http.Request) {
	bet, err := h.tracker.GetBet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, err, "retrieve bet")
		return
	}
	h.jsonResponse(w, http.StatusOK, bet)
}

// handleClosing handles POST /api/v1/bets/{id}/closing
func (h *BetHandler) handleClosing(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ClosingOdds float64 `json:"closing_odds"`
	}
	if !h.decode(w, r, &body) {
		return
	}

	bet, err := h.tracker.SetClosingOdds(r.Context(), chi.URLParam(r, "id"), body.ClosingOdds)
	if err != nil {
		h.serviceError(w, err, "store closing odds")
		return
	}
	h.jsonResponse(w, http.StatusOK, bet)
}

// handleResult handles POST /api/v1/bets/{id}/result
func (h *BetHandler) handleResult(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Result models.BetResult `json:"result"`
	}
	if !h.decode(w, r, &body) {
		return
	}

	bet, err := h.tracker.SettleBet(r.Context(), chi.URLParam(r, "id"), body.Result)
	if err != nil {
		h.serviceError(w, err, "settle bet")
		return
	}
	h.jsonResponse(w, http.StatusOK, bet)
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/ingest"
	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/internal/service"
)

// DropHandler accepts structured, text and OCR drops
type DropHandler struct {
	responder
	ingester service.Ingester
}

// NewDropHandler creates a new drop HTTP handler
func NewDropHandler(ingester service.Ingester, logger zerolog.Logger) *DropHandler {
	return &DropHandler{
		responder: responder{logger: logger.With().Str("component", "drop_handler").Logger()},
		ingester:  ingester,
	}
}

// RegisterRoutes registers drop routes
func (h *DropHandler) RegisterRoutes(r chi.Router) {
	// POST /api/v1/drops - Ingest one drop
	r.Post("/drops", h.handleDrop)
}

// DropResponse is the reply to a drop push
type DropResponse struct {
	OK            bool   `json:"ok"`
	EventID       string `json:"event_id,omitempty"`
	OpportunityID string `json:"opportunity_id,omitempty"`
	Duplicate     bool   `json:"duplicate,omitempty"`
	Error         string `json:"error,omitempty"`
}

// handleDrop handles POST /api/v1/drops
func (h *DropHandler) handleDrop(w http.ResponseWriter, r *http.Request) {
	var payload models.DropPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		h.logger.Debug().Err(err).Msg("invalid drop body")
		h.jsonResponse(w, http.StatusBadRequest, DropResponse{OK: false, Error: "invalid request body"})
		return
	}

	result, err := h.ingester.Ingest(r.Context(), &payload)
	if err != nil {
		h.logger.Error().Err(err).Str("event_id", payload.EventID).Msg("failed to ingest drop")
		h.jsonResponse(w, http.StatusServiceUnavailable, DropResponse{OK: false, Error: "ingestion unavailable, retry"})
		return
	}

	switch result.Status {
	case ingest.StatusAccepted:
		h.jsonResponse(w, http.StatusOK, DropResponse{
			OK:            true,
			EventID:       payload.EventID,
			OpportunityID: result.Opportunity.ID,
		})
	case ingest.StatusDuplicate:
		h.jsonResponse(w, http.StatusOK, DropResponse{
			OK:            true,
			EventID:       payload.EventID,
			OpportunityID: result.ExistingID,
			Duplicate:     true,
		})
	default:
		h.logger.Info().
			Str("event_id", payload.EventID).
			Str("reason", result.Reason).
			Msg("drop rejected")
		h.jsonResponse(w, http.StatusUnprocessableEntity, DropResponse{OK: false, Error: result.Reason})
	}
}

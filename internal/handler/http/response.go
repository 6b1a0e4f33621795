package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/repository"
	"github.com/cypherlabdev/parlay-intel-service/internal/service"
)

// maxBodyBytes bounds request bodies; OCR drops are the largest
const maxBodyBytes = 1 << 20

// responder holds the JSON helpers shared by every handler
type responder struct {
	logger zerolog.Logger
}

// jsonResponse writes a JSON response
func (h responder) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h responder) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}

// serviceError maps a service error onto a status code
func (h responder) serviceError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		h.errorResponse(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrCooldown):
		h.errorResponse(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, service.ErrInactive):
		h.errorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrDuplicate):
		h.errorResponse(w, http.StatusConflict, "already exists")
	default:
		h.logger.Error().Err(err).Msg("failed to " + action)
		h.errorResponse(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// decode reads a JSON body into v
func (h responder) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// splitList parses a comma separated query parameter
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLimit(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

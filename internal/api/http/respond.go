package http

import (
	"encoding/json"
	"net/http"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// respondError maps the business error taxonomy onto HTTP statuses:
// validation 400, not-found 404, conflict 409, everything else 500.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch domain.KindOf(err) {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindConflict:
		status = http.StatusConflict
	default:
		logger.Error("Unexpected error", "error", err)
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

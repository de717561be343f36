package http

import (
	"net/http"

	"toolrent-backend/internal/service"
)

// KardexHandler exposes the movement ledger over REST. All endpoints are
// read-only; entries are written exclusively by the engine.
type KardexHandler struct {
	kardex service.KardexService
}

func NewKardexHandler(kardex service.KardexService) *KardexHandler {
	return &KardexHandler{kardex: kardex}
}

func (h *KardexHandler) GetAllMovements(w http.ResponseWriter, r *http.Request) {
	entries, err := h.kardex.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *KardexHandler) GetMovementsByTool(w http.ResponseWriter, r *http.Request) {
	toolID, err := pathID(r, "toolId")
	if err != nil {
		respondError(w, err)
		return
	}

	entries, err := h.kardex.ListByTool(r.Context(), toolID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *KardexHandler) GetMovementsByDateRange(w http.ResponseWriter, r *http.Request) {
	start, err := queryDateTime(r, "start")
	if err != nil {
		respondError(w, err)
		return
	}
	end, err := queryDateTime(r, "end")
	if err != nil {
		respondError(w, err)
		return
	}

	entries, err := h.kardex.ListByDateRange(r.Context(), start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *KardexHandler) GetFilteredMovements(w http.ResponseWriter, r *http.Request) {
	toolID, err := pathID(r, "toolId")
	if err != nil {
		respondError(w, err)
		return
	}
	start, err := queryDateTime(r, "start")
	if err != nil {
		respondError(w, err)
		return
	}
	end, err := queryDateTime(r, "end")
	if err != nil {
		respondError(w, err)
		return
	}

	entries, err := h.kardex.ListFiltered(r.Context(), toolID, start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/service"
)

// ToolHandler exposes the inventory ledger over REST.
type ToolHandler struct {
	inventory service.InventoryService
}

func NewToolHandler(inventory service.InventoryService) *ToolHandler {
	return &ToolHandler{inventory: inventory}
}

type registerToolRequest struct {
	Name                  string `json:"name"`
	Category              string `json:"category"`
	ReplacementValueCents int64  `json:"replacement_value_cents"`
	RepairValueCents      int64  `json:"repair_value_cents"`
	DailyRateCents        int64  `json:"daily_rate_cents"`
	DailyLateRateCents    int64  `json:"daily_late_rate_cents"`
}

func (h *ToolHandler) CreateTool(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	quantity, err := strconv.Atoi(vars["quantity"])
	if err != nil {
		respondError(w, domain.ValidationError("invalid quantity: %s", vars["quantity"]))
		return
	}

	var req registerToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ValidationError("invalid request body: %v", err))
		return
	}

	template := &domain.ToolUnit{
		Name:                  req.Name,
		Category:              req.Category,
		ReplacementValueCents: req.ReplacementValueCents,
		RepairValueCents:      req.RepairValueCents,
		DailyRateCents:        req.DailyRateCents,
		DailyLateRateCents:    req.DailyLateRateCents,
	}
	unit, err := h.inventory.RegisterUnits(r.Context(), template, quantity, vars["rut"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, unit)
}

func (h *ToolHandler) GetTools(w http.ResponseWriter, r *http.Request) {
	units, err := h.inventory.ListUnits(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, units)
}

func (h *ToolHandler) GetTool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "toolId")
	if err != nil {
		respondError(w, err)
		return
	}
	unit, err := h.inventory.GetUnit(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, unit)
}

func (h *ToolHandler) GetAvailableTools(w http.ResponseWriter, r *http.Request) {
	units, err := h.inventory.ListAvailable(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, units)
}

func (h *ToolHandler) GetToolsByModel(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	units, err := h.inventory.ListByModel(r.Context(), query.Get("name"), query.Get("category"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, units)
}

func (h *ToolHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	stock, err := h.inventory.StockSummary(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stock)
}

type updateToolRequest struct {
	registerToolRequest
	Status domain.UnitStatus `json:"status"`
}

func (h *ToolHandler) UpdateTool(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := pathID(r, "toolId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req updateToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ValidationError("invalid request body: %v", err))
		return
	}

	details := &domain.ToolUnit{
		Name:                  req.Name,
		Category:              req.Category,
		ReplacementValueCents: req.ReplacementValueCents,
		RepairValueCents:      req.RepairValueCents,
		DailyRateCents:        req.DailyRateCents,
		DailyLateRateCents:    req.DailyLateRateCents,
		Status:                req.Status,
	}
	unit, err := h.inventory.UpdateUnit(r.Context(), id, details, vars["rut"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, unit)
}

func (h *ToolHandler) DecommissionTool(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := pathID(r, "toolId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.inventory.Decommission(r.Context(), id, vars["rut"]); err != nil {
		respondError(w, err)
		return
	}

	unit, err := h.inventory.GetUnit(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, unit)
}

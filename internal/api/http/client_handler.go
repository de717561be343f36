package http

import (
	"encoding/json"
	"net/http"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/service"
)

// ClientHandler exposes client records and eligibility views over REST.
type ClientHandler struct {
	clients service.ClientService
}

func NewClientHandler(clients service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var client domain.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		respondError(w, domain.ValidationError("invalid request body: %v", err))
		return
	}

	created, err := h.clients.Register(r.Context(), &client)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, created)
}

func (h *ClientHandler) GetClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	client, err := h.clients.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var details domain.Client
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		respondError(w, domain.ValidationError("invalid request body: %v", err))
		return
	}

	client, err := h.clients.Update(r.Context(), id, &details)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

type clientDebtsResponse struct {
	UnpaidFines  bool `json:"unpaid_fines"`
	OverdueLoans bool `json:"overdue_loans"`
}

func (h *ClientHandler) GetClientDebts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	unpaid, err := h.clients.HasUnpaidFines(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	overdue, err := h.clients.HasOverdueLoans(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, clientDebtsResponse{UnpaidFines: unpaid, OverdueLoans: overdue})
}

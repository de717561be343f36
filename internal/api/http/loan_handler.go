package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/service"
)

// LoanHandler exposes the loan engine over REST.
type LoanHandler struct {
	loans service.LoanService
}

func NewLoanHandler(loans service.LoanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

type createLoanRequest struct {
	ClientID            int64  `json:"client_id"`
	ToolUnitID          int64  `json:"tool_unit_id"`
	StartDate           string `json:"start_date"`
	ScheduledReturnDate string `json:"scheduled_return_date"`
}

func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req createLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ValidationError("invalid request body: %v", err))
		return
	}

	var startDate, scheduledReturnDate time.Time
	var err error
	if req.StartDate != "" {
		startDate, err = time.Parse(dateLayout, req.StartDate)
		if err != nil {
			respondError(w, domain.ValidationError("invalid start_date: expected yyyy-mm-dd, got %s", req.StartDate))
			return
		}
	}
	if req.ScheduledReturnDate != "" {
		scheduledReturnDate, err = time.Parse(dateLayout, req.ScheduledReturnDate)
		if err != nil {
			respondError(w, domain.ValidationError("invalid scheduled_return_date: expected yyyy-mm-dd, got %s", req.ScheduledReturnDate))
			return
		}
	}

	loan, err := h.loans.CreateLoan(r.Context(), req.ClientID, req.ToolUnitID, startDate, scheduledReturnDate, vars["rut"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) ReturnLoan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	loanID, err := pathID(r, "loanId")
	if err != nil {
		respondError(w, err)
		return
	}

	loan, err := h.loans.ReturnLoan(r.Context(), loanID, queryBool(r, "damaged"), queryBool(r, "irreparable"), vars["rut"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) GetLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loans.ListLoans(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

func (h *LoanHandler) GetActiveLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loans.ListActiveLoans(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

func (h *LoanHandler) GetActiveLoansByDate(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "startDate")
	if err != nil {
		respondError(w, err)
		return
	}
	end, err := queryDate(r, "endDate")
	if err != nil {
		respondError(w, err)
		return
	}

	loans, err := h.loans.ListActiveLoansByDate(r.Context(), start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

func (h *LoanHandler) GetOverdueLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loans.ListOverdueLoans(r.Context(), time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

func (h *LoanHandler) GetOverdueLoansByDate(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "startDate")
	if err != nil {
		respondError(w, err)
		return
	}
	end, err := queryDate(r, "endDate")
	if err != nil {
		respondError(w, err)
		return
	}

	loans, err := h.loans.ListOverdueLoansByDate(r.Context(), time.Now(), start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

func (h *LoanHandler) GetUnpaidLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loans.ListUnpaidLoans(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

func (h *LoanHandler) UpdateFinePaid(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "loanId")
	if err != nil {
		respondError(w, err)
		return
	}

	loan, err := h.loans.UpdateFinePaid(r.Context(), loanID, queryBool(r, "finePaid"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) GetTopTools(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.loans.TopRentedTools(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rankings)
}

func (h *LoanHandler) GetTopToolsByDate(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "startDate")
	if err != nil {
		respondError(w, err)
		return
	}
	end, err := queryDate(r, "endDate")
	if err != nil {
		respondError(w, err)
		return
	}

	rankings, err := h.loans.TopRentedToolsByDate(r.Context(), start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rankings)
}
